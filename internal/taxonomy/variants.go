package taxonomy

func init() {
	register(coaching())
	register(interview())
}

func coaching() *Definition {
	return &Definition{
		Variant:   VariantCoaching,
		Subject:   "coaching",
		Assessor:  "an ICF assessor",
		Framework: "ICF Core Competencies / PCC markers",
		EventCategories: []EventCategory{
			{
				Name: "Agreements & Contracting",
				Events: []string{
					"SESSION_GOAL_ESTABLISHED",
					"SESSION_GOAL_CLARIFIED",
					"SESSION_AGREEMENT_CONFIRMED",
					"RECONTRACTING_MOMENT",
					"AGENDA_DRIFT",
					"AGENDA_OVERRIDE",
				},
			},
			{
				Name: "Presence & Partnership",
				Events: []string{
					"ACKNOWLEDGES_CLIENT_LANGUAGE",
					"LETS_CLIENT_LEAD",
					"INTERRUPTS_CLIENT",
					"COACH_LONG_MONOLOGUE",
					"INVALIDATES_CLIENT",
					"THERAPY_STYLE_INTERPRETATION",
				},
			},
			{
				Name: "Active Listening",
				Events: []string{
					"PARAPHRASE_ACCURATE",
					"PARAPHRASE_INACCURATE",
					"REFLECTS_EMOTION",
					"OBSERVES_PATTERN",
					"SUMMARIZES_PROGRESS",
				},
			},
			{
				Name: "Evokes Awareness",
				Events: []string{
					"POWERFUL_OPEN_QUESTION",
					"LEADING_QUESTION",
					"STACKED_QUESTION",
					"REFRAME",
					"EXPLORES_BELIEF",
					"EXPLORES_IDENTITY",
					"EXPLORES_EMOTION",
					"CLIENT_INSIGHT",
					"COACH_ACKNOWLEDGES_INSIGHT",
				},
			},
			{
				Name: "Ethics / Red Flags",
				Events: []string{
					"ADVICE_GIVING",
					"DIAGNOSIS",
					"MORALIZING",
					"JUDGMENT",
					"COACHING_THERAPY_BOUNDARY_SHIFT",
				},
			},
		},
		Sections: []Section{
			{
				Code:     "A3",
				Category: "Establishes & Maintains Agreements",
				Metrics: []string{
					"Session Outcome Clarity",
					"Partnership in Agreement",
					"Maintains Focus on Agreed Outcome",
					"Re-contracts When Needed",
				},
			},
			{
				Code:     "A5",
				Category: "Maintains Presence",
				Metrics: []string{
					"Demonstrates Curiosity",
					"Lets Client Lead",
					"Responsive to Client Emotions",
					"Flexible to What Emerges",
				},
			},
			{
				Code:     "A6",
				Category: "Listens Actively",
				Metrics: []string{
					"Accurate Paraphrasing",
					"Reflects Emotion",
					"Observes Patterns",
					"Integrates Multiple Client Threads",
				},
			},
			{
				Code:     "A7",
				Category: "Evokes Awareness",
				Metrics: []string{
					"Uses Powerful Open Questions",
					"Explores Beliefs and Identity",
					"Encourages New Perspectives",
					"Supports Client-Generated Insight",
				},
			},
		},
		RedFlagExamples: "advice-giving, diagnosis, moralizing / judgment, coaching-therapy boundary shift, " +
			"agenda override, invalidation, repeated stacked questions / leading questions, " +
			"excessive coach talk / long monologues",
		PrimaryKeywords:     []string{"coach"},
		CounterpartKeywords: []string{"client"},
	}
}

func interview() *Definition {
	return &Definition{
		Variant:   VariantInterview,
		Subject:   "behavioral interview",
		Assessor:  "a senior interview assessor",
		Framework: "behavioral interview competencies (STAR structure, ownership, impact, reflection, communication)",
		EventCategories: []EventCategory{
			{
				Name: "Structure & Framing",
				Events: []string{
					"SITUATION_DESCRIBED",
					"TASK_DEFINED",
					"CONTEXT_TIMEFRAME_GIVEN",
					"STAR_STRUCTURE_FOLLOWED",
					"ANSWER_RESTATES_QUESTION",
					"CLARIFYING_QUESTION_ASKED",
					"RAMBLING_TANGENT",
					"MISSING_CONTEXT",
				},
			},
			{
				Name: "Ownership & Action",
				Events: []string{
					"FIRST_PERSON_ACTION",
					"DECISION_RATIONALE_GIVEN",
					"INITIATIVE_TAKEN",
					"STAKEHOLDER_MANAGEMENT",
					"CONFLICT_HANDLED",
					"TEAM_ATTRIBUTION_ONLY",
					"VAGUE_ACTION",
					"HYPOTHETICAL_INSTEAD_OF_ACTUAL",
				},
			},
			{
				Name: "Results & Impact",
				Events: []string{
					"OUTCOME_STATED",
					"QUANTIFIED_RESULT",
					"BUSINESS_IMPACT_LINKED",
					"PARTIAL_RESULT",
					"FAILURE_ACKNOWLEDGED",
					"OUTCOME_MISSING",
					"RESULT_ATTRIBUTED_TO_OTHERS",
				},
			},
			{
				Name: "Reflection & Growth",
				Events: []string{
					"LEARNING_STATED",
					"APPLIED_LEARNING_LATER",
					"SELF_CRITIQUE",
					"FEEDBACK_SOUGHT",
					"GROWTH_MINDSET_LANGUAGE",
					"INTERVIEWER_FOLLOW_UP_PROBE",
					"DEFLECTS_FOLLOW_UP",
				},
			},
			{
				Name: "Communication & Red Flags",
				Events: []string{
					"FILLER_HEAVY_RESPONSE",
					"OVERLY_LONG_RESPONSE",
					"OVERLY_SHORT_RESPONSE",
					"JARGON_UNEXPLAINED",
					"NEGATIVE_ABOUT_EMPLOYER",
					"BLAMES_OTHERS",
					"DEROGATORY_LANGUAGE",
					"CONFIDENTIALITY_BREACH",
				},
			},
		},
		Sections: []Section{
			{
				Code:     "S1",
				Category: "Structure",
				Metrics: []string{
					"Sets Up Situation/Context",
					"Defines Task/Responsibility",
					"Describes Specific Actions",
					"Logical Flow",
				},
			},
			{
				Code:     "S2",
				Category: "Completeness",
				Metrics: []string{
					"States Clear Results/Outcomes",
					"Quantifies Impact",
					"Reflects on Learnings",
					"Answers the Question Asked",
				},
			},
			{
				Code:     "S3",
				Category: "Communication",
				Metrics: []string{
					"Concise Delivery",
					"Minimal Filler Words",
					"Clarity of Explanation",
					"Appropriate Detail Level",
				},
			},
			{
				Code:     "S4",
				Category: "Professionalism",
				Metrics: []string{
					"Positive Framing",
					"Ownership and Accountability",
					"Respectful Language",
					"Role Alignment",
				},
			},
		},
		RedFlagExamples: "blaming others, negative talk about former employers or colleagues, derogatory language, " +
			"confidentiality breaches, answers that never state an outcome, hypothetical answers to behavioral questions, " +
			"heavy filler usage, long monologues that ignore the question",
	}
}
