// Package ai holds the provider-neutral pieces of the model-driven path: the
// generator contract, typed failures and response decoding helpers.
package ai

import "context"

// Generator sends one system instruction and one user message to a
// text-generation backend and returns the textual reply.
type Generator interface {
	GenerateContent(ctx context.Context, system, user string) (string, error)
	Provider() string
	Model() string
}

// Settings are the per-call knobs shared by all providers.
type Settings struct {
	Model       string
	Temperature float64
	MaxTokens   int
}
