package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/spigell/practice-evaluator/internal/evidence"
	"github.com/spigell/practice-evaluator/internal/logger"
	"github.com/spigell/practice-evaluator/internal/pipeline"
	"github.com/spigell/practice-evaluator/internal/rubric"
)

const (
	msgMissingTranscript = "Request body must include a `transcript` string."
	msgBodyTooLarge      = "Request body exceeds the 2 MiB limit."
	msgInternal          = "Internal server error."
	msgExtractMalformed  = "Failed to parse evidence extraction response as JSON."
	msgScoreMalformed    = "Failed to parse scoring response as JSON."
)

type evaluateRequest struct {
	Transcript *string `json:"transcript"`
	rubric.Hints
}

type evaluateResponse struct {
	Evidence *evidence.Set `json:"evidence"`
	Scores   []rubric.Item `json:"scores"`
}

type errorResponse struct {
	Error    string        `json:"error"`
	Raw      *string       `json:"raw,omitempty"`
	Evidence *evidence.Set `json:"evidence,omitempty"`
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var body evaluateRequest
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body)
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: msgBodyTooLarge})
		return
	case err != nil || body.Transcript == nil:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgMissingTranscript})
		return
	}

	ctx := r.Context()
	if s.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.requestTimeout)
		defer cancel()
	}

	res, err := s.evaluator.Evaluate(ctx, pipeline.Request{
		Transcript: *body.Transcript,
		Hints:      body.Hints,
	})
	if err != nil {
		s.writeEvaluateError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, evaluateResponse{Evidence: res.Evidence, Scores: res.Scores})
}

func (s *Server) writeEvaluateError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.WithRequestID(s.logger, middleware.GetReqID(r.Context())).With(zap.Error(err))

	if errors.Is(err, pipeline.ErrInvalidRequest) {
		log.Info("evaluation rejected")
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	var stageErr *pipeline.StageError
	if errors.As(err, &stageErr) && stageErr.Malformed() {
		msg := msgScoreMalformed
		if stageErr.Stage == pipeline.StageExtract {
			msg = msgExtractMalformed
		}
		raw := stageErr.Raw
		log.Warn("backend reply could not be decoded", zap.String(logger.FieldStage, stageErr.Stage))
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: msg, Raw: &raw, Evidence: stageErr.Evidence})
		return
	}

	log.Error("evaluation failed")
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: rootMessage(err)})
}

// rootMessage strips the stage prefix so callers see the backend's own
// message.
func rootMessage(err error) string {
	var stageErr *pipeline.StageError
	if errors.As(err, &stageErr) && stageErr.Err != nil {
		return stageErr.Err.Error()
	}
	return err.Error()
}
