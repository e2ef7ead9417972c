package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/interview-coach/internal/judge"
	"github.com/jonathan/interview-coach/internal/types"
)

// Stream completion statuses.
const (
	StatusCompleted = "completed"
	StatusDegraded  = "degraded"
)

// ReviewsResponse is the body of GET /reviews/{user_id}.
type ReviewsResponse struct {
	UserID  string               `json:"user_id"`
	Count   int                  `json:"count"`
	Reviews []types.CodingReview `json:"reviews"`
}

// decodeSession reads and validates a session from the request body.
func (s *Server) decodeSession(w http.ResponseWriter, r *http.Request) (*types.Session, error) {
	var session types.Session
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&session); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, err
		}
		return nil, &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	if err := session.Validate(); err != nil {
		return nil, validationError(err)
	}
	return &session, nil
}

// validationError reports the first failing field.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ErrValidation{Field: fe.Namespace(), Message: "failed '" + fe.Tag() + "'"}
	}
	return &ErrValidation{Field: "session", Message: err.Error()}
}

// handleJudge judges a session and returns the outcome
func (s *Server) handleJudge(w http.ResponseWriter, r *http.Request) {
	session, err := s.decodeSession(w, r)
	if err != nil {
		s.errResponse(w, err)
		return
	}

	logger := s.requestLogger(r)
	outcome := s.newJudge(logger).Run(r.Context(), session)
	s.jsonResponse(w, http.StatusOK, outcome)
}

// handleJudgeStream judges a session and streams every state transition via SSE
func (s *Server) handleJudgeStream(w http.ResponseWriter, r *http.Request) {
	session, err := s.decodeSession(w, r)
	if err != nil {
		s.errResponse(w, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger := s.requestLogger(r)
	j := s.newJudge(logger, judge.WithProgress(func(ev judge.StepEvent) {
		if err := sse.WriteEvent(EventStep, ev); err != nil {
			logger.Warn("failed to write SSE event", "error", err)
		}
	}))

	outcome := j.Run(r.Context(), session)
	if err := r.Context().Err(); err != nil {
		sse.WriteError(err.Error())
		return
	}

	status := StatusCompleted
	if outcome.Result.IsDegraded() || (s.deps.Store != nil && !outcome.Persisted) {
		status = StatusDegraded
	}
	sse.WriteComplete(session.SessionID, status, outcome)
}

// handleListReviews lists a user's reviews, newest first
func (s *Server) handleListReviews(w http.ResponseWriter, r *http.Request) {
	if s.reviews == nil {
		s.errResponse(w, &ErrUnavailable{Feature: "review storage"})
		return
	}

	userID := r.PathValue("user_id")
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.errResponse(w, &ErrValidation{Field: "limit", Message: fmt.Sprintf("must be a non-negative integer, got %q", raw)})
			return
		}
		limit = n
	}

	reviews, err := s.reviews.ListCodingReviews(r.Context(), userID, limit)
	if err != nil {
		s.requestLogger(r).Error("failed to list reviews", "user_id", userID, "error", err)
		s.errResponse(w, err)
		return
	}
	if reviews == nil {
		reviews = []types.CodingReview{}
	}
	s.jsonResponse(w, http.StatusOK, ReviewsResponse{UserID: userID, Count: len(reviews), Reviews: reviews})
}

// handleGetReview returns one stored review
func (s *Server) handleGetReview(w http.ResponseWriter, r *http.Request) {
	if s.reviews == nil {
		s.errResponse(w, &ErrUnavailable{Feature: "review storage"})
		return
	}

	userID, sessionID := r.PathValue("user_id"), r.PathValue("session_id")
	review, err := s.reviews.GetCodingReview(r.Context(), userID, sessionID)
	if err != nil {
		if HTTPStatus(err) == http.StatusInternalServerError {
			s.requestLogger(r).Error("failed to get review", "user_id", userID, "session_id", sessionID, "error", err)
		}
		s.errResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, review)
}
