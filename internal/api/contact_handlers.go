package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/arcanedigitalshield/siteapi/internal/contact"
	"github.com/arcanedigitalshield/siteapi/internal/metrics"
)

const (
	submitThanksMessage = "Thank you for your message. We will get back to you soon!"
	submitFailedMessage = "Failed to process your message. Please try again later."
)

func (s *Server) submitContact(w http.ResponseWriter, r *http.Request) {
	var req contact.IntakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.ObserveSubmission("rejected")
		s.writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	sub, err := s.intake.Submit(r.Context(), req)
	if err != nil {
		var verr *contact.ValidationError
		if errors.As(err, &verr) {
			metrics.ObserveSubmission("rejected")
			s.writeError(w, http.StatusBadRequest, verr.Msg)
			return
		}
		metrics.ObserveSubmission("failed")
		s.logger.Error("submission persist failed", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, submitFailedMessage)
		return
	}

	metrics.ObserveSubmission("accepted")
	s.writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": submitThanksMessage,
		"id":      sub.ID,
	})
}

func (s *Server) listSubmissions(w http.ResponseWriter, r *http.Request) {
	filter := contact.ListFilter{
		UnreadOnly: r.URL.Query().Get("unreadOnly") == "true",
	}
	res, err := s.query.List(r.Context(), filter)
	if err != nil {
		s.logger.Error("list submissions failed", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "Failed to retrieve submissions")
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

type updateRequest struct {
	ID   string `json:"id"`
	Read *bool  `json:"read"`
}

func (s *Server) updateSubmission(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" || req.Read == nil {
		s.writeError(w, http.StatusBadRequest, "ID and read status are required")
		return
	}

	sub, err := s.query.SetRead(r.Context(), req.ID, *req.Read)
	if err != nil {
		if errors.Is(err, contact.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "Submission not found")
			return
		}
		s.logger.Error("update submission failed", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "Failed to update submission")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"submission": sub,
	})
}
