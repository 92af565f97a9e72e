package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"event-insights/internal/domain"
	"event-insights/internal/idhash"
	"event-insights/internal/observability"
	"event-insights/internal/orgtoken"
	"event-insights/internal/storage"
)

const orgTokenHeader = "X-Org-Token"

// bulk requests carry between 1 and 5 event ids.
const (
	bulkMinIDs = 1
	bulkMaxIDs = 5
)

type apiError struct {
	Message string `json:"message"`
}

type bulkRequest struct {
	EventIDs []string `json:"event_ids"`
}

type bulkEventDetails struct {
	ID            string                        `json:"id"`
	Registrations *domain.EventRegistrationView `json:"registrations"`
	Revenue       *domain.EventRevenueView      `json:"revenue"`
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /status", s.handleStatus)
	mux.Handle("GET /metrics", observability.Handler())

	mux.Handle("GET /api/events", s.withOrg("list_events", s.handleListEvents))
	mux.Handle("GET /api/events/{id}/registrations", s.withOrg("registrations", s.handleRegistrations))
	mux.Handle("GET /api/events/{id}/revenue", s.withOrg("revenue", s.handleRevenue))
	mux.Handle("GET /api/events/{id}/fields", s.withOrg("fields", s.handleFieldDistribution))
	mux.Handle("POST /api/events/bulk", s.withOrg("bulk", s.handleBulk))

	return mux
}

// withOrg resolves the organization scope from the token header before
// running the handler. Requests without a decodable token get 401; the
// failure reason is never echoed back.
func (s *Server) withOrg(query string, handler func(http.ResponseWriter, *http.Request, int64)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		raw := orgtoken.OrgID(r.Header.Get(orgTokenHeader))
		if raw == "" {
			observability.RecordTokenDecodeFailure()
			observability.RecordQuery(query, "unauthorized", time.Since(start).Seconds())
			writeJSON(w, http.StatusUnauthorized, apiError{Message: "invalid organization token"})
			return
		}

		orgID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			observability.RecordTokenDecodeFailure()
			observability.RecordQuery(query, "unauthorized", time.Since(start).Seconds())
			writeJSON(w, http.StatusUnauthorized, apiError{Message: "invalid organization token"})
			return
		}

		handler(w, r, orgID)

		s.mu.Lock()
		s.queriesServed++
		s.mu.Unlock()
		observability.RecordQuery(query, "ok", time.Since(start).Seconds())
	})
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request, orgID int64) {
	summaries, err := s.service(orgID).ListEvents(r.Context(), orgID)
	if err != nil {
		s.logger.Printf("list events failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, apiError{Message: "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleRegistrations(w http.ResponseWriter, r *http.Request, orgID int64) {
	eventID, ok := s.eventID(w, r)
	if !ok {
		return
	}

	view, err := s.service(orgID).Registrations(r.Context(), orgID, eventID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleRevenue(w http.ResponseWriter, r *http.Request, orgID int64) {
	eventID, ok := s.eventID(w, r)
	if !ok {
		return
	}

	view, err := s.service(orgID).Revenue(r.Context(), orgID, eventID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleFieldDistribution(w http.ResponseWriter, r *http.Request, orgID int64) {
	eventID, ok := s.eventID(w, r)
	if !ok {
		return
	}

	view, err := s.service(orgID).FieldDistribution(r.Context(), orgID, eventID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// handleBulk assembles registration and revenue views for up to five
// events in one round trip. Ids that do not resolve are skipped, not
// reported as errors.
func (s *Server) handleBulk(w http.ResponseWriter, r *http.Request, orgID int64) {
	var req bulkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Message: "malformed request body"})
		return
	}
	if len(req.EventIDs) < bulkMinIDs || len(req.EventIDs) > bulkMaxIDs {
		writeJSON(w, http.StatusBadRequest, apiError{Message: "event_ids must contain between 1 and 5 ids"})
		return
	}

	svc := s.service(orgID)
	details := make([]bulkEventDetails, 0, len(req.EventIDs))
	for _, encoded := range req.EventIDs {
		eventID, err := s.codec.Decode(encoded)
		if err != nil {
			continue
		}

		regs, err := svc.Registrations(r.Context(), orgID, eventID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			s.writeServiceError(w, err)
			return
		}

		rev, err := svc.Revenue(r.Context(), orgID, eventID)
		if err != nil {
			s.writeServiceError(w, err)
			return
		}

		details = append(details, bulkEventDetails{
			ID:            encoded,
			Registrations: regs,
			Revenue:       rev,
		})
	}

	writeJSON(w, http.StatusOK, details)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	served := s.queriesServed
	s.mu.Unlock()

	status := map[string]any{
		"uptime":  time.Since(s.startedAt).String(),
		"queries": served,
	}

	if s.refresher != nil {
		if snap := s.refresher.Current(); snap != nil {
			events, regs, txs := snap.Counts()
			status["snapshot"] = map[string]any{
				"org_id":        snap.OrgID(),
				"loaded_at":     snap.LoadedAt(),
				"events":        events,
				"registrations": regs,
				"transactions":  txs,
			}
		} else {
			status["snapshot"] = "loading"
		}
	}

	writeJSON(w, http.StatusOK, status)
}

// eventID decodes the opaque id from the request path. Garbage ids are
// answered 404 so external callers cannot distinguish a bad id from a
// missing event.
func (s *Server) eventID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := s.codec.Decode(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, idhash.ErrInvalidID) {
			writeJSON(w, http.StatusNotFound, apiError{Message: "event not found"})
			return 0, false
		}
		s.logger.Printf("decode event id failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, apiError{Message: "internal error"})
		return 0, false
	}
	return id, true
}

func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, apiError{Message: "event not found"})
		return
	}
	s.logger.Printf("query failed: %v", err)
	writeJSON(w, http.StatusInternalServerError, apiError{Message: "internal error"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// Headers are already out; nothing left to do for the client.
		return
	}
}
