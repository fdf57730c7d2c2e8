package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/luiz1745/jogo-de-matematica/internal/explain"
	"github.com/luiz1745/jogo-de-matematica/internal/llm"
	"github.com/luiz1745/jogo-de-matematica/internal/store"
	"github.com/luiz1745/jogo-de-matematica/internal/validate"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
	maxBodyBytes        = 4 << 10
)

// answerRequest requires the answer key but not a value: an empty or
// oversized answer is graded, not rejected.
type answerRequest struct {
	Answer *string `json:"answer" validate:"required"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.Len(),
		"explain":  s.cfg.Explainer.Available(),
	})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	id, ls, err := s.create(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}

	ls.mu.Lock()
	view := sessionView{ID: id, Question: newQuestionView(ls.ctrl.CurrentQuestion()), Snapshot: ls.ctrl.Snapshot()}
	ls.mu.Unlock()

	w.Header().Set("Location", "/v1/sessions/"+id)
	writeJSON(w, http.StatusCreated, view)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ls, err := s.get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	ls.mu.Lock()
	ls.lastSeen = s.now()
	view := sessionView{ID: id, Question: newQuestionView(ls.ctrl.CurrentQuestion()), Snapshot: ls.ctrl.Snapshot()}
	ls.mu.Unlock()

	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	ls, err := s.get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	var req answerRequest
	if err := s.decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	ls.mu.Lock()
	ls.lastSeen = s.now()
	fb := ls.ctrl.Submit(*req.Answer)
	next := ls.ctrl.CurrentQuestion()
	if fb.Missed() {
		ls.lastMiss = &fb
	}
	ls.rec.Answer(r.Context(), fb)
	ls.mu.Unlock()

	writeJSON(w, http.StatusOK, newFeedbackView(fb, next))
}

func (s *Server) handleExplain(w http.ResponseWriter, r *http.Request) {
	ls, err := s.get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if !s.cfg.Explainer.Available() {
		writeError(w, http.StatusServiceUnavailable, llm.ErrNoProvider)
		return
	}

	ls.mu.Lock()
	ls.lastSeen = s.now()
	miss := ls.lastMiss
	ls.mu.Unlock()
	if miss == nil {
		writeError(w, http.StatusConflict, explain.ErrNothingToExplain)
		return
	}

	// The LLM call runs outside the session lock so answers keep flowing.
	exp, err := s.cfg.Explainer.Explain(r.Context(), explain.Input{
		Question:  miss.Question,
		Submitted: miss.Submitted,
	})
	if err != nil {
		s.log.WithError(err).Warn("explanation failed")
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, exp)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	ls, err := s.remove(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, newSummaryView(ls.end(r.Context())))
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Repo == nil {
		writeJSON(w, http.StatusOK, []answerRecordView{})
		return
	}

	limit := defaultHistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, errors.New("limit must be a positive integer"))
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	records, err := s.cfg.Repo.RecentAnswers(r.Context(), store.QueryOpts{
		Limit:     limit,
		SessionID: r.URL.Query().Get("session"),
		Category:  r.URL.Query().Get("category"),
	})
	if err != nil {
		s.log.WithError(err).Error("history query failed")
		writeError(w, http.StatusInternalServerError, errors.New("history unavailable"))
		return
	}

	out := make([]answerRecordView, len(records))
	for i, rec := range records {
		out[i] = newAnswerRecordView(rec)
	}
	writeJSON(w, http.StatusOK, out)
}

// decode reads a JSON body into dst and validates it.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.New("request body is not valid JSON")
	}
	return s.validate.Struct(dst)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	view := errorView{Error: err.Error()}
	var fe *validate.FieldsError
	if errors.As(err, &fe) {
		view.Error = "validation failed"
		view.Fields = fe.Fields
	}
	writeJSON(w, status, view)
}

// requestLogger logs each request through logrus.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := s.now()
		next.ServeHTTP(ww, r)
		s.log.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"bytes":      ww.BytesWritten(),
			"duration":   s.now().Sub(start).String(),
			"request_id": middleware.GetReqID(r.Context()),
		}).Info("request")
	})
}
