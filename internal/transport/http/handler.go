package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"trivia-engine/internal/app"
	"trivia-engine/internal/domain"
)

// Handler exposes the trivia engine as a JSON API. The userId is an opaque,
// already-authenticated identifier supplied by the caller.
type Handler struct {
	service *app.TriviaService
}

func NewHandler(service *app.TriviaService) *Handler {
	return &Handler{service: service}
}

// Register mounts the trivia routes on the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/trivia/next", h.handleNext)
	mux.HandleFunc("/trivia/answer", h.handleAnswer)
	mux.HandleFunc("/trivia/progress", h.handleProgress)
	mux.HandleFunc("/trivia/questions", h.handleAnswerKey)
}

// questionPayload is the served question with the answer withheld.
type questionPayload struct {
	ID      string   `json:"id"`
	Ordinal int      `json:"ordinal"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

type nextResponse struct {
	Question    *questionPayload    `json:"question"`
	Progress    domain.ProgressView `json:"progress"`
	ServedAt    *time.Time          `json:"servedAt,omitempty"`
	Locked      bool                `json:"locked"`
	LockedUntil *time.Time          `json:"lockedUntil,omitempty"`
	Complete    bool                `json:"complete"`
}

type answerRequest struct {
	UserID         string `json:"userId"`
	QuestionID     string `json:"questionId"`
	SelectedOption *int   `json:"selectedOption"` // absent means no selection (timeout)
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) handleNext(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing userId"})
		return
	}

	next, err := h.service.NextQuestion(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := nextResponse{
		Progress:    next.Progress,
		Locked:      next.Locked,
		LockedUntil: next.LockedUntil,
		Complete:    next.Complete,
	}
	if next.Question != nil {
		resp.Question = &questionPayload{
			ID:      next.Question.ID,
			Ordinal: next.Question.Ordinal,
			Prompt:  next.Question.Prompt,
			Options: next.Question.Options,
		}
		served := next.ServedAt
		resp.ServedAt = &served
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleAnswer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.UserID == "" || req.QuestionID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing userId or questionId"})
		return
	}
	selected := domain.TimeoutOption
	if req.SelectedOption != nil {
		selected = *req.SelectedOption
	}

	result, err := h.service.SubmitAnswer(r.Context(), req.UserID, req.QuestionID, selected)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleProgress(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing userId"})
		return
	}
	view, err := h.service.Progress(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// handleAnswerKey serves the full catalog with correct options and fun facts
// exposed: the public pre-study view. No session required.
func (h *Handler) handleAnswerKey(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	questions, err := h.service.AnswerKey(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrQuestionNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidOption), errors.Is(err, domain.ErrNotServed):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrQuestionMismatch), errors.Is(err, domain.ErrAlreadyAnswered):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrVersionConflict):
		// transient lost race, safe for the client to retry
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "please retry"})
	default:
		log.Printf("trivia http: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("trivia http: encode response: %v", err)
	}
}
