package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"smartnotes/internal/ai"
	"smartnotes/internal/note/model"
	"smartnotes/internal/note/service"
	"smartnotes/pkg/logger"
)

const maxBodyBytes = 1 << 20

// Error categories returned in the "error" field of failure responses.
const (
	CategoryNotFound        = "not_found"
	CategoryValidation      = "validation_error"
	CategoryProviderError   = "provider_error"
	CategoryProviderTimeout = "provider_timeout"
	CategoryInternal        = "internal_error"
)

type NoteHandler struct {
	Service *service.NoteService
}

func NewNoteHandler(service *service.NoteService) *NoteHandler {
	return &NoteHandler{Service: service}
}

func (h *NoteHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Service.Health())
}

func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var req model.CreateNoteRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, CategoryValidation, "Invalid request body: "+err.Error())
		return
	}
	if req.Title == nil || req.Content == nil {
		writeError(w, http.StatusBadRequest, CategoryValidation, "Both title and content are required")
		return
	}

	n := h.Service.CreateNote(*req.Title, *req.Content)
	logger.Sugar.Infof("Created note %s", n.ID)
	writeJSON(w, http.StatusCreated, n.View())
}

func (h *NoteHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.Views(h.Service.ListNotes()))
}

func (h *NoteHandler) GetNote(w http.ResponseWriter, r *http.Request) {
	n, err := h.Service.GetNote(r.PathValue("id"))
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, n.View())
}

func (h *NoteHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateNoteRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, CategoryValidation, "Invalid request body: "+err.Error())
		return
	}

	n, err := h.Service.UpdateNote(r.PathValue("id"), req)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, n.View())
}

func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.Service.DeleteNote(id); err != nil {
		h.fail(w, err)
		return
	}
	logger.Sugar.Infof("Deleted note %s", id)
	w.WriteHeader(http.StatusNoContent)
}

// RunAIAction validates the action before looking the note up, so an unknown
// action is a 400 even for a missing note.
func (h *NoteHandler) RunAIAction(w http.ResponseWriter, r *http.Request) {
	action, err := ai.ParseAction(r.PathValue("action"))
	if err != nil {
		writeError(w, http.StatusBadRequest, CategoryValidation, err.Error())
		return
	}

	res, err := h.Service.RunAIAction(r.Context(), r.PathValue("id"), action)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *NoteHandler) fail(w http.ResponseWriter, err error) {
	var perr *ai.ProviderError
	switch {
	case errors.Is(err, service.ErrNoteNotFound):
		writeError(w, http.StatusNotFound, CategoryNotFound, "Note not found")
	case errors.Is(err, ai.ErrInvalidAction):
		writeError(w, http.StatusBadRequest, CategoryValidation, err.Error())
	case errors.As(err, &perr) && perr.Timeout():
		logger.Sugar.Warnf("Handler: AI provider timed out: %v", err)
		writeError(w, http.StatusGatewayTimeout, CategoryProviderTimeout, err.Error())
	case errors.As(err, &perr):
		logger.Sugar.Errorf("Handler: AI provider failed: %v", err)
		writeError(w, http.StatusBadGateway, CategoryProviderError, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, CategoryProviderTimeout, err.Error())
	default:
		logger.Sugar.Errorf("Handler: unexpected error: %v", err)
		writeError(w, http.StatusInternalServerError, CategoryInternal, "Internal server error")
	}
}

// decodeBody requires exactly one JSON object in the body.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)

	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must contain a single JSON object")
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return errors.New("body must be a JSON object, not null")
	}
	return json.Unmarshal(raw, dst)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Sugar.Errorf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, category, message string) {
	writeJSON(w, status, model.ErrorResponse{Error: category, Message: message})
}
