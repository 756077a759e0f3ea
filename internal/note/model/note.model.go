package model

import (
	"time"
)

// TimeFormat is the wire format for note timestamps.
const TimeFormat = time.RFC3339Nano

// Note is the stored entity. Timestamps stay as instants and are only
// formatted by View.
type Note struct {
	ID        string
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NoteResponse is the public view of a note.
type NoteResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func (n Note) View() NoteResponse {
	return NoteResponse{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt.UTC().Format(TimeFormat),
		UpdatedAt: n.UpdatedAt.UTC().Format(TimeFormat),
	}
}

// Views converts a slice of notes, never returning nil so lists encode as [].
func Views(notes []Note) []NoteResponse {
	out := make([]NoteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, n.View())
	}
	return out
}

// CreateNoteRequest uses pointers so a missing field can be told apart from
// an empty string.
type CreateNoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

type UpdateNoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

type AIResult struct {
	NoteID string `json:"note_id"`
	Action string `json:"action"`
	Result string `json:"result"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	AIEnabled bool   `json:"ai_enabled"`
	Provider  string `json:"provider"`
	Notes     int    `json:"notes"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
