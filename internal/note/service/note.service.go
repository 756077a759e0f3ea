package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"smartnotes/internal/ai"
	"smartnotes/internal/note/model"
	"smartnotes/internal/note/repository"
	"smartnotes/pkg/logger"
	"smartnotes/socket"
)

var ErrNoteNotFound = errors.New("note not found")

// EventPublisher receives note change events. The socket hub implements it.
type EventPublisher interface {
	Publish(event socket.Event)
}

type NoteService struct {
	Repo *repository.NoteRepository
	AI   *ai.Dispatcher
	Feed EventPublisher
}

// NewNoteService wires the service. feed may be nil.
func NewNoteService(repo *repository.NoteRepository, dispatcher *ai.Dispatcher, feed EventPublisher) *NoteService {
	return &NoteService{Repo: repo, AI: dispatcher, Feed: feed}
}

func (s *NoteService) CreateNote(title, content string) model.Note {
	n := s.Repo.Create(title, content)
	s.publish(socket.NoteCreatedType, n.ID, n.View())
	return n
}

func (s *NoteService) ListNotes() []model.Note {
	return s.Repo.ListAll()
}

func (s *NoteService) GetNote(id string) (model.Note, error) {
	n, ok := s.Repo.Get(id)
	if !ok {
		return model.Note{}, fmt.Errorf("%w: %s", ErrNoteNotFound, id)
	}
	return n, nil
}

func (s *NoteService) UpdateNote(id string, req model.UpdateNoteRequest) (model.Note, error) {
	n, ok := s.Repo.Update(id, req.Title, req.Content)
	if !ok {
		return model.Note{}, fmt.Errorf("%w: %s", ErrNoteNotFound, id)
	}
	s.publish(socket.NoteUpdatedType, n.ID, n.View())
	return n, nil
}

func (s *NoteService) DeleteNote(id string) error {
	if !s.Repo.Delete(id) {
		return fmt.Errorf("%w: %s", ErrNoteNotFound, id)
	}
	s.publish(socket.NoteDeletedType, id, nil)
	return nil
}

// RunAIAction reads the note and hands its content to the dispatcher. The
// store is not locked while the provider call is in flight.
func (s *NoteService) RunAIAction(ctx context.Context, id string, action ai.Action) (model.AIResult, error) {
	n, err := s.GetNote(id)
	if err != nil {
		return model.AIResult{}, err
	}

	result, err := s.AI.Run(ctx, action, n.Content)
	if err != nil {
		return model.AIResult{}, fmt.Errorf("run %s on note %s: %w", action, id, err)
	}
	return model.AIResult{NoteID: n.ID, Action: action.String(), Result: result}, nil
}

func (s *NoteService) Health() model.HealthResponse {
	return model.HealthResponse{
		Status:    "ok",
		AIEnabled: s.AI.Enabled(),
		Provider:  s.AI.ProviderName(),
		Notes:     s.Repo.Count(),
	}
}

func (s *NoteService) publish(eventType, noteID string, payload any) {
	if s.Feed == nil {
		return
	}
	var raw json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			logger.Sugar.Errorf("Failed to marshal %s event for note %s: %v", eventType, noteID, err)
			return
		}
		raw = b
	}
	s.Feed.Publish(socket.Event{Type: eventType, NoteID: noteID, Payload: raw})
}
