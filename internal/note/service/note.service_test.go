package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"smartnotes/config"
	"smartnotes/internal/ai"
	"smartnotes/internal/note/model"
	"smartnotes/internal/note/repository"
	"smartnotes/socket"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingFeed struct {
	mu     sync.Mutex
	events []socket.Event
}

func (f *recordingFeed) Publish(e socket.Event) {
	f.mu.Lock()
	f.events = append(f.events, e)
	f.mu.Unlock()
}

// stubProvider echoes content and checks the store is usable during the call.
type stubProvider struct {
	repo *repository.NoteRepository
	err  error
}

func (p *stubProvider) Complete(_ context.Context, action ai.Action, content string) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	// Would deadlock if the service held the store lock here.
	p.repo.Create("side", "effect")
	return action.String() + ":" + content, nil
}

func (p *stubProvider) Name() string { return "stub" }

func strPtr(s string) *string { return &s }

func newService(feed EventPublisher) *NoteService {
	return NewNoteService(repository.NewNoteRepository(), ai.NewDispatcher(config.AzureOpenAI{}), feed)
}

func TestCRUDPublishesEvents(t *testing.T) {
	feed := &recordingFeed{}
	svc := newService(feed)

	n := svc.CreateNote("Meeting", "Discuss Q3 plan")
	_, err := svc.UpdateNote(n.ID, model.UpdateNoteRequest{Title: strPtr("Planning")})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteNote(n.ID))

	require.Len(t, feed.events, 3)
	assert.Equal(t, socket.NoteCreatedType, feed.events[0].Type)
	assert.Equal(t, socket.NoteUpdatedType, feed.events[1].Type)
	assert.Equal(t, socket.NoteDeletedType, feed.events[2].Type)
	for _, e := range feed.events {
		assert.Equal(t, n.ID, e.NoteID)
	}

	var view model.NoteResponse
	require.NoError(t, json.Unmarshal(feed.events[1].Payload, &view))
	assert.Equal(t, "Planning", view.Title)
	assert.Equal(t, "Discuss Q3 plan", view.Content)
	assert.Nil(t, feed.events[2].Payload)
}

func TestNotFoundErrors(t *testing.T) {
	feed := &recordingFeed{}
	svc := newService(feed)

	_, err := svc.GetNote("missing")
	assert.ErrorIs(t, err, ErrNoteNotFound)
	_, err = svc.UpdateNote("missing", model.UpdateNoteRequest{})
	assert.ErrorIs(t, err, ErrNoteNotFound)
	assert.ErrorIs(t, svc.DeleteNote("missing"), ErrNoteNotFound)
	_, err = svc.RunAIAction(context.Background(), "missing", ai.Summarize)
	assert.ErrorIs(t, err, ErrNoteNotFound)

	assert.Empty(t, feed.events, "failed operations publish nothing")
}

func TestNilFeedIsAllowed(t *testing.T) {
	svc := newService(nil)
	n := svc.CreateNote("t", "c")
	assert.NoError(t, svc.DeleteNote(n.ID))
}

func TestRunAIActionPlaceholder(t *testing.T) {
	svc := newService(nil)
	n := svc.CreateNote("Meeting", "Discuss Q3 plan")

	res, err := svc.RunAIAction(context.Background(), n.ID, ai.Summarize)
	require.NoError(t, err)
	assert.Equal(t, model.AIResult{
		NoteID: n.ID,
		Action: "summarize",
		Result: "This is a mock summary. Enable AI integration for real results.",
	}, res)
}

func TestRunAIActionUsesContentWithoutHoldingLock(t *testing.T) {
	repo := repository.NewNoteRepository()
	svc := NewNoteService(repo, ai.NewDispatcherWithProvider(&stubProvider{repo: repo}, true), nil)
	n := svc.CreateNote("t", "buy milk")

	res, err := svc.RunAIAction(context.Background(), n.ID, ai.ActionItems)
	require.NoError(t, err)
	assert.Equal(t, "action_items:buy milk", res.Result)
	assert.Equal(t, 2, repo.Count())
}

func TestRunAIActionPropagatesProviderError(t *testing.T) {
	repo := repository.NewNoteRepository()
	perr := &ai.ProviderError{Provider: "stub", StatusCode: 401, Err: errors.New("bad key")}
	svc := NewNoteService(repo, ai.NewDispatcherWithProvider(&stubProvider{repo: repo, err: perr}, true), nil)
	n := svc.CreateNote("t", "c")

	_, err := svc.RunAIAction(context.Background(), n.ID, ai.Sentiment)
	var got *ai.ProviderError
	require.True(t, errors.As(err, &got))
	assert.Equal(t, 401, got.StatusCode)
	assert.NotErrorIs(t, err, ErrNoteNotFound)
}

func TestHealth(t *testing.T) {
	svc := newService(nil)
	svc.CreateNote("a", "b")

	h := svc.Health()
	assert.Equal(t, model.HealthResponse{Status: "ok", AIEnabled: false, Provider: "placeholder", Notes: 1}, h)
}
