package router

import (
	"net/http"

	handlers "smartnotes/handler"
	noteHandler "smartnotes/internal/note"
	"smartnotes/internal/note/service"
	"smartnotes/middleware"
	"smartnotes/socket"
)

func Setup(svc *service.NoteService, hub *socket.Hub, static *handlers.StaticHandler, jwtSecret string) http.Handler {
	mux := http.NewServeMux()
	auth := middleware.Auth(jwtSecret)

	// WebSocket change feed
	mux.Handle("GET /ws", auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		socket.ServeWs(hub, w, r)
	})))

	// REST API
	notes := noteHandler.NewNoteHandler(svc)

	mux.HandleFunc("GET /api/health", notes.Health)
	mux.Handle("POST /api/notes", auth(http.HandlerFunc(notes.CreateNote)))
	mux.Handle("GET /api/notes", auth(http.HandlerFunc(notes.ListNotes)))
	mux.Handle("GET /api/notes/{id}", auth(http.HandlerFunc(notes.GetNote)))
	mux.Handle("PUT /api/notes/{id}", auth(http.HandlerFunc(notes.UpdateNote)))
	mux.Handle("DELETE /api/notes/{id}", auth(http.HandlerFunc(notes.DeleteNote)))
	mux.Handle("POST /api/notes/{id}/ai/{action}", auth(http.HandlerFunc(notes.RunAIAction)))

	// Frontend
	mux.HandleFunc("GET /{$}", static.Index)
	mux.HandleFunc("GET /favicon.svg", static.Favicon)

	return middleware.RequestLogger(middleware.CORSMiddleware(mux))
}
