package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/users", h.register)
		r.Post("/api/login", h.login)
	})

	// routes protected by a bearer token
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/refresh", h.refresh)

		r.Route("/api/folders", func(r chi.Router) {
			r.Get("/", h.listFolders)
			r.Post("/", h.createFolder)
			r.Get("/{id}", h.getFolder)
			r.Put("/{id}", h.updateFolder)
			r.Delete("/{id}", h.deleteFolder)
		})

		r.Route("/api/tags", func(r chi.Router) {
			r.Get("/", h.listTags)
			r.Post("/", h.createTag)
			r.Get("/{id}", h.getTag)
			r.Put("/{id}", h.updateTag)
			r.Delete("/{id}", h.deleteTag)
		})

		r.Route("/api/notes", func(r chi.Router) {
			r.Get("/", h.listNotes)
			r.Post("/", h.createNote)
			r.Get("/{id}", h.getNote)
			r.Put("/{id}", h.updateNote)
			r.Delete("/{id}", h.deleteNote)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
