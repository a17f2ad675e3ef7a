// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/libris/internal/platform/request"
	"github.com/taibuivan/libris/internal/platform/respond"
)

// Query parameters of GET /books/search.
const (
	queryTitle  = "title"
	queryAuthor = "author"
)

// Handler serves the /books routes.
type Handler struct {
	service *Service
}

// NewHandler creates a Handler on top of service.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// PublicRoutes registers the read-only routes.
func (handler *Handler) PublicRoutes(router chi.Router) {
	router.Get("/books", handler.listBooks)
	router.Get("/books/search", handler.searchBooks)
	router.Get("/books/{id}", handler.getBook)
}

// ProtectedRoutes registers the mutating routes. The caller wraps router with
// the auth gate.
func (handler *Handler) ProtectedRoutes(router chi.Router) {
	router.Post("/books", handler.createBook)
	router.Put("/books/{id}", handler.updateBook)
	router.Delete("/books/{id}", handler.deleteBook)
}

func (handler *Handler) listBooks(writer http.ResponseWriter, request *http.Request) {
	books, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, books)
}

func (handler *Handler) searchBooks(writer http.ResponseWriter, request *http.Request) {
	var filter Filter
	if title, found := requestutil.Query(request, queryTitle); found {
		filter.Title = &title
	}
	if author, found := requestutil.Query(request, queryAuthor); found {
		filter.Author = &author
	}

	books, err := handler.service.Search(request.Context(), filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, books)
}

func (handler *Handler) getBook(writer http.ResponseWriter, request *http.Request) {
	book, err := handler.service.Get(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, book)
}

func (handler *Handler) createBook(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, book)
}

func (handler *Handler) updateBook(writer http.ResponseWriter, request *http.Request) {
	var input UpdateInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.service.Update(request.Context(), requestutil.Param(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, book)
}

func (handler *Handler) deleteBook(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
