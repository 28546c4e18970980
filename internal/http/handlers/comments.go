package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/pagination"
)

func (h *Handlers) ArticleComments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := pagination.ParseRequest(q.Get("per_page"), q.Get("page"))

	resp, err := h.svc.ArticleComments(r.Context(), chi.URLParam(r, "id"), page)
	h.write(w, r, resp, err)
}

func (h *Handlers) CommentThread(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.CommentThread(r.Context(), chi.URLParam(r, "id"))
	h.write(w, r, resp, err)
}
