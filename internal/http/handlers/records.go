package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	apierrors "github.com/pribylovaa/go-news-aggregator/read-api/internal/errors"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/http/middleware"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/query"
)

// List — обработчик публичного списка для эндпоинта e.
func (h *Handlers) List(e query.Endpoint) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := h.listParams(r)
		if err != nil {
			apierrors.WriteError(w, r, err)
			return
		}

		resp, err := h.svc.List(r.Context(), e, p)
		h.write(w, r, resp, err)
	}
}

// Show — обработчик одиночной записи; ключ берётся из URL-параметра param.
func (h *Handlers) Show(e query.Endpoint, param string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := h.svc.Show(r.Context(), e, chi.URLParam(r, param))
		h.write(w, r, resp, err)
	}
}

// OrganizationList — список, ограниченный организацией из пути.
func (h *Handlers) OrganizationList(e query.Endpoint) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := h.listParams(r)
		if err != nil {
			apierrors.WriteError(w, r, err)
			return
		}
		p.Filters.Organization = chi.URLParam(r, "username")

		resp, err := h.svc.List(r.Context(), e, p)
		h.write(w, r, resp, err)
	}
}

func (h *Handlers) MyArticles(w http.ResponseWriter, r *http.Request) {
	p, err := h.listParams(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	resp, err := h.svc.MyArticles(r.Context(), middleware.PrincipalFrom(r.Context()), p)
	h.write(w, r, resp, err)
}

func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.Me(r.Context(), middleware.PrincipalFrom(r.Context()))
	h.write(w, r, resp, err)
}
