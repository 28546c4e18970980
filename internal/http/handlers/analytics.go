package handlers

import (
	"net/http"

	apierrors "github.com/pribylovaa/go-news-aggregator/read-api/internal/errors"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/http/middleware"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/service"
)

// Historical — дневная статистика: start (обязателен), end, article_id, organization_id.
func (h *Handlers) Historical(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	articleID, err := parseID(q.Get("article_id"), "article_id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	orgID, err := parseID(q.Get("organization_id"), "organization_id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	resp, err := h.svc.Historical(r.Context(), middleware.PrincipalFrom(r.Context()), service.HistoricalParams{
		Start:          q.Get("start"),
		End:            q.Get("end"),
		ArticleID:      articleID,
		OrganizationID: orgID,
	})
	h.write(w, r, resp, err)
}
