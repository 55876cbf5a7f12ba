package httpapi

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/labelshop/internal/cms/models"
	"github.com/dmitrijs2005/labelshop/internal/cms/services"
	"github.com/dmitrijs2005/labelshop/internal/httpx"
	"github.com/go-chi/chi/v5"
)

func adminListQuery(r *http.Request) (models.ListQuery, error) {
	q := r.URL.Query()
	limit, offset, err := page.Parse(q)
	if err != nil {
		return models.ListQuery{}, err
	}
	return models.ListQuery{
		Limit:  limit,
		Offset: offset,
		Status: models.Status(strings.TrimSpace(q.Get("status"))),
		Tag:    strings.TrimSpace(q.Get("tag")),
	}, nil
}

// --- news ---

func (h *Handler) listNews(w http.ResponseWriter, r *http.Request) {
	q, err := adminListQuery(r)
	if err != nil {
		httpx.WriteError(r.Context(), w, h.log, err)
		return
	}
	entries, total, err := h.news.List(r.Context(), q)
	if err != nil {
		httpx.WriteError(r.Context(), w, h.log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"news":   mapSlice(entries, toAdminNews),
		"count":  total,
		"limit":  q.Limit,
		"offset": q.Offset,
	})
}

func (h *Handler) getNews(w http.ResponseWriter, r *http.Request) {
	e, err := h.news.Get(r.Context(), chi.URLParam(r, "id"))
	h.writeNews(w, r, http.StatusOK, e, err)
}

func (h *Handler) createNews(w http.ResponseWriter, r *http.Request) {
	var in services.NewsInput
	if err := httpx.ReadJSON(r, &in); err != nil {
		httpx.WriteError(r.Context(), w, h.log, err)
		return
	}
	e, err := h.news.Create(r.Context(), in)
	if err == nil {
		h.log.Info(r.Context(), "news created", "id", e.ID, "operator", OperatorIDFrom(r.Context()))
	}
	h.writeNews(w, r, http.StatusCreated, e, err)
}

func (h *Handler) updateNews(w http.ResponseWriter, r *http.Request) {
	var in services.NewsInput
	if err := httpx.ReadJSON(r, &in); err != nil {
		httpx.WriteError(r.Context(), w, h.log, err)
		return
	}
	e, err := h.news.Update(r.Context(), chi.URLParam(r, "id"), in)
	h.writeNews(w, r, http.StatusOK, e, err)
}

func (h *Handler) deleteNews(w http.ResponseWriter, r *http.Request) {
	if err := h.news.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.WriteError(r.Context(), w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) publishNews(w http.ResponseWriter, r *http.Request) {
	e, err := h.news.Publish(r.Context(), chi.URLParam(r, "id"))
	h.writeNews(w, r, http.StatusOK, e, err)
}

func (h *Handler) archiveNews(w http.ResponseWriter, r *http.Request) {
	e, err := h.news.Archive(r.Context(), chi.URLParam(r, "id"))
	h.writeNews(w, r, http.StatusOK, e, err)
}

func (h *Handler) writeNews(w http.ResponseWriter, r *http.Request, code int, e *models.NewsEntry, err error) {
	if err != nil {
		httpx.WriteError(r.Context(), w, h.log, err)
		return
	}
	httpx.WriteJSON(w, code, map[string]any{"news": toAdminNews(e)})
}

// --- discography ---

func (h *Handler) listDiscography(w http.ResponseWriter, r *http.Request) {
	q, err := adminListQuery(r)
	if err != nil {
		httpx.WriteError(r.Context(), w, h.log, err)
		return
	}
	entries, total, err := h.discography.List(r.Context(), q)
	if err != nil {
		httpx.WriteError(r.Context(), w, h.log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"discography": mapSlice(entries, toAdminDiscography),
		"count":       total,
		"limit":       q.Limit,
		"offset":      q.Offset,
	})
}

func (h *Handler) getDiscography(w http.ResponseWriter, r *http.Request) {
	e, err := h.discography.Get(r.Context(), chi.URLParam(r, "id"))
	h.writeDiscography(w, r, http.StatusOK, e, err)
}

func (h *Handler) createDiscography(w http.ResponseWriter, r *http.Request) {
	var in services.DiscographyInput
	if err := httpx.ReadJSON(r, &in); err != nil {
		httpx.WriteError(r.Context(), w, h.log, err)
		return
	}
	e, err := h.discography.Create(r.Context(), in)
	h.writeDiscography(w, r, http.StatusCreated, e, err)
}

func (h *Handler) updateDiscography(w http.ResponseWriter, r *http.Request) {
	var in services.DiscographyInput
	if err := httpx.ReadJSON(r, &in); err != nil {
		httpx.WriteError(r.Context(), w, h.log, err)
		return
	}
	e, err := h.discography.Update(r.Context(), chi.URLParam(r, "id"), in)
	h.writeDiscography(w, r, http.StatusOK, e, err)
}

func (h *Handler) deleteDiscography(w http.ResponseWriter, r *http.Request) {
	if err := h.discography.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.WriteError(r.Context(), w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeDiscography(w http.ResponseWriter, r *http.Request, code int, e *models.DiscographyEntry, err error) {
	if err != nil {
		httpx.WriteError(r.Context(), w, h.log, err)
		return
	}
	httpx.WriteJSON(w, code, map[string]any{"discography_entry": toAdminDiscography(e)})
}

// --- uploads ---

type uploadRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

func (h *Handler) createUpload(w http.ResponseWriter, r *http.Request) {
	var req uploadRequest
	if err := httpx.ReadJSON(r, &req); err != nil {
		httpx.WriteError(r.Context(), w, h.log, err)
		return
	}
	up, err := h.uploads.CreateUpload(r.Context(), req.Filename, req.ContentType)
	if err != nil {
		httpx.WriteError(r.Context(), w, h.log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, map[string]any{"upload": up})
}
