package httpapi

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/labelshop/internal/cms/rss"
	"github.com/dmitrijs2005/labelshop/internal/common"
	"github.com/dmitrijs2005/labelshop/internal/httpx"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) listPublicNews(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := page.Parse(r.URL.Query())
	if err != nil {
		httpx.WriteError(r.Context(), w, h.log, err)
		return
	}
	entries, total, err := h.news.ListPublished(r.Context(), limit, offset, r.URL.Query().Get("tag"))
	if err != nil {
		httpx.WriteError(r.Context(), w, h.log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"news":   mapSlice(entries, toPublicNews),
		"count":  total,
		"limit":  limit,
		"offset": offset,
	})
}

func (h *Handler) getPublicNews(w http.ResponseWriter, r *http.Request) {
	e, err := h.news.GetPublished(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		httpx.WriteError(r.Context(), w, h.log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"news": toPublicNews(e)})
}

func (h *Handler) newsFeed(w http.ResponseWriter, r *http.Request) {
	entries, _, err := h.news.ListPublished(r.Context(), rss.FeedSize, 0, "")
	if err != nil {
		httpx.WriteError(r.Context(), w, h.log, err)
		return
	}
	var buf bytes.Buffer
	if err := rss.Write(&buf, rss.Channel{
		Title:       feedTitle,
		Description: feedDescription,
		SiteURL:     h.opts.SiteURL,
	}, entries); err != nil {
		httpx.WriteError(r.Context(), w, h.log, err)
		return
	}
	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) listPublicDiscography(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := page.Parse(r.URL.Query())
	if err != nil {
		httpx.WriteError(r.Context(), w, h.log, err)
		return
	}
	entries, total, err := h.discography.ListPublished(r.Context(), limit, offset, r.URL.Query().Get("tag"))
	if err != nil {
		httpx.WriteError(r.Context(), w, h.log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"discography": mapSlice(entries, toPublicDiscography),
		"count":       total,
		"limit":       limit,
		"offset":      offset,
	})
}

func (h *Handler) getPublicDiscography(w http.ResponseWriter, r *http.Request) {
	e, err := h.discography.GetPublished(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		httpx.WriteError(r.Context(), w, h.log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"discography_entry": toPublicDiscography(e)})
}

type subscribeRequest struct {
	Email string `json:"email"`
}

func (h *Handler) subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := httpx.ReadJSON(r, &req); err != nil {
		httpx.WriteError(r.Context(), w, h.log, err)
		return
	}
	sub, err := h.subscriptions.Subscribe(r.Context(), req.Email)
	if err != nil {
		httpx.WriteError(r.Context(), w, h.log, err)
		return
	}
	// the unsubscribe token only travels by email
	httpx.WriteJSON(w, http.StatusCreated, map[string]any{
		"subscription": map[string]string{"email": sub.Email},
	})
}

func (h *Handler) unsubscribe(w http.ResponseWriter, r *http.Request) {
	if err := h.subscriptions.Unsubscribe(r.Context(), chi.URLParam(r, "token")); err != nil {
		httpx.WriteError(r.Context(), w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := h.db.PingContext(ctx); err != nil {
		h.log.Warn(r.Context(), "health check failed", "error", err.Error())
		httpx.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) keyExchange(w http.ResponseWriter, r *http.Request) {
	if h.opts.PublishableAPIKey == "" {
		httpx.WriteError(r.Context(), w, h.log, common.ErrorNotFound)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"publishableApiKey": h.opts.PublishableAPIKey})
}
