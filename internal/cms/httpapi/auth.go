package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/labelshop/internal/common"
	"github.com/dmitrijs2005/labelshop/internal/httpx"
)

type ctxKey string

const operatorIDKey ctxKey = "operatorID"

// OperatorIDFrom returns the operator authenticated by requireOperator.
func OperatorIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(operatorIDKey).(string)
	return id
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get(common.AuthorizationHeaderName)
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func (h *Handler) requireOperator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			httpx.WriteError(r.Context(), w, h.log, common.ErrorUnauthorized)
			return
		}
		id, err := h.operators.Authenticate(token)
		if err != nil {
			httpx.WriteError(r.Context(), w, h.log, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), operatorIDKey, id)))
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.ReadJSON(r, &req); err != nil {
		httpx.WriteError(r.Context(), w, h.log, err)
		return
	}
	pair, err := h.operators.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httpx.WriteError(r.Context(), w, h.log, err)
		return
	}
	h.log.Info(r.Context(), "operator logged in", "request_id", httpx.RequestIDFrom(r.Context()))
	httpx.WriteJSON(w, http.StatusOK, pair)
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := httpx.ReadJSON(r, &req); err != nil {
		httpx.WriteError(r.Context(), w, h.log, err)
		return
	}
	pair, err := h.operators.RefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		httpx.WriteError(r.Context(), w, h.log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, pair)
}
