package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"strings"

	"github.com/dmitrijs2005/labelshop/internal/common"
	"github.com/dmitrijs2005/labelshop/internal/httpx"
	"github.com/dmitrijs2005/labelshop/internal/storefront/commerce"
	"github.com/go-chi/chi/v5"
)

type lineItemRequest struct {
	VariantID *string `json:"variant_id"`
	Quantity  *int    `json:"quantity"`
}

func (in lineItemRequest) validate() (string, int, error) {
	if in.VariantID == nil || strings.TrimSpace(*in.VariantID) == "" {
		return "", 0, fmt.Errorf("%w: variant_id is required", common.ErrorValidation)
	}
	qty := 1
	if in.Quantity != nil {
		qty = *in.Quantity
	}
	if qty < 1 {
		return "", 0, fmt.Errorf("%w: quantity must be at least 1", common.ErrorValidation)
	}
	return strings.TrimSpace(*in.VariantID), qty, nil
}

type updateLineItemRequest struct {
	Quantity *int `json:"quantity"`
}

type emailRequest struct {
	Email *string `json:"email"`
}

type shippingMethodRequest struct {
	OptionID *string `json:"option_id"`
}

func (h *Handler) writeCart(w http.ResponseWriter, cart *commerce.Cart) {
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"cart": cart})
}

func (h *Handler) getActiveCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sid := sessionID(r)
	if sid == "" {
		h.writeCart(w, nil)
		return
	}
	cartID, err := h.sessions.CartID(ctx, sid)
	if err != nil {
		httpx.WriteError(ctx, w, h.log, err)
		return
	}
	if cartID == "" {
		h.writeCart(w, nil)
		return
	}
	cart, err := h.commerce.GetCart(ctx, cartID)
	if errors.Is(err, common.ErrorNotFound) {
		if err := h.sessions.Clear(ctx, sid); err != nil {
			h.log.Warn(ctx, "clear stale cart session failed", "error", err.Error())
		}
		h.writeCart(w, nil)
		return
	}
	if err != nil {
		httpx.WriteError(ctx, w, h.log, err)
		return
	}
	h.writeCart(w, cart)
}

// newSessionCart creates a cart in the default region and makes it the
// session's active cart.
func (h *Handler) newSessionCart(w http.ResponseWriter, r *http.Request) (*commerce.Cart, error) {
	ctx := r.Context()
	sid, err := h.ensureSession(w, r)
	if err != nil {
		return nil, err
	}
	regionID, err := h.defaultRegionID(ctx)
	if err != nil {
		return nil, err
	}
	cart, err := h.commerce.CreateCart(ctx, regionID)
	if err != nil {
		return nil, err
	}
	if err := h.sessions.SetCartID(ctx, sid, cart.ID); err != nil {
		return nil, err
	}
	return cart, nil
}

func (h *Handler) createCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.newSessionCart(w, r)
	if err != nil {
		httpx.WriteError(r.Context(), w, h.log, err)
		return
	}
	h.writeCart(w, cart)
}

func (h *Handler) addToActiveCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var in lineItemRequest
	if err := httpx.ReadJSON(r, &in); err != nil {
		httpx.WriteError(ctx, w, h.log, err)
		return
	}
	variantID, qty, err := in.validate()
	if err != nil {
		httpx.WriteError(ctx, w, h.log, err)
		return
	}

	cartID := ""
	sid := sessionID(r)
	if sid != "" {
		if cartID, err = h.sessions.CartID(ctx, sid); err != nil {
			httpx.WriteError(ctx, w, h.log, err)
			return
		}
	}
	stored := cartID != ""
	if !stored {
		cart, err := h.newSessionCart(w, r)
		if err != nil {
			httpx.WriteError(ctx, w, h.log, err)
			return
		}
		cartID = cart.ID
	}

	cart, err := h.commerce.AddLineItem(ctx, cartID, variantID, qty)
	if stored && errors.Is(err, common.ErrorNotFound) {
		// The backend dropped the stored cart; start a fresh one and retry once.
		if err := h.sessions.Clear(ctx, sid); err != nil {
			h.log.Warn(ctx, "clear stale cart session failed", "error", err.Error())
		}
		fresh, ferr := h.newSessionCart(w, r)
		if ferr != nil {
			httpx.WriteError(ctx, w, h.log, ferr)
			return
		}
		cart, err = h.commerce.AddLineItem(ctx, fresh.ID, variantID, qty)
	}
	if err != nil {
		httpx.WriteError(ctx, w, h.log, err)
		return
	}
	h.writeCart(w, cart)
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.commerce.GetCart(r.Context(), chi.URLParam(r, "cartId"))
	if err != nil {
		httpx.WriteError(r.Context(), w, h.log, err)
		return
	}
	h.writeCart(w, cart)
}

func (h *Handler) addLineItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var in lineItemRequest
	if err := httpx.ReadJSON(r, &in); err != nil {
		httpx.WriteError(ctx, w, h.log, err)
		return
	}
	variantID, qty, err := in.validate()
	if err != nil {
		httpx.WriteError(ctx, w, h.log, err)
		return
	}
	cart, err := h.commerce.AddLineItem(ctx, chi.URLParam(r, "cartId"), variantID, qty)
	if err != nil {
		httpx.WriteError(ctx, w, h.log, err)
		return
	}
	h.writeCart(w, cart)
}

// updateLineItem sets a line's quantity; zero removes the line.
func (h *Handler) updateLineItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var in updateLineItemRequest
	if err := httpx.ReadJSON(r, &in); err != nil {
		httpx.WriteError(ctx, w, h.log, err)
		return
	}
	if in.Quantity == nil {
		httpx.WriteError(ctx, w, h.log, fmt.Errorf("%w: quantity is required", common.ErrorValidation))
		return
	}
	if *in.Quantity < 0 {
		httpx.WriteError(ctx, w, h.log, fmt.Errorf("%w: quantity must not be negative", common.ErrorValidation))
		return
	}

	cartID, lineID := chi.URLParam(r, "cartId"), chi.URLParam(r, "lineId")
	var (
		cart *commerce.Cart
		err  error
	)
	if *in.Quantity == 0 {
		cart, err = h.commerce.DeleteLineItem(ctx, cartID, lineID)
	} else {
		cart, err = h.commerce.UpdateLineItem(ctx, cartID, lineID, *in.Quantity)
	}
	if err != nil {
		httpx.WriteError(ctx, w, h.log, err)
		return
	}
	h.writeCart(w, cart)
}

func (h *Handler) deleteLineItem(w http.ResponseWriter, r *http.Request) {
	cart, err := h.commerce.DeleteLineItem(r.Context(), chi.URLParam(r, "cartId"), chi.URLParam(r, "lineId"))
	if err != nil {
		httpx.WriteError(r.Context(), w, h.log, err)
		return
	}
	h.writeCart(w, cart)
}

func (h *Handler) updateEmail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var in emailRequest
	if err := httpx.ReadJSON(r, &in); err != nil {
		httpx.WriteError(ctx, w, h.log, err)
		return
	}
	if in.Email == nil || strings.TrimSpace(*in.Email) == "" {
		httpx.WriteError(ctx, w, h.log, fmt.Errorf("%w: email is required", common.ErrorValidation))
		return
	}
	addr, err := mail.ParseAddress(strings.TrimSpace(*in.Email))
	if err != nil {
		httpx.WriteError(ctx, w, h.log, fmt.Errorf("%w: email is not a valid address", common.ErrorValidation))
		return
	}
	cart, err := h.commerce.UpdateCartEmail(ctx, chi.URLParam(r, "cartId"), addr.Address)
	if err != nil {
		httpx.WriteError(ctx, w, h.log, err)
		return
	}
	h.writeCart(w, cart)
}

func (h *Handler) listShippingOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := h.commerce.ListShippingOptions(r.Context(), chi.URLParam(r, "cartId"))
	if err != nil {
		httpx.WriteError(r.Context(), w, h.log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"shipping_options": opts})
}

func (h *Handler) addShippingMethod(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var in shippingMethodRequest
	if err := httpx.ReadJSON(r, &in); err != nil {
		httpx.WriteError(ctx, w, h.log, err)
		return
	}
	if in.OptionID == nil || strings.TrimSpace(*in.OptionID) == "" {
		httpx.WriteError(ctx, w, h.log, fmt.Errorf("%w: option_id is required", common.ErrorValidation))
		return
	}
	cart, err := h.commerce.AddShippingMethod(ctx, chi.URLParam(r, "cartId"), strings.TrimSpace(*in.OptionID))
	if err != nil {
		httpx.WriteError(ctx, w, h.log, err)
		return
	}
	h.writeCart(w, cart)
}

func (h *Handler) calculateTaxes(w http.ResponseWriter, r *http.Request) {
	cart, err := h.commerce.CalculateTaxes(r.Context(), chi.URLParam(r, "cartId"))
	if err != nil {
		httpx.WriteError(r.Context(), w, h.log, err)
		return
	}
	h.writeCart(w, cart)
}

// completeCart places the order. When an order comes back and the cart was
// the session's active one, the session forgets it.
func (h *Handler) completeCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cartID := chi.URLParam(r, "cartId")
	res, err := h.commerce.CompleteCart(ctx, cartID)
	if err != nil {
		httpx.WriteError(ctx, w, h.log, err)
		return
	}

	if res.IsOrder() {
		if sid := sessionID(r); sid != "" {
			active, err := h.sessions.CartID(ctx, sid)
			if err == nil && active == cartID {
				err = h.sessions.Clear(ctx, sid)
			}
			if err != nil {
				h.log.Warn(ctx, "clear cart session failed", "error", err.Error())
			}
		}
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}
