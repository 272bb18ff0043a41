package web

import (
	"net/http"

	"supply-console/internal/app"
)

// derivePricing handles POST /api/pricing/derive — the calculator endpoint.
// It never rejects numeric garbage: unparseable fields coerce to zero and the
// derived record comes back regardless.
func (h *Handler) derivePricing(w http.ResponseWriter, r *http.Request) {
	var req app.PricingRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	writeJSON(w, h.svc.DerivePricing(req))
}

// resolveUnitPrice handles POST /api/pricing/unit-price.
func (h *Handler) resolveUnitPrice(w http.ResponseWriter, r *http.Request) {
	var req app.UnitPriceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Quantity < 1 {
		writeError(w, r, "quantity must be at least 1", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	result, err := h.svc.ResolveUnitPrice(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// resolveDiscount handles POST /api/discounts/resolve.
func (h *Handler) resolveDiscount(w http.ResponseWriter, r *http.Request) {
	var req app.DiscountRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.ResolveDiscount(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}
