package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"supply-console/internal/app"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler holds the ApplicationService behind the route handlers.
type Handler struct {
	svc    app.ApplicationService
	logger *zap.Logger
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, logger *zap.Logger, allowedOrigins string) http.Handler {
	h := &Handler{svc: svc, logger: logger}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recoverer(logger))
	r.Use(CORS(allowedOrigins))

	r.Get("/api/health", h.health)

	// Spreadsheet import: body limit is managed inside the handler (multipart, up to 50 MB).
	r.Post("/api/products/import", h.importSlabSheet)

	// All other endpoints: 1 MB body limit to prevent unbounded request abuse.
	r.Group(func(r chi.Router) {
		r.Use(RequestBodyLimit(1 << 20)) // 1 MB

		// Pricing engine
		r.Post("/api/pricing/derive", h.derivePricing)
		r.Post("/api/pricing/unit-price", h.resolveUnitPrice)
		r.Post("/api/discounts/resolve", h.resolveDiscount)

		// Catalog
		r.Get("/api/products", h.listProducts)
		r.Get("/api/products/{code}", h.getProduct)
		r.Post("/api/products", h.saveProduct)

		// Delivery charges per location+carrier
		r.Get("/api/delivery-charges/{location}/{carrier}", h.getDeliveryCharges)
		r.Put("/api/delivery-charges/{location}/{carrier}", h.saveDeliveryCharges)

		// Product discounts per product+subcategory
		r.Get("/api/product-discounts/{product}/{subcategory}", h.getProductDiscounts)
		r.Put("/api/product-discounts/{product}/{subcategory}", h.saveProductDiscounts)

		// Quantity price slabs (?product=CODE selects a product list; default global)
		r.Get("/api/price-slabs", h.listPriceSlabs)
		r.Post("/api/price-slabs", h.addPriceSlab)
		r.Put("/api/price-slabs/{id}", h.updatePriceSlab)
		r.Delete("/api/price-slabs/{id}", h.deletePriceSlab)
	})

	return r
}

// health returns service status.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status string `json:"status"`
	}
	writeJSON(w, response{Status: "ok"})
}

// decodeJSON decodes the request body into v and returns false + writes an appropriate
// error response on failure. Returns HTTP 413 when the body exceeds the size limit set
// by RequestBodyLimit middleware; HTTP 400 for all other decode errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}
