package web

import (
	"net/http"

	"supply-console/internal/core"

	"github.com/go-chi/chi/v5"
)

const maxImportSize = 50 << 20 // 50 MB

// listProducts handles GET /api/products.
func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListProducts(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// getProduct handles GET /api/products/{code}.
func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetProduct(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// saveProduct handles POST /api/products. Derived pricing in the payload is
// ignored; the server recomputes everything from the raw inputs.
func (h *Handler) saveProduct(w http.ResponseWriter, r *http.Request) {
	var input core.ProductInput
	if !decodeJSON(w, r, &input) {
		return
	}
	if input.Code == "" {
		writeError(w, r, "product code is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	result, err := h.svc.SaveProduct(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// importSlabSheet handles POST /api/products/import — a multipart spreadsheet
// upload of quantity price slabs.
func (h *Handler) importSlabSheet(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		writeError(w, r, "request too large or malformed", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, "no file provided", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	defer file.Close()

	result, err := h.svc.ImportSlabSheet(r.Context(), header.Filename, file)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}
