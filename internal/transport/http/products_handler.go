package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/light-bringer/decant-store/internal/app/product/domain"
	"github.com/light-bringer/decant-store/internal/app/product/queries/get_product"
	"github.com/light-bringer/decant-store/internal/app/product/queries/list_brands"
	"github.com/light-bringer/decant-store/internal/app/product/queries/list_products"
	"github.com/light-bringer/decant-store/internal/app/product/repo"
	"github.com/light-bringer/decant-store/internal/app/product/search"
)

// ProductsHandler serves the catalog JSON API.
type ProductsHandler struct {
	listProducts *list_products.Query
	getProduct   *get_product.Query
	listBrands   *list_brands.Query
	logger       *slog.Logger
}

// NewProductsHandler creates a new catalog API handler.
func NewProductsHandler(
	listProducts *list_products.Query,
	getProduct *get_product.Query,
	listBrands *list_brands.Query,
	logger *slog.Logger,
) *ProductsHandler {
	return &ProductsHandler{
		listProducts: listProducts,
		getProduct:   getProduct,
		listBrands:   listBrands,
		logger:       logger,
	}
}

// List handles GET /api/products.
func (h *ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	params := search.ParseSearchParams(r.URL.Query())

	result, err := h.listProducts.Execute(r.Context(), &list_products.Request{Params: params})
	if err != nil {
		h.logStoreError(r, "failed to fetch products", err)
		writeJSON(w, r, h.logger, http.StatusInternalServerError,
			ErrorEnvelope(CodeFetchProducts, "Failed to fetch products", err))
		return
	}

	writeJSON(w, r, h.logger, http.StatusOK, ProductsEnvelope(result))
}

// Get handles GET /api/products/{slug}.
func (h *ProductsHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.getProduct.Execute(r.Context(), &get_product.Request{Slug: r.PathValue("slug")})
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		writeJSON(w, r, h.logger, http.StatusNotFound,
			ErrorEnvelope(CodeProductNotFound, "Product not found", nil))
	case err != nil:
		h.logStoreError(r, "failed to fetch product", err)
		writeJSON(w, r, h.logger, http.StatusInternalServerError,
			ErrorEnvelope(CodeFetchProduct, "Failed to fetch product", err))
	default:
		writeJSON(w, r, h.logger, http.StatusOK, DataEnvelope(product))
	}
}

// Brands handles GET /api/brands.
func (h *ProductsHandler) Brands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.listBrands.Execute(r.Context(), &list_brands.Request{InStockOnly: true})
	if err != nil {
		h.logStoreError(r, "failed to fetch brands", err)
		writeJSON(w, r, h.logger, http.StatusInternalServerError,
			ErrorEnvelope(CodeFetchBrands, "Failed to fetch brands", err))
		return
	}

	writeJSON(w, r, h.logger, http.StatusOK, DataEnvelope(brands))
}

func (h *ProductsHandler) logStoreError(r *http.Request, msg string, err error) {
	h.logger.ErrorContext(r.Context(), msg,
		"error", err,
		"code", repo.ErrorCode(err),
		"request_id", RequestIDFromContext(r.Context()),
	)
}
