package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/light-bringer/decant-store/internal/app/product/queries/list_products"
)

// Error codes carried in failed envelopes.
const (
	CodeFetchProducts   = "FETCH_PRODUCTS_ERROR"
	CodeProductNotFound = "PRODUCT_NOT_FOUND"
	CodeFetchProduct    = "FETCH_PRODUCT_ERROR"
	CodeFetchBrands     = "FETCH_BRANDS_ERROR"
	CodeInternal        = "INTERNAL_ERROR"
)

// Envelope is the uniform JSON body of the catalog API. A successful
// envelope carries data; a failed one carries error. Meta is present only
// on successful list responses.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// ErrorBody describes a failure.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Meta is the pagination block of a list response.
type Meta struct {
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	HasMore bool  `json:"hasMore"`
}

// ProductsEnvelope assembles the list response from a query result.
func ProductsEnvelope(result *list_products.Result) Envelope {
	return Envelope{
		Success: true,
		Data:    result.Products,
		Meta: &Meta{
			Total:   result.Total,
			Page:    result.Page.Number,
			Limit:   result.Page.Limit,
			HasMore: result.HasMore,
		},
	}
}

// DataEnvelope wraps a single payload.
func DataEnvelope(data interface{}) Envelope {
	return Envelope{Success: true, Data: data}
}

// ErrorEnvelope builds a failed envelope. The error text, if any, becomes
// the details field.
func ErrorEnvelope(code, message string, err error) Envelope {
	body := &ErrorBody{Code: code, Message: message}
	if err != nil {
		body.Details = err.Error()
	}
	return Envelope{Error: body}
}

func writeJSON(w http.ResponseWriter, r *http.Request, logger *slog.Logger, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.ErrorContext(r.Context(), "failed to encode response", "path", r.URL.Path, "error", err)
	}
}
