package domain

import "errors"

// Domain errors as sentinel values
var (
	// Product errors
	ErrProductNotFound = errors.New("product not found")
	ErrEmptyName       = errors.New("product name cannot be empty")
	ErrEmptyBrand      = errors.New("product brand cannot be empty")
	ErrInvalidPrice    = errors.New("product price cannot be negative")
	ErrInvalidCategory = errors.New("unknown product category")
	ErrInvalidGender   = errors.New("unknown product gender")

	// Cart errors
	ErrInvalidSize     = errors.New("sample size must be 2, 5 or 10 ml")
	ErrSizeUnavailable = errors.New("sample size is not offered for this product")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrEmptyCart       = errors.New("cart is empty")

	// Checkout errors
	ErrInvalidEmail         = errors.New("customer email is invalid")
	ErrMissingAddress       = errors.New("shipping address requires line1, city and country")
	ErrInvalidDeliveryType  = errors.New("delivery type must be standard or same_day")
	ErrInvalidPaymentMethod = errors.New("payment method must be stripe or cash_on_delivery")
)
