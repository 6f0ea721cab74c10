package errs

import (
	"context"
	"errors"
)

// Kind identifies which family of read operation failed.
type Kind int

const (
	KindRevenueFetch Kind = iota + 1
	KindInvoiceFetch
	KindInvoicePageCount
	KindCardDataFetch
	KindCustomerFetch
)

var kindCodes = map[Kind]string{
	KindRevenueFetch:     "REVENUE_FETCH_ERROR",
	KindInvoiceFetch:     "INVOICE_FETCH_ERROR",
	KindInvoicePageCount: "INVOICE_PAGE_COUNT_ERROR",
	KindCardDataFetch:    "CARD_DATA_FETCH_ERROR",
	KindCustomerFetch:    "CUSTOMER_FETCH_ERROR",
}

// Code returns the machine-readable code used in API error bodies.
func (k Kind) Code() string {
	if code, ok := kindCodes[k]; ok {
		return code
	}
	return "FETCH_ERROR"
}

func (k Kind) String() string {
	return k.Code()
}

// FetchError is returned by every dashboard read operation on failure.
//
// Error() is only the human message; the store's error is never part of
// it. The cause is kept for logging but only exposed through Unwrap
// when it is a context cancellation, so callers can tell "request gone"
// apart from "store broken" without seeing driver details.
type FetchError struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *FetchError) Error() string {
	return e.Message
}

// Is matches another *FetchError of the same Kind, so
// errors.Is(err, errs.ErrRevenueFetch) works for any revenue failure.
func (e *FetchError) Is(target error) bool {
	t, ok := target.(*FetchError)
	return ok && t.Kind == e.Kind
}

func (e *FetchError) Unwrap() error {
	if IsCanceled(e.cause) {
		return e.cause
	}
	return nil
}

// Cause returns the underlying error for diagnostics. Do not show it to users.
func (e *FetchError) Cause() error {
	return e.cause
}

// Sentinels for errors.Is. Their messages are the default per kind.
var (
	ErrRevenueFetch     = &FetchError{Kind: KindRevenueFetch, Message: "Failed to fetch revenue data."}
	ErrInvoiceFetch     = &FetchError{Kind: KindInvoiceFetch, Message: "Failed to fetch invoices."}
	ErrInvoicePageCount = &FetchError{Kind: KindInvoicePageCount, Message: "Failed to fetch total number of invoices."}
	ErrCardDataFetch    = &FetchError{Kind: KindCardDataFetch, Message: "Failed to fetch card data."}
	ErrCustomerFetch    = &FetchError{Kind: KindCustomerFetch, Message: "Failed to fetch customer table."}
)

// IsCanceled reports whether err came from a cancelled or timed-out request.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// NewFetchError wraps cause as a FetchError of the given kind and message.
func NewFetchError(kind Kind, message string, cause error) *FetchError {
	return &FetchError{
		Kind:    kind,
		Message: message,
		cause:   cause,
	}
}
