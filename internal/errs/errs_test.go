package errs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchErrorHidesCause(t *testing.T) {
	cause := errors.New("pq: password authentication failed")
	err := NewFetchError(KindRevenueFetch, "Failed to fetch revenue data.", cause)

	assert.Equal(t, "Failed to fetch revenue data.", err.Error())
	assert.NotErrorIs(t, err, cause)
	assert.Same(t, cause, err.Cause())
	assert.Nil(t, errors.Unwrap(err))
}

func TestFetchErrorExposesCancellation(t *testing.T) {
	for _, cause := range []error{context.Canceled, context.DeadlineExceeded, fmt.Errorf("wait: %w", context.Canceled)} {
		err := NewFetchError(KindInvoiceFetch, "Failed to fetch invoices.", cause)

		assert.True(t, IsCanceled(err))
		assert.ErrorIs(t, err, cause)
	}
}

func TestFetchErrorMatchesSentinelByKind(t *testing.T) {
	err := fmt.Errorf("handler: %w", NewFetchError(KindInvoiceFetch, "Failed to fetch the latest invoices.", nil))

	assert.ErrorIs(t, err, ErrInvoiceFetch)
	assert.NotErrorIs(t, err, ErrRevenueFetch)
	assert.NotErrorIs(t, err, ErrInvoicePageCount)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "Failed to fetch the latest invoices.", fetchErr.Message)
}

func TestKindCode(t *testing.T) {
	assert.Equal(t, "REVENUE_FETCH_ERROR", KindRevenueFetch.Code())
	assert.Equal(t, "INVOICE_PAGE_COUNT_ERROR", KindInvoicePageCount.String())
	assert.Equal(t, "FETCH_ERROR", Kind(0).Code())
}

func TestFromFetchError(t *testing.T) {
	httpErr := FromFetchError(NewFetchError(KindCardDataFetch, "Failed to fetch card data.", errors.New("down")))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.Equal(t, "CARD_DATA_FETCH_ERROR", httpErr.Code)
	assert.Equal(t, "Failed to fetch card data.", httpErr.Message)
	assert.True(t, httpErr.Override)

	httpErr = FromFetchError(NewFetchError(KindCardDataFetch, "Failed to fetch card data.", context.DeadlineExceeded))
	assert.Equal(t, http.StatusServiceUnavailable, httpErr.Status)
}

func TestHTTPErrorConstructors(t *testing.T) {
	code := "INVOICE_NOT_FOUND"

	tests := []struct {
		name   string
		err    *HTTPError
		status int
		code   string
	}{
		{"bad request", NewBadRequestError("bad", false, nil, nil), http.StatusBadRequest, "BAD_REQUEST"},
		{"not found", NewNotFoundError("missing", false, nil), http.StatusNotFound, "NOT_FOUND"},
		{"not found with code", NewNotFoundError("missing", true, &code), http.StatusNotFound, "INVOICE_NOT_FOUND"},
		{"too many requests", NewTooManyRequestsError(), http.StatusTooManyRequests, "TOO_MANY_REQUESTS"},
		{"internal", NewInternalServerError(), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.Status)
			assert.Equal(t, tt.code, tt.err.Code)
			assert.ErrorIs(t, tt.err, &HTTPError{})
		})
	}
}

func TestWithMessageCopies(t *testing.T) {
	orig := NewNotFoundError("missing", false, nil)
	changed := orig.WithMessage("Invoice not found")

	assert.Equal(t, "missing", orig.Message)
	assert.Equal(t, "Invoice not found", changed.Message)
	assert.Equal(t, orig.Status, changed.Status)
}

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", MakeUpperCaseWithUnderscores("Bad Request"))
	assert.Equal(t, "TOO_MANY_REQUESTS", MakeUpperCaseWithUnderscores("Too Many Requests"))
}
