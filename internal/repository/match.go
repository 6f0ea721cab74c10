package repository

import (
	"strconv"
	"strings"

	"github.com/deppfellow/invoice-dashboard/internal/model"
)

// normalizeQuery lowercases a search query once per call. Whitespace is
// kept so "lee " stays a plain substring search.
func normalizeQuery(query string) string {
	return strings.ToLower(query)
}

// matchInvoice is the in-Go twin of the SQL filter in queries.go.
func matchInvoice(rec model.InvoiceRecord, q string) bool {
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(rec.Name), q) ||
		strings.Contains(strings.ToLower(rec.Email), q) ||
		strings.Contains(strconv.FormatInt(rec.Amount, 10), q) ||
		strings.Contains(rec.Date.Format(model.DateLayout), q) ||
		strings.Contains(strings.ToLower(string(rec.Status)), q)
}

func matchCustomer(c model.Customer, q string) bool {
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(c.Name), q) ||
		strings.Contains(strings.ToLower(c.Email), q)
}

// likePattern turns a normalized query into a LIKE pattern, escaping the
// wildcards so "50%" searches for the literal text.
func likePattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(q) + "%"
}

// pageBounds clamps [offset, offset+limit) to n items.
func pageBounds(n, limit, offset int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if offset > n {
		offset = n
	}
	end := n
	if limit >= 0 && limit < n-offset {
		end = offset + limit
	}
	return offset, end
}
