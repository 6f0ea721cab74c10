package repository

// Queries are written once in the subset Postgres and SQLite share:
// "?" placeholders (rebound per dialect), CAST(... AS TEXT) for ids and
// dates, LOWER(...) LIKE for case-insensitive matching.

const invoiceRecordColumns = `
	CAST(invoices.id AS TEXT),
	invoices.amount,
	CAST(invoices.date AS TEXT),
	invoices.status,
	customers.name,
	customers.email,
	customers.image_url`

// invoiceFilter takes the same LIKE pattern five times.
const invoiceFilter = `
	WHERE
		LOWER(customers.name) LIKE ? ESCAPE '\' OR
		LOWER(customers.email) LIKE ? ESCAPE '\' OR
		CAST(invoices.amount AS TEXT) LIKE ? ESCAPE '\' OR
		CAST(invoices.date AS TEXT) LIKE ? ESCAPE '\' OR
		LOWER(invoices.status) LIKE ? ESCAPE '\'`

const invoiceFilterArgs = 5

const invoiceOrder = `
	ORDER BY invoices.date DESC, invoices.id ASC`

const (
	queryRevenue = `
		SELECT month, revenue
		FROM revenue
		ORDER BY id`

	queryLatestInvoices = `
		SELECT` + invoiceRecordColumns + `
		FROM invoices
		JOIN customers ON invoices.customer_id = customers.id` + invoiceOrder + `
		LIMIT ?`

	// One statement so all four figures come from the same snapshot.
	queryCardTotals = `
		SELECT
			(SELECT COUNT(*) FROM customers),
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = 'paid' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'pending' THEN amount ELSE 0 END), 0)
		FROM invoices`

	queryFilteredInvoices = `
		SELECT` + invoiceRecordColumns + `
		FROM invoices
		JOIN customers ON invoices.customer_id = customers.id` + invoiceFilter + invoiceOrder + `
		LIMIT ? OFFSET ?`

	queryCountFilteredInvoices = `
		SELECT COUNT(*)
		FROM invoices
		JOIN customers ON invoices.customer_id = customers.id` + invoiceFilter

	queryInvoiceByID = `
		SELECT
			CAST(id AS TEXT),
			CAST(customer_id AS TEXT),
			amount,
			status,
			CAST(date AS TEXT)
		FROM invoices
		WHERE id = ?`

	queryCustomers = `
		SELECT CAST(id AS TEXT), name, email, image_url
		FROM customers
		ORDER BY name ASC`

	queryCustomerTotals = `
		SELECT
			CAST(customers.id AS TEXT),
			customers.name,
			customers.email,
			customers.image_url,
			COUNT(invoices.id),
			COALESCE(SUM(CASE WHEN invoices.status = 'pending' THEN invoices.amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN invoices.status = 'paid' THEN invoices.amount ELSE 0 END), 0)
		FROM customers
		LEFT JOIN invoices ON customers.id = invoices.customer_id
		WHERE
			LOWER(customers.name) LIKE ? ESCAPE '\' OR
			LOWER(customers.email) LIKE ? ESCAPE '\'
		GROUP BY customers.id, customers.name, customers.email, customers.image_url
		ORDER BY customers.name ASC`
)
