// Package service contains the business logic.
//
// It sits between the handler and repository layers. It receives
// validated input from the handler or CLI, reads through a
// repository.Store, and turns raw records into display rows: formatted
// amounts, locale-aware ordering and domain errors instead of driver ones.
package service
