// Package handler is the HTTP entry point after the router.
//
// It binds query and path params into request structs, validates them
// through the validation package and calls the service layer. Errors are
// returned untouched for the global error handler to shape.
package handler
