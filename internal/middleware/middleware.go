// Package middleware stores global and route-specific middleware.
//
// These intercept requests to handle cross-cutting concerns such as
// request correlation, request logging, tracing, CORS, rate limiting,
// panic recovery and translating errors into API responses.
package middleware
