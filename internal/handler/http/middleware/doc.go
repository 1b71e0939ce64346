// Package middleware holds the cross-cutting HTTP middleware that needs its own configuration:
// CORS for the browser client, client IP extraction and the per-IP limiter guarding the public
// download hit endpoint.
package middleware
