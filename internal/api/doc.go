// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting for the learning app's REST surface. It acts as
// an adapter between external clients and the internal application
// services, translating HTTP concerns to business operations. Handlers
// never expose raw internal errors; everything client-facing flows through
// the sanitizing helpers in errors.go.
package api
