// Package handler is the HTTP layer: the first entry point after the router.
//
// It binds and validates requests with the validation package, calls the
// service layer and shapes the response bodies.
package handler
