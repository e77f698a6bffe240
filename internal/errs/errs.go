// Package errs defines the error shape returned to API clients.
//
// Every failure that reaches a client is an *HTTPError, so clients always
// receive the same JSON structure:
//
//	{ "code": "NOT_FOUND", "message": "...", "status": 404,
//	  "override": false, "errors": null, "action": null }
//
// An HTTPError may wrap an underlying cause (a store fault, a bind error).
// The cause is available through errors.Unwrap for logging but is never
// serialized.
package errs
