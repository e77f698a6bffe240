// Package service contains the business logic.
//
// It sits between the handler and repository layers: it receives validated
// data from the handler, applies the business rules (timestamps, not-found
// detection) and turns repository outcomes into errs.HTTPError values.
package service
