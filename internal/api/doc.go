// Package api implements the HTTP API: handlers, request/response models and
// the error-to-status mapping that keeps internal errors out of responses.
package api
