// Package http implements the JSON over HTTP transport of the record service.
//
// It wires chi routes for the query and modify operations, authenticates
// owners with bearer tokens, throttles each owner with a ulule/limiter rate
// and maps service and storage failures to HTTP statuses, answering
// transient failures with a Retry-After hint the sync client honors.
package http
