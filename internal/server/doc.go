// Package server runs the record service HTTP listener and shuts it down
// gracefully on SIGINT, SIGTERM or SIGQUIT.
package server
