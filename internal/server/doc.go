// Package server runs the back-office HTTP API: it starts the listener and
// shuts it down gracefully once the run context is cancelled.
package server
