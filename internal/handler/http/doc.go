// Package http implements the REST API of the back-office server.
//
// It exposes route wiring, request handlers, and middleware. Request tracing,
// access logging, login rate limiting, bearer authentication and the admin
// check run in this package before requests are delegated to the service
// layer.
package http
