// Package api implements the HTTP surface of the gateway: request decoding,
// validation, and translation of domain errors onto HTTP statuses.
package api

import (
	"net/http"

	"github.com/micro-tools/notebridge/internal/server"
)

// RegisterRoutes attaches every API handler to the mux.
func RegisterRoutes(mux *http.ServeMux, srv server.Server) {
	mux.Handle("/api/v1/info", InfoHandler(srv))
	mux.Handle("/api/v1/pages", PagesHandler(srv))
	mux.Handle("/api/v1/pages/", PageResourceHandler(srv))
	mux.Handle("/api/v1/databases", DatabasesHandler(srv))
	mux.Handle("/api/v1/databases/", DatabaseResourceHandler(srv))
	mux.Handle("/api/v1/search", SearchHandler(srv))
	mux.Handle("/api/v1/chat", ChatHandler(srv))
}
