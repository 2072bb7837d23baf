package api

import (
	"encoding/json"
	"net/http"

	"github.com/micro-tools/notebridge/internal/server"
	"github.com/micro-tools/notebridge/internal/version"
)

// InfoResponse describes the running service.
type InfoResponse struct {
	Name          string `json:"name"`
	Version       string `json:"version"`
	NotionVersion string `json:"notion_version"`
}

// InfoHandler returns service metadata.
func InfoHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "GET" {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		resp := InfoResponse{
			Name:          "notebridge",
			Version:       version.Version,
			NotionVersion: srv.Config.Notion.Version,
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		enc := json.NewEncoder(w)
		if err := enc.Encode(resp); err != nil {
			srv.Logger.Error("error encoding info response", "error", err)
			http.Error(w, "Error getting service info",
				http.StatusInternalServerError)
			return
		}
	})
}
