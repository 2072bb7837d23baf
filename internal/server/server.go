package server

import (
	"github.com/hashicorp/go-hclog"

	"github.com/micro-tools/notebridge/internal/config"
	"github.com/micro-tools/notebridge/pkg/chat"
	"github.com/micro-tools/notebridge/pkg/notion"
)

// Server contains the server configuration.
type Server struct {
	// Config is the config for the server.
	Config *config.Config

	// Pages is the Notion page service.
	Pages *notion.PageService

	// Databases is the Notion database service.
	Databases *notion.DatabaseService

	// Search is the Notion search service.
	Search *notion.SearchService

	// Chat is the character-chat client.
	Chat *chat.Client

	// Logger is the logger for the server.
	Logger hclog.Logger
}
