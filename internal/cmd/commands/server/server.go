// Package server implements the command that runs the HTTP gateway.
package server

import (
	"flag"
	"fmt"
	"net/http"
	"time"

	"github.com/micro-tools/notebridge/internal/api"
	"github.com/micro-tools/notebridge/internal/cmd/base"
	"github.com/micro-tools/notebridge/internal/config"
	"github.com/micro-tools/notebridge/internal/server"
	"github.com/micro-tools/notebridge/pkg/chat"
	"github.com/micro-tools/notebridge/pkg/notion"
)

type Command struct {
	*base.Command

	flagConfig string
	flagAddr   string
}

func (c *Command) Synopsis() string {
	return "Run the server"
}

func (c *Command) Help() string {
	return `Usage: notebridge server -config=<path>

  Runs the notebridge gateway: a REST facade over the Notion API plus a
  character-chat relay.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("server", flag.ExitOnError))

	f.StringVar(
		&c.flagConfig, "config", "config.hcl",
		"Path to the HCL configuration file",
	)
	f.StringVar(
		&c.flagAddr, "addr", "",
		"Listen address, overrides the configuration file",
	)

	return f
}

func (c *Command) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	cfg, err := config.NewConfig(c.flagConfig)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error loading configuration: %v", err))
		return 1
	}
	if c.flagAddr != "" {
		cfg.Server.Addr = c.flagAddr
	}

	notionClient, err := notion.NewClient(cfg.Notion, c.Log)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error creating notion client: %v", err))
		return 1
	}
	chatClient, err := chat.NewClient(cfg.Chat, c.Log)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error creating chat client: %v", err))
		return 1
	}

	srv := server.Server{
		Config:    cfg,
		Pages:     notion.NewPageService(notionClient, c.Log),
		Databases: notion.NewDatabaseService(notionClient, c.Log),
		Search:    notion.NewSearchService(notionClient, c.Log),
		Chat:      chatClient,
		Logger:    c.Log,
	}

	mux := http.NewServeMux()
	api.RegisterRoutes(mux, srv)

	httpServer := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: api.RequestID(api.Log(c.Log.Named("http"), mux)),

		ReadHeaderTimeout: 10 * time.Second,
	}

	c.Log.Info("server listening", "addr", cfg.Server.Addr)
	if err := httpServer.ListenAndServe(); err != nil {
		c.UI.Error(fmt.Sprintf("server error: %v", err))
		return 1
	}

	return 0
}
