// Package config loads and validates the gateway configuration. A resolved
// Config is passed into every constructor; nothing looks settings up
// ambiently at call time.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/iancoleman/strcase"
	"github.com/joho/godotenv"

	"github.com/micro-tools/notebridge/pkg/chat"
	"github.com/micro-tools/notebridge/pkg/notion"
)

const defaultAddr = "127.0.0.1:8000"

// ServerConfig configures the inbound HTTP listener.
type ServerConfig struct {
	// Addr is the listen address, host:port.
	Addr string `hcl:"addr,optional"`
}

// Config is the root gateway configuration.
//
// Example (HCL):
//
//	server {
//	  addr = "127.0.0.1:8000"
//	}
//
//	notion {
//	  base_url    = "https://api.notion.com"
//	  api_key     = "secret"
//	  database_id = "d9824bdc-8445-4327-be8b-5b47500af6ce"
//	}
//
//	chat {
//	  base_url = "https://chat.example.com"
//	}
type Config struct {
	Server *ServerConfig  `hcl:"server,block"`
	Notion *notion.Config `hcl:"notion,block"`
	Chat   *chat.Config   `hcl:"chat,block"`
}

// NewConfig parses the HCL file at path and applies environment overrides.
// A .env file in the working directory is loaded first if present.
func NewConfig(path string) (*Config, error) {
	// Missing .env files are fine; explicit env vars still apply.
	_ = godotenv.Load()

	var cfg Config
	if err := hclsimple.DecodeFile(path, nil, &cfg); err != nil {
		return nil, fmt.Errorf("decoding config file %s: %w", path, err)
	}
	cfg.applyDefaults()
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server == nil {
		c.Server = &ServerConfig{}
	}
	if c.Server.Addr == "" {
		c.Server.Addr = defaultAddr
	}
	if c.Notion == nil {
		c.Notion = &notion.Config{}
	}
	if c.Chat == nil {
		c.Chat = &chat.Config{}
	}
}

// applyEnvOverrides lets environment variables win over file values, named
// <BLOCK>_<FIELD> in screaming snake case (NOTION_API_KEY, CHAT_BASE_URL).
func (c *Config) applyEnvOverrides() {
	override(&c.Server.Addr, "server", "Addr")
	override(&c.Notion.BaseURL, "notion", "BaseURL")
	override(&c.Notion.APIKey, "notion", "APIKey")
	override(&c.Notion.Version, "notion", "Version")
	override(&c.Notion.DatabaseID, "notion", "DatabaseID")
	override(&c.Chat.BaseURL, "chat", "BaseURL")
	override(&c.Chat.Timezone, "chat", "Timezone")
}

func override(target *string, block, field string) {
	key := strcase.ToScreamingSnake(block) + "_" + strcase.ToScreamingSnake(field)
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}

// Validate aggregates every configuration problem instead of stopping at the
// first one.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.Server.Addr == "" {
		result = multierror.Append(result,
			fmt.Errorf("server addr is required"))
	}
	if err := c.Notion.Validate(); err != nil {
		result = multierror.Append(result,
			fmt.Errorf("notion config: %w", err))
	}
	if c.Chat.BaseURL == "" {
		result = multierror.Append(result,
			fmt.Errorf("chat config: base_url is required"))
	}

	return result.ErrorOrNil()
}
