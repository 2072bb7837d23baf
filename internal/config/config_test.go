package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.hcl")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestNewConfig(t *testing.T) {
	t.Run("loads a full config", func(t *testing.T) {
		path := writeConfigFile(t, `
server {
  addr = "0.0.0.0:9000"
}

notion {
  base_url    = "https://api.notion.com"
  api_key     = "secret"
  database_id = "db-1"
}

chat {
  base_url = "https://chat.example.com"
  timezone = "UTC"
}
`)
		cfg, err := NewConfig(path)
		require.NoError(t, err)

		assert.Equal(t, "0.0.0.0:9000", cfg.Server.Addr)
		assert.Equal(t, "secret", cfg.Notion.APIKey)
		assert.Equal(t, "db-1", cfg.Notion.DatabaseID)
		assert.Equal(t, "UTC", cfg.Chat.Timezone)
	})

	t.Run("applies defaults", func(t *testing.T) {
		path := writeConfigFile(t, `
notion {
  base_url = "https://api.notion.com"
  api_key  = "secret"
}

chat {
  base_url = "https://chat.example.com"
}
`)
		cfg, err := NewConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "127.0.0.1:8000", cfg.Server.Addr)
	})

	t.Run("environment overrides win", func(t *testing.T) {
		t.Setenv("NOTION_API_KEY", "env-secret")
		t.Setenv("CHAT_BASE_URL", "https://env.example.com")

		path := writeConfigFile(t, `
notion {
  base_url = "https://api.notion.com"
  api_key  = "file-secret"
}

chat {
  base_url = "https://file.example.com"
}
`)
		cfg, err := NewConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "env-secret", cfg.Notion.APIKey)
		assert.Equal(t, "https://env.example.com", cfg.Chat.BaseURL)
	})

	t.Run("validation problems are aggregated", func(t *testing.T) {
		path := writeConfigFile(t, `
notion {
  base_url = "https://api.notion.com"
  api_key  = ""
}
`)
		_, err := NewConfig(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "notion config")
		assert.Contains(t, err.Error(), "chat config")
	})

	t.Run("missing file fails", func(t *testing.T) {
		_, err := NewConfig(filepath.Join(t.TempDir(), "missing.hcl"))
		require.Error(t, err)
	})
}
