package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := NewConfig()
		assert.Equal(t, "https://api.openai.com/v1", cfg.EmbeddingHost)
		assert.Equal(t, "https://api.openai.com/v1", cfg.ChatHost)
		assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)
		assert.Equal(t, "gpt-4o-mini", cfg.ChatModel)
	})

	t.Run("with host sets both", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://localhost:11434/v1"))
		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
		assert.Equal(t, "http://localhost:11434/v1", cfg.ChatHost)
	})

	t.Run("separate hosts", func(t *testing.T) {
		cfg := NewConfig(
			WithEmbeddingHost("http://localhost:11434/v1"),
			WithChatHost("http://localhost:9100/v1"),
		)
		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
		assert.Equal(t, "http://localhost:9100/v1", cfg.ChatHost)
	})

	t.Run("models and token", func(t *testing.T) {
		cfg := NewConfig(
			WithEmbeddingModel("embeddinggemma"),
			WithChatModel("qwen2.5:3b"),
			WithToken("secret"),
		)
		assert.Equal(t, "embeddinggemma", cfg.EmbeddingModel)
		assert.Equal(t, "qwen2.5:3b", cfg.ChatModel)
		assert.Equal(t, "secret", cfg.Token)
	})
}

func TestConfigNormalize(t *testing.T) {
	t.Run("adds v1 suffix", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://localhost:11434"))
		cfg.Normalize()
		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
		assert.Equal(t, "http://localhost:11434/v1", cfg.ChatHost)
	})

	t.Run("strips trailing slash before adding v1", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://localhost:11434/"))
		cfg.Normalize()
		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	})

	t.Run("leaves v1 suffix alone", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://localhost:11434/v1"))
		cfg.Normalize()
		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	})
}

func TestConfigValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cfg := NewConfig()
		require.NoError(t, cfg.Validate())
	})

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing embedding host", func(c *Config) { c.EmbeddingHost = "" }},
		{"missing chat host", func(c *Config) { c.ChatHost = "" }},
		{"missing token", func(c *Config) { c.Token = "" }},
		{"missing embedding model", func(c *Config) { c.EmbeddingModel = "" }},
		{"missing chat model", func(c *Config) { c.ChatModel = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
