package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	assert.Equal(t, ProviderGemini, cfg.ModelProvider)
	assert.Equal(t, 120*time.Second, cfg.RequestTimeout())
	assert.NotEmpty(t, cfg.Gemini.Model)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.BindAddr)
}

func TestLoad_EnvThenFlags(t *testing.T) {
	t.Setenv("MODEL_PROVIDER", "GEMINI-REST")
	t.Setenv("GEMINI_API_KEY", "from-env")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "30")

	cfg, err := Load([]string{"-gemini-model", "custom", "-request-timeout-seconds", "5", "in.png"})
	require.NoError(t, err)
	assert.Equal(t, ProviderGeminiREST, cfg.ModelProvider)
	assert.Equal(t, "from-env", cfg.Gemini.APIKey)
	assert.Equal(t, "custom", cfg.Gemini.Model)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout())
	assert.Equal(t, []string{"in.png"}, cfg.Args())
}

func TestLoad_StubNeedsNoKeys(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	cfg, err := Load([]string{"-model-provider", "stub"})
	require.NoError(t, err)
	assert.Equal(t, ProviderStub, cfg.ModelProvider)
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	cfg.Gemini.APIKey = ""
	require.Error(t, cfg.Validate())

	cfg.ModelProvider = ProviderOpenAI
	require.Error(t, cfg.Validate())
	cfg.OpenAI.APIKey = "sk"
	require.NoError(t, cfg.Validate())

	cfg.ModelProvider = "midjourney"
	require.Error(t, cfg.Validate())

	cfg.ModelProvider = ProviderStub
	cfg.Server.MaxUploadBytes = 0
	require.Error(t, cfg.Validate())
}

func TestRequestTimeout_Minimum(t *testing.T) {
	cfg := Defaults()
	cfg.RequestTimeoutSeconds = 0
	assert.Equal(t, time.Second, cfg.RequestTimeout())
}
