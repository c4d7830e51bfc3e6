package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every config path and override at a clean temp environment
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("INGREDI_CONFIG_DIR", dir)
	t.Setenv("INGREDI_DATA_DIR", filepath.Join(dir, "data"))
	for _, env := range []string{
		"VITE_API_BASE_URL", "INGREDI_API_BASE_URL", "INGREDI_BACKEND",
		"INGREDI_MODEL", "INGREDI_VOICE_COMMAND", "INGREDI_DEBUG",
	} {
		t.Setenv(env, "")
	}
	return dir
}

func TestLoad_CreatesTemplate(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "config.toml"))
	assert.DirExists(t, filepath.Join(dir, "data"))
	assert.Equal(t, "http://localhost:8000", cfg.ServiceURL)
	assert.Equal(t, "/api/reasoning", cfg.ReasoningPath)
	assert.Equal(t, "/api/ocr", cfg.OCRPath)
	assert.Equal(t, "service", cfg.Backend)
	assert.Equal(t, 120*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 3, cfg.MinOCRChars)
	assert.False(t, cfg.Debug)

	// The generated template parses back to the same config
	again, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoad_FileValues(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
product_context = "kids cereal"

[service]
base_url = "https://reason.example.com"
reasoning_path = "/api/reasoning/ingredient"
timeout_seconds = 30

[backend]
type = "ollama"
model = "qwen2.5:7b"
base_url = "http://gpu-box:11434"

[capture]
voice_command = "whisper-once"
min_ocr_chars = 5
`), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "kids cereal", cfg.ProductContext)
	assert.Equal(t, "https://reason.example.com", cfg.ServiceURL)
	assert.Equal(t, "/api/reasoning/ingredient", cfg.ReasoningPath)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "ollama", cfg.Backend)
	assert.Equal(t, "qwen2.5:7b", cfg.BackendModel)
	assert.Equal(t, "http://gpu-box:11434", cfg.BackendBaseURL())
	assert.Equal(t, "whisper-once", cfg.VoiceCommand)
	assert.Equal(t, 5, cfg.MinOCRChars)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("VITE_API_BASE_URL", "http://vite:9000")
	t.Setenv("INGREDI_API_BASE_URL", "http://override:8080")
	t.Setenv("INGREDI_BACKEND", "openai")
	t.Setenv("INGREDI_MODEL", "gpt-4o")
	t.Setenv("INGREDI_DEBUG", "1")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://override:8080", cfg.ServiceURL, "INGREDI_API_BASE_URL wins over VITE_API_BASE_URL")
	assert.Equal(t, "openai", cfg.Backend)
	assert.Equal(t, "gpt-4o", cfg.BackendModel)
	assert.True(t, cfg.Debug)
}

func TestLoad_Invalid(t *testing.T) {
	dir := isolate(t)

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[service\nbase_url ="), 0600))
	_, err := Load(bad)
	assert.Error(t, err)

	unknown := filepath.Join(dir, "unknown.toml")
	require.NoError(t, os.WriteFile(unknown, []byte("[backend]\ntype = \"telepathy\"\n"), 0600))
	_, err = Load(unknown)
	assert.ErrorContains(t, err, "telepathy")
}

func TestConfig_APIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-openai")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("MY_KEY", "sk-custom")

	assert.Equal(t, "sk-openai", (&Config{Backend: "openai"}).APIKey())
	assert.Equal(t, "sk-ant", (&Config{Backend: "claude"}).APIKey())
	assert.Equal(t, "sk-custom", (&Config{Backend: "openai", APIKeyEnv: "MY_KEY"}).APIKey())
	assert.Empty(t, (&Config{Backend: "service"}).APIKey())
}

func TestConfig_BackendBaseURL(t *testing.T) {
	cfg := &Config{ServiceURL: "http://svc", BackendURL: "http://model"}

	cfg.Backend = "service"
	assert.Equal(t, "http://svc", cfg.BackendBaseURL())
	cfg.Backend = ""
	assert.Equal(t, "http://svc", cfg.BackendBaseURL())
	cfg.Backend = "anthropic"
	assert.Equal(t, "http://model", cfg.BackendBaseURL())
}

func TestSaveUserConfig(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "saved", "config.toml")

	u := DefaultUserConfig()
	u.ProductContext = "protein bar"
	u.Backend.Type = "anthropic"
	require.NoError(t, SaveUserConfig(u, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := LoadUserConfig(path)
	require.NoError(t, err)
	assert.Equal(t, u, loaded)
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	t.Setenv("INGREDI_TEST_DIR", "/srv/data")

	assert.Equal(t, "", ExpandPath(""))
	assert.Equal(t, "/home/tester", ExpandPath("~"))
	assert.Equal(t, "/home/tester/.local/share/ingredi", ExpandPath("~/.local/share/ingredi"))
	assert.Equal(t, "/srv/data/logs", ExpandPath("$INGREDI_TEST_DIR/logs"))
}
