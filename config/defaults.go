package config

func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		DataDirectory: "~/.local/share/ingredi",
		Service: ServiceConfig{
			BaseURL:        "http://localhost:8000",
			ReasoningPath:  "/api/reasoning",
			OCRPath:        "/api/ocr",
			TimeoutSeconds: 120,
		},
		Backend: BackendConfig{
			Type: "service",
		},
		Capture: CaptureConfig{
			MinOCRChars: 3,
		},
	}
}

func GenerateUserConfigTemplate() string {
	return `# ingredi configuration
# Location: ~/.config/ingredi/config.toml
# This file uses TOML format: https://toml.io
# Read once at start; restart ingredi after editing.

# Directory for the debug log (INGREDI_DEBUG=1)
data_directory = "~/.local/share/ingredi"

# Optional context sent with every request, e.g. "breakfast cereal for kids"
product_context = ""

[service]
# Reasoning service base URL (overridden by INGREDI_API_BASE_URL)
base_url = "http://localhost:8000"

# Use "/api/reasoning/ingredient" for the ingredient-specific endpoint
reasoning_path = "/api/reasoning"
ocr_path = "/api/ocr"
timeout_seconds = 120

[backend]
# service | ollama | openai | anthropic
# Model backends are asked to return the same JSON contract as the service.
type = "service"
# model = "llama3.1:latest"
# base_url = "http://localhost:11434"
# api_key_env = "OPENAI_API_KEY"

[capture]
# External speech-to-text command printing the transcript on stdout.
# Leave empty to type a transcript in the voice overlay instead.
voice_command = ""

# OCR results shorter than this are replaced by a fallback message
min_ocr_chars = 3
`
}
