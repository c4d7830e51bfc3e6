package main

import (
	"net/http"

	"go.uber.org/zap"

	"ingredi/capture"
	"ingredi/config"
	"ingredi/model"
	"ingredi/provider"
)

// app bundles the components shared by the TUI and the headless commands
type app struct {
	model  *model.Model
	camera *capture.Camera
	voice  *capture.Voice
}

// loadConfig reads the config file and applies command-line overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		cfg.ServiceURL = apiURL
	}
	if backend != "" {
		cfg.Backend = backend
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildApp(cfg *config.Config, log *zap.Logger) *app {
	httpClient := &http.Client{Timeout: cfg.RequestTimeout}

	// A backend that cannot be built leaves the gateway offline: every
	// request then resolves to the error payload.
	analyzer, err := provider.NewAnalyzer(provider.Config{
		Type:          provider.ParseBackendType(cfg.Backend),
		BaseURL:       cfg.BackendBaseURL(),
		ReasoningPath: cfg.ReasoningPath,
		Model:         cfg.BackendModel,
		APIKey:        cfg.APIKey(),
		HTTPClient:    httpClient,
	})
	if err != nil {
		log.Warn("backend unavailable, running offline", zap.String("backend", cfg.Backend), zap.Error(err))
		analyzer = nil
	}

	gateway := model.NewGateway(analyzer,
		model.WithTimeout(cfg.RequestTimeout),
		model.WithProductContext(cfg.ProductContext),
		model.WithLogger(log.Named("gateway")),
	)

	var extractor capture.Extractor
	if ocr, err := provider.NewOCRClient(cfg.ServiceURL, cfg.OCRPath, httpClient); err != nil {
		log.Warn("ocr unavailable", zap.Error(err))
	} else {
		extractor = ocr
	}

	var transcriber capture.Transcriber
	if t, err := capture.NewCommandTranscriber(cfg.VoiceCommand); err != nil {
		log.Warn("voice command unavailable, using dictation", zap.Error(err))
	} else if t != nil {
		transcriber = t
	}

	return &app{
		model:  model.NewModel(gateway, log.Named("controller"), Version),
		camera: capture.NewCamera(extractor, cfg.MinOCRChars, log.Named("camera")),
		voice:  capture.NewVoice(transcriber, log.Named("voice")),
	}
}
