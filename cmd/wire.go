package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	gatewayadapter "github.com/summarizeai/sai-cli/internal/adapters/gateway"
	historyrender "github.com/summarizeai/sai-cli/internal/adapters/render/history"
	tomlrepo "github.com/summarizeai/sai-cli/internal/adapters/repo/toml"
	chainstore "github.com/summarizeai/sai-cli/internal/adapters/secrets/chain"
	"github.com/summarizeai/sai-cli/internal/application"
	"github.com/summarizeai/sai-cli/internal/ports"
)

type app struct {
	gateway         *gatewayadapter.Gateway
	auth            *application.AuthService
	health          *application.HealthService
	secretStore     ports.SecretStore
	preferences     ports.PreferencesRepository
	defaultPageSize int
	historyRenderer func(application.HistoryView, historyrender.RenderOptions) (string, error)
	log             zerolog.Logger
}

func wireApp() (*app, error) {
	log := newLogger()

	cfg, err := gatewayadapter.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("wire gateway config: %w", err)
	}

	prefsRepo, err := tomlrepo.NewRepository(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire preferences repository: %w", err)
	}

	prefs, err := prefsRepo.Load(context.Background())
	if err != nil {
		return nil, fmt.Errorf("load preferences: %w", err)
	}
	// A stored base URL only applies when the environment did not set one.
	if prefs.BaseURL != "" && os.Getenv("SAI_API_URL") == "" {
		cfg.BaseURL = prefs.BaseURL
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	secretStore, err := chainstore.NewEnvFirstWithFileFallback(filepath.Join(homeDir, ".sai", "secrets"))
	if err != nil {
		return nil, fmt.Errorf("wire secret store chain: %w", err)
	}

	tokens := func(ctx context.Context) string {
		token, err := secretStore.Get(ctx, ports.SessionTokenKey)
		if err != nil {
			return ""
		}
		return token
	}

	gw := gatewayadapter.New(cfg, tokens, log)

	return &app{
		gateway:         gw,
		auth:            application.NewAuthService(gw, secretStore),
		health:          application.NewHealthService(gw),
		secretStore:     secretStore,
		preferences:     prefsRepo,
		defaultPageSize: prefs.PageSize,
		historyRenderer: historyrender.Render,
		log:             log,
	}, nil
}

func (a *app) newHistoryController(opts ...application.ControllerOption) *application.HistoryController {
	base := []application.ControllerOption{application.WithPageSize(a.defaultPageSize)}
	return application.NewHistoryController(a.gateway, a.log, append(base, opts...)...)
}

func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if os.Getenv("SAI_DEBUG") != "" {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
}
