package app

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"mxtool/internal/config"
	"mxtool/internal/log"
	"mxtool/internal/mx"
	"mxtool/internal/services/recovery"
	"mxtool/internal/store"
)

// Options select the config file and runtime overrides for building the app.
type Options struct {
	ConfigPath string // empty means <user config dir>/mxtool/config.toml
	LogLevel   string // overrides the config file when set
	HTTP       *http.Client
}

// New constructs the dependency graph: config, logging, the homeserver
// client, the backup-key store and the recovery service.
func New(opts Options) (*App, error) {
	path := opts.ConfigPath
	dir := filepath.Dir(path)
	if path == "" {
		var err error
		dir, err = config.DefaultDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "config.toml")
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}
	backend, err := log.New(os.Stderr, level)
	if err != nil {
		return nil, err
	}

	httpClient := opts.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	client := mx.New(cfg.Homeserver, cfg.UserID, cfg.AccessToken, httpClient)

	fs, err := store.NewFileStore(dir)
	if err != nil {
		return nil, err
	}

	return &App{
		Cfg:      cfg,
		Client:   client,
		Store:    fs,
		Recovery: recovery.New(client, fs, backend),
	}, nil
}
