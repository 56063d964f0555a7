package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/f3rmion/sancai/internal/cache"
	"github.com/f3rmion/sancai/internal/config"
	"github.com/f3rmion/sancai/internal/dict"
	"github.com/f3rmion/sancai/internal/engine"
	"github.com/f3rmion/sancai/internal/logging"
	"github.com/f3rmion/sancai/internal/store"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// dictionaryFile is the file name searched for when no location is configured.
const dictionaryFile = "dictionary.json"

// session holds everything a command needs to analyze names.
type session struct {
	cfg    *config.Config
	logger *zap.Logger
	loader *dict.Loader
	engine *engine.Engine
	cache  *cache.ResultCache
	store  *store.Store
}

// newSession loads the config, builds the logger and wires the engine. The
// dictionary itself is loaded lazily by the first analysis.
func newSession(ctx context.Context) (*session, error) {
	configDir := getConfigDir()

	cfg, err := config.Load(filepath.Join(configDir, config.FileName))
	if err != nil {
		return nil, err
	}
	applyOverrides(cfg)

	logger, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return nil, err
	}

	location := dictionaryLocation(cfg, configDir)
	loader := dict.NewLoader(dict.NewSource(location), cfg.Dictionary.LoadTimeout, logger)

	s := &session{
		cfg:    cfg,
		logger: logger,
		loader: loader,
		engine: engine.New(loader, logger),
	}

	if cfg.Cache.Addr != "" {
		rc, err := cache.Connect(ctx, cache.Config{
			Addr:     cfg.Cache.Addr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
			TTL:      cfg.Cache.TTL,
		}, logger)
		if err != nil {
			// The cache only saves work; run without it.
			logger.Warn("Result cache disabled", zap.Error(err))
		} else {
			s.cache = rc
			s.engine = s.engine.WithCache(rc)
		}
	}

	logger.Debug("Session ready",
		zap.String("config_dir", configDir),
		zap.String("dictionary", location),
		zap.Bool("cache", s.cache != nil),
	)
	return s, nil
}

// applyOverrides layers flags and SANCAI_* environment variables over the file config.
func applyOverrides(cfg *config.Config) {
	if v := viper.GetString("dictionary"); v != "" {
		cfg.Dictionary.Location = v
	}
	if v := viper.GetString("log_level"); v != "" {
		cfg.Log.Level = v
	}
	if viper.GetBool("verbose") {
		cfg.Log.Level = "debug"
	}
	if v := viper.GetString("redis_addr"); v != "" {
		cfg.Cache.Addr = v
	}
	if v := viper.GetString("redis_password"); v != "" {
		cfg.Cache.Password = v
	}
	if v := viper.GetString("store_path"); v != "" {
		cfg.Store.Path = v
	}
}

// dictionaryLocation returns the configured location, or the first existing
// candidate file. When nothing exists the first candidate is returned so the
// load fails with a clear "unavailable" error naming it.
func dictionaryLocation(cfg *config.Config, configDir string) string {
	if cfg.Dictionary.Location != "" {
		return cfg.Dictionary.Location
	}

	paths := []string{
		filepath.Join("data", dictionaryFile),
		filepath.Join(configDir, dictionaryFile),
	}
	if exe, err := os.Executable(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(exe), "data", dictionaryFile))
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return paths[0]
}

// openStore opens the history database on first use.
func (s *session) openStore() (*store.Store, error) {
	if s.store != nil {
		return s.store, nil
	}

	path := s.cfg.Store.Path
	if path == "" {
		path = filepath.Join(getConfigDir(), store.FileName)
	}

	st, err := store.Open(path, s.logger)
	if err != nil {
		return nil, fmt.Errorf("opening history: %w", err)
	}
	s.store = st
	return st, nil
}

// Close releases the store and cache connections and flushes the logger.
func (s *session) Close() {
	if s.store != nil {
		s.store.Close()
	}
	if s.cache != nil {
		s.cache.Close()
	}
	s.logger.Sync()
}
