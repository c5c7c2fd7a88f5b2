package main

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/fogfactory/signalpipe/benchmark"
	"github.com/hashicorp/go-hclog"
	"github.com/joho/godotenv"
)

func main() {
	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "pipeprofile",
		Level: hclog.LevelFromString(os.Getenv("PIPE_LOG_LEVEL")),
	})

	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Error("failed to load .env", "error", err)
		os.Exit(1)
	}
	// PIPE_LOG_LEVEL may come from .env
	if level := os.Getenv("PIPE_LOG_LEVEL"); level != "" {
		logger.SetLevel(hclog.LevelFromString(level))
	}

	cfg, err := loadConfig()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	report, err := benchmark.Profile(cfg, logger)
	if err != nil {
		logger.Error("profiling failed", "error", err)
		os.Exit(1)
	}
	logger.Info("profile written",
		"file", report.File,
		"delivered", report.Delivered,
		"expected", report.Expected,
		"duration", report.Duration)
}

func loadConfig() (benchmark.Config, error) {
	var cfg benchmark.Config
	for _, v := range []struct {
		name  string
		value *int
		def   int
	}{
		{"PIPE_PROFILE_FANOUT", &cfg.Fanout, 4},
		{"PIPE_PROFILE_DEPTH", &cfg.Depth, 3},
		{"PIPE_PROFILE_SENDS", &cfg.Sends, 100000},
		{"PIPE_PROFILE_POOL", &cfg.PoolSize, 0},
	} {
		*v.value = v.def
		raw, ok := os.LookupEnv(v.name)
		if !ok || raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return cfg, errors.New(v.name + " should be a non-negative integer, got " + strconv.Quote(raw))
		}
		*v.value = n
	}
	return cfg, nil
}
