package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	LogLevel      string
	LogConsole    bool
	IndexPath     string
	ProgressEvery int
	PathCacheSize int
	MetricsAddr   string
	Version       string
}

func FromEnv() Config {
	progress := getint("PROGRESS_EVERY", 5000)
	if progress < 0 {
		progress = 0
	}
	cacheSize := getint("PATH_CACHE_SIZE", 1024)
	if cacheSize < 0 {
		cacheSize = 0
	}

	return Config{
		LogLevel:      getenv("LOG_LEVEL", "info"),
		LogConsole:    getbool("LOG_CONSOLE", false),
		IndexPath:     getenv("SPATIAL_FILTER_INDEX_PATH", ""),
		ProgressEvery: progress,
		PathCacheSize: cacheSize,
		MetricsAddr:   getenv("METRICS_ADDR", ""),
		Version:       getenv("VERSION", "dev"),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		return strings.ToLower(strings.TrimSpace(v)) == "true"
	}
	return def
}
