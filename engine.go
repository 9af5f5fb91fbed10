package pdfthumb

import (
	"io"
	"log/slog"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/klippa-app/go-pdfium"
	"github.com/klippa-app/go-pdfium/webassembly"
)

// Logger is used for operation logging and is global since the engine is shared
// by every Document. It discards everything unless PDFTHUMB_LOG_LEVEL is set or
// the host application replaces it.
var Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

var (
	engineOnce     sync.Once
	enginePool     pdfium.Pool
	engineInstance pdfium.Pdfium
	engineErr      error
)

// engine initializes the pdfium WebAssembly runtime on first use and checks
// out one long-lived worker instance that every Document shares. Document and
// page handles are only valid on the worker that created them, and the engine
// serializes calls per worker, so a single shared instance serves any number
// of Documents.
func engine() (pdfium.Pdfium, error) {
	engineOnce.Do(func() {
		// Load .env file (silently ignore if doesn't exist)
		_ = godotenv.Load(".env")

		setupLogging()

		minIdle := getEnvInt("PDFTHUMB_POOL_MIN_IDLE", 1)
		maxIdle := getEnvInt("PDFTHUMB_POOL_MAX_IDLE", 1)
		maxTotal := getEnvInt("PDFTHUMB_POOL_MAX_TOTAL", 1)
		timeout := time.Duration(getEnvInt("PDFTHUMB_POOL_TIMEOUT_SECONDS", 30)) * time.Second

		pool, err := webassembly.Init(webassembly.Config{
			MinIdle:  minIdle,
			MaxIdle:  maxIdle,
			MaxTotal: maxTotal,
		})
		if err != nil {
			engineErr = platformError("unable to initialize pdfium runtime", err)
			return
		}
		instance, err := pool.GetInstance(timeout)
		if err != nil {
			pool.Close()
			engineErr = platformError("unable to get pdfium instance", err)
			return
		}
		enginePool = pool
		engineInstance = instance
		Logger.Info("pdfium runtime initialized",
			"minIdle", minIdle, "maxIdle", maxIdle, "maxTotal", maxTotal)
	})
	return engineInstance, engineErr
}

// setupLogging configures the package logger from the environment.
func setupLogging() {
	logLevel := getEnv("PDFTHUMB_LOG_LEVEL", "")
	if logLevel == "" {
		return
	}

	var level slog.Level
	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handlerOptions := &slog.HandlerOptions{Level: level}
	Logger = slog.New(slog.NewTextHandler(os.Stderr, handlerOptions))
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intVal, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intVal
}
