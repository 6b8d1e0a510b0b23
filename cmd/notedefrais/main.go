package main

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/tbenard/notedefrais/internal/receipt"
	"github.com/tbenard/notedefrais/internal/recognition"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-version" || arg == "-v" {
			fmt.Println(version)
			os.Exit(0)
		}
	}

	// Optional .env for local development; missing file is fine
	_ = godotenv.Load()

	fs := ff.NewFlagSet("notedefrais")
	var (
		port           = fs.IntLong("port", 8080, "HTTP server port")
		uploadDir      = fs.StringLong("upload-dir", "./uploads", "Transient upload directory path")
		recognizerType = fs.StringLong("recognizer", "gemini", "Recognizer type: 'gemini' or 'remote'")
		geminiKey      = fs.StringLong("gemini-key", "", "Google Gemini API key (or set GEMINI_API_KEY env var)")
		geminiModel    = fs.StringLong("gemini-model", "gemini-2.5-pro", "Google Gemini model name")
		ocrURL         = fs.StringLong("ocr-url", "http://localhost:8000", "Remote OCR service base URL")
		ocrTimeout     = fs.DurationLong("ocr-timeout", 30*time.Second, "Per-image recognition timeout")
		showVersion    = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("NOTEDEFRAIS"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Check version flag after parsing
	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	recognizer, err := buildRecognizer(*recognizerType, *geminiKey, *geminiModel, *ocrURL)
	if err != nil {
		slog.Error("Failed to initialize recognizer", "error", err)
		os.Exit(1)
	}
	defer recognizer.Close()

	// Initialize storage
	slog.Info("Initializing upload storage...")
	store, err := receipt.NewLocalStorage(*uploadDir)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}

	pipeline := receipt.NewPipeline(recognizer, *ocrTimeout)
	service := receipt.NewService(pipeline, store)
	server := receipt.NewServer(service)

	// Start server in goroutine
	addr := fmt.Sprintf(":%d", *port)
	go func() {
		if err := server.Start(addr); err != nil {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("Server started", "address", fmt.Sprintf("http://localhost%s", addr))

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Info("Shutting down...")
}

func buildRecognizer(recognizerType, geminiKey, geminiModel, ocrURL string) (recognition.Recognizer, error) {
	switch recognizerType {
	case "gemini":
		apiKey := geminiKey
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		if apiKey == "" {
			return nil, fmt.Errorf("gemini API key is required, set --gemini-key flag or GEMINI_API_KEY environment variable")
		}
		slog.Info("Initializing Gemini recognizer...", "model", geminiModel)
		return recognition.NewGemini(apiKey, geminiModel)
	case "remote":
		slog.Info("Initializing remote recognizer...", "url", ocrURL)
		return recognition.NewRemote(ocrURL)
	default:
		return nil, fmt.Errorf("invalid recognizer type %q, valid: gemini or remote", recognizerType)
	}
}
