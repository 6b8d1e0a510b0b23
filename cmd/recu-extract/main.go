package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/tbenard/notedefrais/internal/receipt"
	"github.com/tbenard/notedefrais/internal/recognition"
)

func main() {
	_ = godotenv.Load()

	fs := ff.NewFlagSet("recu-extract")
	var (
		recognizerType = fs.StringLong("recognizer", "gemini", "Recognizer type: 'gemini' or 'remote'")
		geminiKey      = fs.StringLong("gemini-key", "", "Google Gemini API key (or set GEMINI_API_KEY env var)")
		geminiModel    = fs.StringLong("gemini-model", "gemini-2.5-pro", "Google Gemini model name")
		ocrURL         = fs.StringLong("ocr-url", "http://localhost:8000", "Remote OCR service base URL")
		ocrTimeout     = fs.DurationLong("ocr-timeout", 30*time.Second, "Per-image recognition timeout")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("NOTEDEFRAIS"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	args := fs.GetArgs()
	if len(args) < 1 {
		// Usage errors go to stderr; stdout stays reserved for records
		// and pipeline errors.
		output, _ := json.MarshalIndent(map[string]string{"error": "No file path provided"}, "", "  ")
		fmt.Fprintln(os.Stderr, string(output))
		os.Exit(1)
	}
	path := args[0]

	imageData, err := os.ReadFile(path)
	if err != nil {
		printError(fmt.Sprintf("reading file: %v", err))
		os.Exit(1)
	}

	recognizer, err := buildRecognizer(*recognizerType, *geminiKey, *geminiModel, *ocrURL)
	if err != nil {
		printError(err.Error())
		os.Exit(1)
	}
	defer recognizer.Close()

	pipeline := receipt.NewPipeline(recognizer, *ocrTimeout)
	record, err := pipeline.Process(context.Background(), imageData, contentTypeForPath(path))
	if err != nil {
		printError(err.Error())
		os.Exit(1)
	}

	output, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		printError(fmt.Sprintf("encoding record: %v", err))
		os.Exit(1)
	}
	fmt.Println(string(output))
}

// printError writes a single-key error object so callers can parse
// failure output the same way as success output.
func printError(message string) {
	output, _ := json.MarshalIndent(map[string]string{"error": message}, "", "  ")
	fmt.Println(string(output))
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
		return recognition.NewGemini(apiKey, geminiModel)
	case "remote":
		return recognition.NewRemote(ocrURL)
	default:
		return nil, fmt.Errorf("invalid recognizer type %q, valid: gemini or remote", recognizerType)
	}
}

func contentTypeForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".pdf":
		return "application/pdf"
	case ".heic", ".heif":
		return "image/heic"
	default:
		return "application/octet-stream"
	}
}
