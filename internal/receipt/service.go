package receipt

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// IDGenerator generates unique names for transient upload files
type IDGenerator interface {
	Generate() string
}

// defaultIDGenerator generates IDs using UnixNano timestamp
type defaultIDGenerator struct{}

func (g *defaultIDGenerator) Generate() string {
	return fmt.Sprintf("%d", time.Now().UnixNano())
}

// Service handles receipt uploads: transient storage, the extraction
// pipeline, and cleanup.
type Service struct {
	pipeline    *Pipeline
	storage     Storage
	idGenerator IDGenerator
}

// NewService creates a new Service with the default ID generator
func NewService(pipeline *Pipeline, storage Storage) *Service {
	return &Service{
		pipeline:    pipeline,
		storage:     storage,
		idGenerator: &defaultIDGenerator{},
	}
}

// NewServiceWithDeps creates a new Service with custom dependencies for testing
func NewServiceWithDeps(pipeline *Pipeline, storage Storage, idGen IDGenerator) *Service {
	return &Service{
		pipeline:    pipeline,
		storage:     storage,
		idGenerator: idGen,
	}
}

// sanitizeFilename cleans up a filename by removing special characters and truncating length
func sanitizeFilename(filename string) string {
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)

	// Remove special characters, keep only alphanumeric, spaces, hyphens, and underscores
	reg := regexp.MustCompile(`[^a-zA-Z0-9\s\-_]`)
	base = reg.ReplaceAllString(base, "")

	// Replace multiple spaces with single space
	reg = regexp.MustCompile(`\s+`)
	base = reg.ReplaceAllString(base, " ")

	base = strings.TrimSpace(base)

	// Truncate phone-generated long filenames (50 chars for base, plus extension)
	maxLen := 50
	if len(base) > maxLen {
		base = base[:maxLen]
	}

	if base == "" {
		base = "receipt"
	}

	return base + ext
}

// ProcessUpload writes the upload to transient storage, runs the
// extraction pipeline, and removes the transient file again on every exit
// path. Uploads are never kept, whatever the outcome.
func (s *Service) ProcessUpload(ctx context.Context, filename string, data []byte, contentType string) (*Record, error) {
	savedPath, cleanup, err := s.stash(filename, data)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	record, err := s.pipeline.Process(ctx, data, contentType)
	if err != nil {
		slog.Error("Failed to process receipt",
			"filename", filename,
			"content_type", contentType,
			"file_size", len(data),
			"error", err,
		)
		return nil, err
	}

	slog.Info("Processed receipt",
		"filename", savedPath,
		"merchant", record.Merchant,
		"amount", record.Amount,
		"category", record.Category,
	)
	return record, nil
}

// RecognizeUpload returns the raw recognized text for an upload, with the
// same transient-file lifecycle as ProcessUpload.
func (s *Service) RecognizeUpload(ctx context.Context, filename string, data []byte, contentType string) (string, error) {
	_, cleanup, err := s.stash(filename, data)
	if err != nil {
		return "", err
	}
	defer cleanup()

	text, err := s.pipeline.RecognizeOnly(ctx, data, contentType)
	if err != nil {
		slog.Error("Failed to recognize receipt text",
			"filename", filename,
			"content_type", contentType,
			"error", err,
		)
		return "", err
	}
	return text, nil
}

// stash saves the upload under a unique transient name and returns a
// cleanup func that always removes it.
func (s *Service) stash(filename string, data []byte) (string, func(), error) {
	id := s.idGenerator.Generate()
	cleanFilename := sanitizeFilename(filename)

	savedPath, err := s.storage.Save(fmt.Sprintf("%s_%s", id, cleanFilename), data)
	if err != nil {
		return "", nil, fmt.Errorf("saving upload: %w", err)
	}

	cleanup := func() {
		if err := s.storage.Delete(savedPath); err != nil {
			slog.Warn("Failed to delete transient upload", "filename", savedPath, "error", err)
		}
	}
	return savedPath, cleanup, nil
}
