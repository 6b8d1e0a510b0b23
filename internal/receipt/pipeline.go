package receipt

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tbenard/notedefrais/internal/extraction"
	"github.com/tbenard/notedefrais/internal/recognition"
)

// unknownMerchant is the sentinel used when no merchant line is detected
const unknownMerchant = "Unknown Merchant"

// defaultRecognitionTimeout bounds the recognizer call, the dominant and
// most variable cost of the pipeline
const defaultRecognitionTimeout = 30 * time.Second

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

// defaultTimeSource provides the current time
type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Pipeline turns one receipt image into one Record. It holds no mutable
// state and is safe for concurrent use as long as its recognizer is.
type Pipeline struct {
	recognizer recognition.Recognizer
	timeout    time.Duration
	timeSource TimeSource
}

// NewPipeline creates a new Pipeline with the default time source
func NewPipeline(recognizer recognition.Recognizer, timeout time.Duration) *Pipeline {
	return NewPipelineWithDeps(recognizer, timeout, &defaultTimeSource{})
}

// NewPipelineWithDeps creates a new Pipeline with a custom time source for testing
func NewPipelineWithDeps(recognizer recognition.Recognizer, timeout time.Duration, timeSource TimeSource) *Pipeline {
	if timeout <= 0 {
		timeout = defaultRecognitionTimeout
	}
	return &Pipeline{
		recognizer: recognizer,
		timeout:    timeout,
		timeSource: timeSource,
	}
}

// Process runs recognition and field extraction over one image. Only a
// recognition failure, or an image with no readable text, is fatal; every
// field-level miss degrades to its documented default so downstream
// consumers always get a complete record. Defaults are applied here, in
// one place, not inside the extractors.
func (p *Pipeline) Process(ctx context.Context, imageData []byte, contentType string) (*Record, error) {
	text, err := p.recognize(ctx, imageData, contentType)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("no text recognized in image")
	}

	record := &Record{
		VAT:      0,
		Anomaly:  false,
		Category: string(extraction.Classify(text)),
	}

	if amount, ok := extraction.Amount(text); ok {
		record.Amount = amount
	}

	if date, ok := extraction.Date(text); ok {
		record.Date = date
	} else {
		record.Date = p.timeSource.Now().Format("2006-01-02")
	}

	if merchant, ok := extraction.Merchant(text); ok {
		record.Merchant = merchant
	} else {
		record.Merchant = unknownMerchant
	}

	return record, nil
}

// RecognizeOnly returns the raw recognized text without field extraction,
// for the text-only endpoint.
func (p *Pipeline) RecognizeOnly(ctx context.Context, imageData []byte, contentType string) (string, error) {
	return p.recognize(ctx, imageData, contentType)
}

func (p *Pipeline) recognize(ctx context.Context, imageData []byte, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	text, err := p.recognizer.RecognizeText(ctx, imageData, contentType)
	if err != nil {
		return "", fmt.Errorf("recognizing text: %w", err)
	}
	return text, nil
}
