package recognition

import "context"

// Recognizer is the boundary to the external image-to-text capability.
// Implementations are expensive to construct; build one per process and
// share it across requests. Implementations must be safe for concurrent
// use.
type Recognizer interface {
	// RecognizeText extracts the visible text from a receipt image or
	// PDF. The returned string keeps the recognizer's line grouping, one
	// printed line per text line.
	RecognizeText(ctx context.Context, imageData []byte, contentType string) (string, error)
	// Close releases resources held by the recognizer
	Close() error
}
