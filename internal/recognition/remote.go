package recognition

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// Remote implements the Recognizer interface against a standalone OCR
// microservice: multipart POST of a receiptImage field to {base}/ocr,
// JSON response carrying the recognized text.
type Remote struct {
	baseURL string
	client  *http.Client
}

// NewRemote creates a new Remote Recognizer instance
func NewRemote(baseURL string) (*Remote, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("ocr service url is required")
	}

	return &Remote{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: 120 * time.Second, // model-backed OCR services can be slow on large photos
		},
	}, nil
}

// remoteOCRResponse represents the OCR service response. A failed
// recognition carries only the error field.
type remoteOCRResponse struct {
	Filename string `json:"filename"`
	Text     string `json:"text"`
	Error    string `json:"error"`
}

// RecognizeText sends the receipt to the OCR service and returns the
// recognized text
func (r *Remote) RecognizeText(ctx context.Context, imageData []byte, contentType string) (string, error) {
	finalImageData, _, err := prepareImageData(imageData, contentType)
	if err != nil {
		return "", err
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("receiptImage", "receipt.png")
	if err != nil {
		return "", fmt.Errorf("creating form file: %w", err)
	}
	if _, err := part.Write(finalImageData); err != nil {
		return "", fmt.Errorf("writing form file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("closing form writer: %w", err)
	}

	url := fmt.Sprintf("%s/ocr", r.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, &body)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling ocr service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("ocr service error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var ocrResp remoteOCRResponse
	if err := json.NewDecoder(resp.Body).Decode(&ocrResp); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if ocrResp.Error != "" {
		return "", fmt.Errorf("ocr service error: %s", ocrResp.Error)
	}

	return ocrResp.Text, nil
}

// Close closes the Remote client (no-op for HTTP client)
func (r *Remote) Close() error {
	return nil
}
