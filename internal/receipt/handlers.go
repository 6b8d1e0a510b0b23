package receipt

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
)

// maxFormSize caps uploads at 50MB to handle high-resolution phone photos
const maxFormSize = int64(50 << 20)

// jsonError writes an error object with CORS headers set. Error responses
// carry only the error message, never partial field data.
func jsonError(w http.ResponseWriter, message string, code int) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": message}); err != nil {
		slog.Error("Error encoding error response", "error", err)
	}
}

// handleRoot is a liveness probe for the upstream backend
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"message": "OCR Service is running"}); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// readUpload parses the multipart form and returns the receiptImage part.
// On failure the error response has already been written and ok is false.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (filename string, data []byte, contentType string, ok bool) {
	if err := r.ParseMultipartForm(maxFormSize); err != nil {
		slog.Error("Error parsing multipart form", "error", err)
		errorMsg := "Error parsing form"
		if err.Error() == "http: request body too large" {
			errorMsg = "File is too large. Maximum size is 50MB. Please compress or resize your image."
		}
		jsonError(w, errorMsg, http.StatusBadRequest)
		return "", nil, "", false
	}

	f, header, err := r.FormFile("receiptImage")
	if err != nil {
		slog.Error("Error getting file from form", "error", err)
		jsonError(w, "No image file provided", http.StatusBadRequest)
		return "", nil, "", false
	}
	defer f.Close()

	if header.Size > maxFormSize {
		jsonError(w, "File is too large. Maximum size is 50MB. Please compress or resize your image.", http.StatusBadRequest)
		return "", nil, "", false
	}

	data, err = io.ReadAll(f)
	if err != nil {
		slog.Error("Error reading file data", "error", err, "filename", header.Filename)
		jsonError(w, "Error reading file. Please try again.", http.StatusInternalServerError)
		return "", nil, "", false
	}

	contentType = header.Header.Get("Content-Type")
	if contentType == "" {
		ext := strings.ToLower(filepath.Ext(header.Filename))
		switch ext {
		case ".jpg", ".jpeg":
			contentType = "image/jpeg"
		case ".png":
			contentType = "image/png"
		case ".pdf":
			contentType = "application/pdf"
		case ".heic":
			contentType = "image/heic"
		case ".heif":
			contentType = "image/heif"
		default:
			contentType = "application/octet-stream"
		}
	}
	contentType = strings.ToLower(strings.TrimSpace(contentType))

	return header.Filename, data, contentType, true
}

// handleExtractReceipt runs the full pipeline over an uploaded receipt
// image and returns the structured record
func (s *Server) handleExtractReceipt(w http.ResponseWriter, r *http.Request) {
	filename, data, contentType, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	record, err := s.service.ProcessUpload(r.Context(), filename, data, contentType)
	if err != nil {
		// Recognition failure is the only pipeline-fatal case
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(record); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleRecognizeText serves the text-only variant: recognized text
// without field extraction
func (s *Server) handleRecognizeText(w http.ResponseWriter, r *http.Request) {
	filename, data, contentType, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	text, err := s.service.RecognizeUpload(r.Context(), filename, data, contentType)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{
		"filename": filename,
		"text":     text,
	}); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}
