package serve

import (
	"encoding/json"

	"github.com/bytesleuth/sleuth/pkg/scanner"
)

// Request represents an incoming NDJSON request
type Request struct {
	Type    string          `json:"type"` // "detect" | "detect_batch" | "close"
	Payload json.RawMessage `json:"payload"`
}

// DetectPayload is the payload for "detect" requests.
// Content is base64-encoded bytes on the wire.
type DetectPayload struct {
	Content  []byte `json:"content"`
	Source   string `json:"source"`
	Fallback string `json:"fallback"`
}

// DetectBatchPayload is the payload for "detect_batch" requests
type DetectBatchPayload struct {
	Items []scanner.ContentItem `json:"items"`
}

// Response represents an outgoing NDJSON response
type Response struct {
	Success bool            `json:"success"`
	Type    string          `json:"type"` // "ready" | "detect" | "detect_batch" | "error"
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// ReadyData is the data field for "ready" responses
type ReadyData struct {
	Version    string `json:"version"`
	Signatures int    `json:"signatures"`
}
