// Package serve runs a long-lived NDJSON streaming server over stdin/stdout.
// The process loads signatures once at startup and classifies byte windows on
// demand until stdin closes or the context is cancelled. Intended for
// embedding sleuth in upload pipelines that keep one sidecar process alive.
package serve

import (
	"bufio"
	"context"
	"encoding/json"
	"io"

	"github.com/bytesleuth/sleuth/pkg/scanner"
)

// Version is the server protocol version
const Version = "1.0.0"

// Server manages the streaming classifier
type Server struct {
	core    *scanner.Core
	encoder *json.Encoder
	decoder *json.Decoder
}

// NewServer creates a new streaming server
func NewServer(core *scanner.Core, in io.Reader, out io.Writer) *Server {
	return &Server{
		core:    core,
		encoder: json.NewEncoder(out),
		decoder: json.NewDecoder(bufio.NewReader(in)),
	}
}

// Run starts the server main loop
func (s *Server) Run(ctx context.Context) error {
	// Send ready signal
	s.sendReady()

	// Use buffered channels for incoming requests
	reqChan := make(chan Request, 1)
	errChan := make(chan error, 1)

	go func() {
		for {
			var req Request
			if err := s.decoder.Decode(&req); err != nil {
				errChan <- err
				return
			}
			select {
			case reqChan <- req:
			case <-ctx.Done():
				return
			}
		}
	}()

	// Process requests until stdin closes or context cancels
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errChan:
			// Drain any pending requests before handling EOF
			for {
				select {
				case req := <-reqChan:
					if s.processRequest(req) {
						return nil
					}
				default:
					// No more pending requests
					if err == io.EOF {
						return nil
					}
					s.sendError("decode", err.Error())
					return nil
				}
			}
		case req := <-reqChan:
			if s.processRequest(req) {
				return nil
			}
		}
	}
}

// processRequest handles a single request and returns true if the server should exit
func (s *Server) processRequest(req Request) bool {
	switch req.Type {
	case "detect":
		s.handleDetect(req.Payload)
	case "detect_batch":
		s.handleDetectBatch(req.Payload)
	case "close":
		return true
	default:
		s.sendError("unknown", "unknown request type: "+req.Type)
	}
	return false
}

func (s *Server) sendReady() {
	data, _ := json.Marshal(ReadyData{
		Version:    Version,
		Signatures: s.core.SignatureCount(),
	})
	s.encoder.Encode(Response{
		Success: true,
		Type:    "ready",
		Data:    data,
	})
}

func (s *Server) handleDetect(payload json.RawMessage) {
	var p DetectPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.sendError("detect", err.Error())
		return
	}

	result, err := s.core.Detect(p.Content, p.Source, p.Fallback)
	if err != nil {
		s.sendError("detect", err.Error())
		return
	}

	data, _ := json.Marshal(result)
	s.encoder.Encode(Response{
		Success: true,
		Type:    "detect",
		Data:    data,
	})
}

func (s *Server) handleDetectBatch(payload json.RawMessage) {
	var p DetectBatchPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.sendError("detect_batch", err.Error())
		return
	}

	result, err := s.core.DetectBatch(p.Items)
	if err != nil {
		s.sendError("detect_batch", err.Error())
		return
	}

	data, _ := json.Marshal(result)
	s.encoder.Encode(Response{
		Success: true,
		Type:    "detect_batch",
		Data:    data,
	})
}

func (s *Server) sendError(reqType, msg string) {
	s.encoder.Encode(Response{
		Success: false,
		Type:    reqType,
		Error:   msg,
	})
}
