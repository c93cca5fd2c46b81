//go:build wasm

package main

import (
	"encoding/base64"
	"encoding/json"
	"sync"
	"syscall/js"

	"github.com/bytesleuth/sleuth/pkg/scanner"
)

var (
	detectors   = make(map[int]*scanner.Core)
	detectorsMu sync.RWMutex
	nextID      int
)

// newDetector creates a new detector with the given signature source.
// JS: SleuthNewDetector(sigSource) -> handle (int) or error string
func newDetector(this js.Value, args []js.Value) interface{} {
	sigSource := "builtin"
	if len(args) > 0 {
		sigSource = args[0].String()
	}

	core, err := scanner.NewCore(sigSource, scanner.NoopLogger{})
	if err != nil {
		return map[string]interface{}{"error": "failed to create detector: " + err.Error()}
	}

	// Register detector
	detectorsMu.Lock()
	id := nextID
	nextID++
	detectors[id] = core
	detectorsMu.Unlock()

	return map[string]interface{}{"handle": id}
}

// detect classifies a single base64-encoded byte window.
// JS: SleuthDetect(handle, contentB64, source, fallback) -> JSON result or error
func detect(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return map[string]interface{}{"error": "handle and content arguments required"}
	}

	handle := args[0].Int()
	content, err := base64.StdEncoding.DecodeString(args[1].String())
	if err != nil {
		return map[string]interface{}{"error": "content must be base64: " + err.Error()}
	}
	source := ""
	if len(args) > 2 {
		source = args[2].String()
	}
	fallback := "application/octet-stream"
	if len(args) > 3 {
		fallback = args[3].String()
	}

	detectorsMu.RLock()
	core, ok := detectors[handle]
	detectorsMu.RUnlock()

	if !ok {
		return map[string]interface{}{"error": "invalid detector handle"}
	}

	result, err := core.Detect(content, source, fallback)
	if err != nil {
		return map[string]interface{}{"error": "detection failed: " + err.Error()}
	}

	jsonBytes, err := json.Marshal(result)
	if err != nil {
		return map[string]interface{}{"error": "failed to marshal result: " + err.Error()}
	}

	return string(jsonBytes)
}

// detectBatch classifies multiple content items.
// JS: SleuthDetectBatch(handle, itemsJSON) -> JSON results or error
func detectBatch(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return map[string]interface{}{"error": "handle and itemsJSON arguments required"}
	}

	handle := args[0].Int()
	itemsJSON := args[1].String()

	detectorsMu.RLock()
	core, ok := detectors[handle]
	detectorsMu.RUnlock()

	if !ok {
		return map[string]interface{}{"error": "invalid detector handle"}
	}

	var items []scanner.ContentItem
	if err := json.Unmarshal([]byte(itemsJSON), &items); err != nil {
		return map[string]interface{}{"error": "failed to parse items JSON: " + err.Error()}
	}

	batchResult, err := core.DetectBatch(items)
	if err != nil {
		return map[string]interface{}{"error": "batch detection failed: " + err.Error()}
	}

	jsonBytes, err := json.Marshal(batchResult)
	if err != nil {
		return map[string]interface{}{"error": "failed to marshal results: " + err.Error()}
	}

	return string(jsonBytes)
}

// closeDetector closes a detector and releases resources.
// JS: SleuthCloseDetector(handle)
func closeDetector(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return map[string]interface{}{"error": "handle argument required"}
	}

	handle := args[0].Int()

	detectorsMu.Lock()
	core, ok := detectors[handle]
	if ok {
		delete(detectors, handle)
	}
	detectorsMu.Unlock()

	if !ok {
		return map[string]interface{}{"error": "invalid detector handle"}
	}

	core.Close()

	return nil
}

// getBuiltinSignatures returns the built-in signature table as JSON.
// JS: SleuthGetBuiltinSignatures() -> JSON signature array
func getBuiltinSignatures(this js.Value, args []js.Value) interface{} {
	set, err := scanner.GetBuiltinSet()
	if err != nil {
		return map[string]interface{}{"error": "failed to load builtin signatures: " + err.Error()}
	}

	jsonBytes, err := json.Marshal(set.Entries())
	if err != nil {
		return map[string]interface{}{"error": "failed to marshal signatures: " + err.Error()}
	}

	return string(jsonBytes)
}
