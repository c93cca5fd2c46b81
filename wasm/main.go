//go:build wasm

package main

import (
	"syscall/js"
)

func main() {
	// Export functions to JavaScript
	js.Global().Set("SleuthNewDetector", js.FuncOf(newDetector))
	js.Global().Set("SleuthDetect", js.FuncOf(detect))
	js.Global().Set("SleuthDetectBatch", js.FuncOf(detectBatch))
	js.Global().Set("SleuthCloseDetector", js.FuncOf(closeDetector))
	js.Global().Set("SleuthGetBuiltinSignatures", js.FuncOf(getBuiltinSignatures))

	// Keep WASM running
	<-make(chan struct{})
}
