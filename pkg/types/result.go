package types

// Result is the outcome of classifying a byte window. Exactly one of two
// shapes is produced: a recognized format (Matched true, MIME and Extensions
// taken from the winning signature) or an unknown result (Matched false, MIME
// carrying the caller-supplied fallback). An unknown result is a normal value,
// not an error: sniffing failure is expected for unrecognized or truncated
// content.
type Result struct {
	Matched     bool     `json:"matched"`
	MIME        string   `json:"mime"`
	Extensions  []string `json:"extensions,omitempty"`
	SignatureID string   `json:"signature_id,omitempty"`
}

// Recognized builds a Result for a matched signature.
func Recognized(sig *Signature) Result {
	exts := make([]string, len(sig.Extensions))
	copy(exts, sig.Extensions)
	return Result{
		Matched:     true,
		MIME:        sig.MIME,
		Extensions:  exts,
		SignatureID: sig.ID,
	}
}

// Unknown builds a Result for content no signature matched.
// The fallback is typically the type the source system already believed,
// e.g. derived from file metadata.
func Unknown(fallback string) Result {
	return Result{MIME: fallback}
}
