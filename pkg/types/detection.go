package types

// Detection records the classification of one piece of content: where it came
// from, the content ID of the sniffed window, and the result.
type Detection struct {
	FileID   FileID `json:"file_id"`
	Path     string `json:"path,omitempty"` // source path or label
	Size     int64  `json:"size"`           // full size of the source, when known
	Fallback string `json:"fallback,omitempty"`
	Result   Result `json:"result"`
}
