package domain

// Image is metadata for an already-uploaded attachment. The bytes themselves
// live in the object store; dimension probing happens at upload time and may
// legitimately yield 0x0.
type Image struct {
	Url       string `json:"url"`
	Name      string `json:"name"`
	SizeBytes int64  `json:"size_bytes"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}
