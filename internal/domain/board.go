package domain

// Board is static registry metadata. Boards are configured at startup and are
// immutable at runtime; only tag uniqueness matters.
type Board struct {
	Tag         BoardTag `json:"tag" yaml:"tag"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Category    string   `json:"category" yaml:"category"`
	Hidden      bool     `json:"hidden" yaml:"hidden"`
}
