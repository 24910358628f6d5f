package api

import (
	"github.com/starford/eotext/internal/translator"
)

// ConvertRequest is the request body for a conversion.
type ConvertRequest struct {
	From string `json:"from" example:"h" validate:"required"`
	To   string `json:"to" example:"u" validate:"required"`
	Text string `json:"text" example:"Chiuj estas senchavaj kaj taugaj ideoj."`
}

// ConvertResponse is the conversion result (aliased from the domain layer).
type ConvertResponse = translator.Conversion

// AddWordRequest is the request body for adding a vocabulary word.
type AddWordRequest struct {
	Word string `json:"word" example:"flughalt" validate:"required"`
}

// WordItem is a vocabulary entry (aliased from the domain layer).
type WordItem = translator.WordItem

// VocabularyResponse wraps the vocabulary listing.
type VocabularyResponse struct {
	Entries []WordItem `json:"entries" validate:"required"`
	Total   int        `json:"total" example:"49" validate:"required"`
	Version string     `json:"version" example:"3f2a9c0d1e4b5a67" validate:"required"`
}

// SystemInfo describes one writing system.
type SystemInfo struct {
	Code    string            `json:"code" example:"x" validate:"required"`
	Name    string            `json:"name" example:"x-system" validate:"required"`
	Letters map[string]string `json:"letters" validate:"required"`
}

// SystemsResponse lists the supported writing systems.
type SystemsResponse struct {
	Systems    []SystemInfo `json:"systems" validate:"required"`
	MatchMode  string       `json:"match_mode" example:"fragment" validate:"required"`
	CapsSuffix bool         `json:"caps_aware_suffix"`
}
