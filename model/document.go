package model

import "strings"

// Document is a single indexed text. ID is assigned by the document store
// and is never reused within a process lifetime.
type Document struct {
	ID   int    `json:"document_id"`
	Text string `json:"text"`
}

// IsBlank reports whether the document text contains no visible content.
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}
