// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the research-assistant pipeline.
// See docs/ARCHITECTURE.md § Data Structures.
package types

// Paper is one work retrieved from the literature feed. Papers are created
// once by the feed adapter and never mutated downstream.
type Paper struct {
	// ID is the canonical identifier from the feed (the arXiv abs URL).
	ID string `json:"id" yaml:"id"`

	// Title is the paper title, whitespace-trimmed.
	Title string `json:"title" yaml:"title"`

	// Abstract is the paper abstract or summary text, whitespace-trimmed.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Authors lists author names in byline order. May be empty.
	Authors []string `json:"authors" yaml:"authors"`

	// Published is the publication date string in the feed's native format.
	// Only a leading 4-digit year is ever derived from it.
	Published string `json:"published" yaml:"published"`

	// Link is the canonical URL for the paper.
	Link string `json:"link" yaml:"link"`
}

// Digest is the AI-generated condensation of one paper. The zero value is
// valid and means "summarization unavailable" for that paper.
type Digest struct {
	// Bullets are short key points in the order the model produced them.
	Bullets []string `json:"bullets" yaml:"bullets"`

	// Narrative is an optional longer prose summary.
	Narrative string `json:"narrative,omitempty" yaml:"narrative,omitempty"`
}

// IsEmpty reports whether the digest carries no content.
func (d Digest) IsEmpty() bool {
	return len(d.Bullets) == 0 && d.Narrative == ""
}

// Citation holds the two formatted citation strings for one paper.
type Citation struct {
	// APA is an author-date style citation string.
	APA string `json:"apa" yaml:"apa"`

	// BibTeX is a single @article bibliography entry.
	BibTeX string `json:"bibtex" yaml:"bibtex"`
}

// Bundle is the complete response of one search operation.
//
// Papers, Summaries, and Citations are positionally aligned: index i in each
// slice refers to the same paper. Every stage that drops or reorders a paper
// must do so in all three slices identically.
type Bundle struct {
	Papers    []Paper    `json:"papers" yaml:"papers"`
	Summaries []Digest   `json:"summaries" yaml:"summaries"`
	Citations []Citation `json:"citations" yaml:"citations"`
	Graph     Graph      `json:"graph" yaml:"graph"`
}
