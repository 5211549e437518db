// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cite formats deterministic citation strings for a paper. Pure
// string derivation, no I/O. See docs/ARCHITECTURE.md § Citations.
//
// Known limitation: braces embedded in titles or author names are emitted
// into the BibTeX entry unescaped. Downstream consumers depend on the
// output bit-for-bit, so this is documented rather than fixed.
package cite

import (
	"fmt"
	"strings"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// FormattingError reports a paper that cannot be cited because a required
// field is missing. Unlike summarization failures this is fatal to the
// query: a paper without an identifier or title never reaches this stage
// in a healthy pipeline.
type FormattingError struct {
	PaperID string
	Field   string
}

func (e *FormattingError) Error() string {
	return fmt.Sprintf("formatting citation for %q: missing %s", e.PaperID, e.Field)
}

// noDate is the year token used when the published date carries no
// leading 4-digit year.
const noDate = "n.d."

// Format derives the APA and BibTeX citation strings for one paper.
// Applying Format twice to the same paper yields identical strings.
func Format(paper types.Paper) (types.Citation, error) {
	if paper.ID == "" {
		return types.Citation{}, &FormattingError{PaperID: paper.ID, Field: "id"}
	}
	if paper.Title == "" {
		return types.Citation{}, &FormattingError{PaperID: paper.ID, Field: "title"}
	}

	authors := strings.Join(paper.Authors, ", ")
	year := citationYear(paper.Published)
	key := citationKey(paper.ID)

	apa := fmt.Sprintf("%s (%s). %s. arXiv. %s", authors, year, paper.Title, paper.Link)

	bibtex := fmt.Sprintf(`@article{%s,
  title = {%s},
  author = {%s},
  year = {%s},
  howpublished = {arXiv:%s},
  url = {%s}
}`, key, paper.Title, authors, year, key, paper.Link)

	return types.Citation{APA: apa, BibTeX: bibtex}, nil
}

// citationYear returns the leading 4-digit year of a published date string,
// or "n.d." when the string does not start with one.
func citationYear(published string) string {
	if len(published) < 4 {
		return noDate
	}
	for _, r := range published[:4] {
		if r < '0' || r > '9' {
			return noDate
		}
	}
	return published[:4]
}

// citationKey is the identifier segment after the final path separator
// (e.g. "http://arxiv.org/abs/2301.07041v1" yields "2301.07041v1").
func citationKey(id string) string {
	if idx := strings.LastIndex(id, "/"); idx >= 0 {
		return id[idx+1:]
	}
	return id
}
