package retrieval

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/docsearch/internal/domain"
)

const sectionSeparator = "=============================="

// Format renders an ordered hit sequence into the text block consumed
// by the downstream prompt. It is a pure function of its inputs: the
// hit order is preserved verbatim and the output is never empty.
func Format(question string, hits []domain.SearchHit) string {
	var b strings.Builder

	if len(hits) == 0 {
		b.WriteString("NO DOCUMENTS FOUND\n\n")
		fmt.Fprintf(&b, "Question: %s\n", question)
		b.WriteString("No relevant information in uploaded documents.\n")
		return b.String()
	}

	b.WriteString("DOCUMENT SEARCH RESULTS\n")
	fmt.Fprintf(&b, "Question: %s\n\n", question)

	for _, hit := range hits {
		fmt.Fprintf(&b, "DOCUMENT: %s\n", hit.SourceTitle)
		fmt.Fprintf(&b, "relevance score: %.2f\n", hit.RelevanceScore)
		fmt.Fprintf(&b, "CONTENT: %s\n", hit.Content)
		b.WriteString(sectionSeparator + "\n")
	}

	fmt.Fprintf(&b, "\nSEARCH SUMMARY: Found %d relevant document sections\n", len(hits))
	return b.String()
}
