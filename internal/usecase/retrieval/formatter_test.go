package retrieval

import (
	"fmt"
	"strings"
	"testing"

	"github.com/kailas-cloud/docsearch/internal/domain"
)

func TestFormat_SingleHit(t *testing.T) {
	hits := []domain.SearchHit{{
		Content:        "The sky is yellow in TXTland.",
		SourceTitle:    "sample.txt",
		RelevanceScore: 0.95,
	}}

	out := Format("What color is the sky in TXTland?", hits)

	for _, want := range []string{
		"DOCUMENT: sample.txt",
		"score: 0.95",
		"CONTENT: The sky is yellow in TXTland.",
		"SEARCH SUMMARY: Found 1 relevant document sections",
		"Question: What color is the sky in TXTland?",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if n := strings.Count(out, "DOCUMENT:"); n != 1 {
		t.Errorf("expected exactly 1 DOCUMENT: section, got %d", n)
	}
}

func TestFormat_Empty(t *testing.T) {
	out := Format("What color is the sky?", nil)

	if !strings.Contains(out, "NO DOCUMENTS FOUND") {
		t.Errorf("output missing NO DOCUMENTS FOUND:\n%s", out)
	}
	if !strings.Contains(out, "No relevant information in uploaded documents") {
		t.Errorf("output missing no-information notice:\n%s", out)
	}
	if !strings.Contains(out, "Question: What color is the sky?") {
		t.Errorf("output missing the original question:\n%s", out)
	}
	if strings.Contains(out, "DOCUMENT:") {
		t.Errorf("empty result must not contain DOCUMENT: sections:\n%s", out)
	}
	if out == "" {
		t.Error("formatted result must never be empty")
	}
}

func TestFormat_OrderPreserved(t *testing.T) {
	hits := []domain.SearchHit{
		{Content: "one", SourceTitle: "first.txt", RelevanceScore: 0.9},
		{Content: "two", SourceTitle: "second.txt", RelevanceScore: 0.8},
		{Content: "three", SourceTitle: "third.txt", RelevanceScore: 0.7},
	}

	out := Format("anything", hits)

	prev := -1
	for _, title := range []string{"first.txt", "second.txt", "third.txt"} {
		pos := strings.Index(out, "DOCUMENT: "+title)
		if pos < 0 {
			t.Fatalf("missing section for %s:\n%s", title, out)
		}
		if pos < prev {
			t.Errorf("section for %s out of order", title)
		}
		prev = pos
	}
	if n := strings.Count(out, "DOCUMENT:"); n != len(hits) {
		t.Errorf("expected %d DOCUMENT: sections, got %d", len(hits), n)
	}
}

func TestFormat_SummaryCount(t *testing.T) {
	for _, n := range []int{1, 2, 7} {
		hits := make([]domain.SearchHit, n)
		for i := range hits {
			hits[i] = domain.SearchHit{
				Content:        fmt.Sprintf("chunk %d", i),
				SourceTitle:    fmt.Sprintf("doc%d.txt", i),
				RelevanceScore: 0.5,
			}
		}
		out := Format("q", hits)
		want := fmt.Sprintf("SEARCH SUMMARY: Found %d relevant document sections", n)
		if !strings.Contains(out, want) {
			t.Errorf("n=%d: output missing %q", n, want)
		}
	}
}

func TestFormat_ScoreTwoDecimals(t *testing.T) {
	hits := []domain.SearchHit{{Content: "c", SourceTitle: "t.txt", RelevanceScore: 0.8567}}

	out := Format("q", hits)
	if !strings.Contains(out, "score: 0.86") {
		t.Errorf("score not rounded to two decimals:\n%s", out)
	}
}

func TestFormat_Deterministic(t *testing.T) {
	hits := []domain.SearchHit{
		{Content: "alpha", SourceTitle: "a.txt", RelevanceScore: 0.91},
		{Content: "beta", SourceTitle: "b.txt", RelevanceScore: 0.42},
	}

	first := Format("same question", hits)
	second := Format("same question", hits)
	if first != second {
		t.Error("Format is not deterministic for identical inputs")
	}
}

func TestFormat_ZeroValueFields(t *testing.T) {
	out := Format("q", []domain.SearchHit{{}})

	if !strings.Contains(out, "DOCUMENT: \n") {
		t.Errorf("missing-title hit should render an empty title line:\n%s", out)
	}
	if !strings.Contains(out, "score: 0.00") {
		t.Errorf("missing score should render as 0.00:\n%s", out)
	}
}
