// internal/syntax/spans_test.go
package syntax

import (
	"context"
	"strings"
	"testing"

	"github.com/wovenlab/loom/internal/syntax/lang"
	sitter "github.com/smacker/go-tree-sitter"
)

func parseGoSpans(t *testing.T, src string) *SpanSet {
	t.Helper()
	RegisterLanguages()

	language := lang.GetForFile("main.go")
	if language == nil {
		t.Fatal("Go grammar not registered")
	}
	query, err := sitter.NewQuery(language.Query(), language.Grammar)
	if err != nil {
		t.Fatalf("highlight query does not compile: %v", err)
	}
	defer query.Close()

	engine, err := NewEngine(language.Grammar)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	defer engine.Close()

	tree, err := engine.Parse(context.Background(), nil, []byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	defer tree.Close()

	return extractSpans(tree, query)
}

func TestExtractSpansGoSource(t *testing.T) {
	src := "package main\n\nfunc main() {\n\ts := \"hi\"\n\t_ = s\n}\n"
	spans := parseGoSpans(t, src)
	if spans.Len() == 0 {
		t.Fatal("no spans extracted")
	}

	// wantSpan asserts an exact-range capture for the first occurrence of
	// lexeme in src.
	wantSpan := func(lexeme, capture string) {
		t.Helper()
		start := strings.Index(src, lexeme)
		if start < 0 {
			t.Fatalf("lexeme %q not in source", lexeme)
		}
		end := start + len(lexeme)
		for _, sp := range spans.Between(start, end) {
			if sp.StartByte == start && sp.EndByte == end && sp.Capture == capture {
				return
			}
		}
		t.Errorf("no %q span for %q at byte %d", capture, lexeme, start)
	}

	wantSpan("package", "keyword")
	wantSpan("func", "keyword")
	wantSpan(`"hi"`, "string")

	// The declared name, not the package clause's "main".
	nameStart := strings.Index(src, "main()")
	found := false
	for _, sp := range spans.Between(nameStart, nameStart+4) {
		if sp.StartByte == nameStart && sp.EndByte == nameStart+4 && sp.Capture == "function" {
			found = true
		}
	}
	if !found {
		t.Errorf("no function span for the declared name at byte %d", nameStart)
	}
}

func TestSpansBetweenFiltersByRange(t *testing.T) {
	src := "package main\n\nfunc main() {}\n"
	spans := parseGoSpans(t, src)

	funcStart := strings.Index(src, "func")
	narrow := spans.Between(funcStart, funcStart+1)
	for _, sp := range narrow {
		if sp.EndByte <= funcStart || sp.StartByte > funcStart {
			t.Errorf("span [%d,%d) %q does not overlap byte %d", sp.StartByte, sp.EndByte, sp.Capture, funcStart)
		}
	}
	if len(narrow) == 0 {
		t.Fatal("no spans overlapping the func keyword")
	}
	if got := spans.Between(funcStart, funcStart); len(got) != 0 {
		t.Fatalf("empty range returned %d spans", len(got))
	}
}

func TestSpanSetNilSafe(t *testing.T) {
	var s *SpanSet
	if got := s.Between(0, 100); len(got) != 0 {
		t.Fatalf("nil set Between returned %d spans", len(got))
	}
	if s.Len() != 0 {
		t.Fatal("nil set reports stored spans")
	}
}

func TestSpanSetSkipsZeroWidth(t *testing.T) {
	s := newSpanSet()
	s.add(Span{StartByte: 5, EndByte: 5, Capture: "keyword"})
	if s.Len() != 0 {
		t.Fatal("zero-width span was stored")
	}

	s.add(Span{StartByte: 5, EndByte: 6, Capture: "keyword"})
	if s.Len() != 1 {
		t.Fatalf("stored %d spans, want 1", s.Len())
	}
	if got := s.Between(5, 6); len(got) != 1 {
		t.Fatalf("Between over the span returned %d spans, want 1", len(got))
	}
	if got := s.Between(7, 10); len(got) != 0 {
		t.Fatalf("Between past the span returned %d spans", len(got))
	}
}
