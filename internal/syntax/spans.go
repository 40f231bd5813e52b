// internal/syntax/spans.go
package syntax

import (
	"cmp"

	"github.com/rdleal/intervalst/interval"
	sitter "github.com/smacker/go-tree-sitter"
)

// Span is one highlighted byte range. Capture carries the full query
// capture name (for example "constant.builtin"); the theme resolves it to
// a style with its dot-prefix fallback.
type Span struct {
	StartByte int
	EndByte   int
	Capture   string
}

// SpanSet indexes the spans of one adopted tree by byte interval so the
// renderer can fetch just the ranges overlapping a visible line. A nil
// SpanSet is valid and empty.
type SpanSet struct {
	tree  *interval.MultiValueSearchTree[Span, int]
	count int
}

func newSpanSet() *SpanSet {
	return &SpanSet{
		tree: interval.NewMultiValueSearchTree[Span](func(a, b int) int {
			return cmp.Compare(a, b)
		}),
	}
}

func (s *SpanSet) add(sp Span) {
	// Zero-width captures carry no visible style.
	if sp.EndByte <= sp.StartByte {
		return
	}
	s.tree.Insert(sp.StartByte, sp.EndByte, sp)
	s.count++
}

// Between returns the spans overlapping [startByte, endByte) in no
// particular order.
func (s *SpanSet) Between(startByte, endByte int) []Span {
	if s == nil || startByte >= endByte {
		return nil
	}
	spans, _ := s.tree.AllIntersections(startByte, endByte)
	return spans
}

// Len returns the number of stored spans.
func (s *SpanSet) Len() int {
	if s == nil {
		return 0
	}
	return s.count
}

// extractSpans runs the highlight query over a freshly adopted tree and
// indexes every capture.
func extractSpans(tree *sitter.Tree, query *sitter.Query) *SpanSet {
	set := newSpanSet()
	if query == nil {
		return set
	}

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(query, tree.RootNode())

	for {
		match, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, capture := range match.Captures {
			set.add(Span{
				StartByte: int(capture.Node.StartByte()),
				EndByte:   int(capture.Node.EndByte()),
				Capture:   query.CaptureNameForId(capture.Index),
			})
		}
	}
	return set
}
