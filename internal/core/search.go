// internal/core/search.go
package core

import (
	"regexp"

	"github.com/wovenlab/loom/internal/logger"
	"github.com/wovenlab/loom/internal/types"
	"github.com/wovenlab/loom/internal/utils"
)

// Find locates the next regexp match. Forward searches start at startPos;
// backward searches consider only matches strictly before it. There is no
// wrap-around.
func (e *Editor) Find(term string, startPos types.Position, forward bool) (types.Position, bool) {
	if term == "" {
		return types.Position{}, false
	}

	re, err := regexp.Compile(term)
	if err != nil {
		logger.Warnf("find: invalid pattern %q: %v", term, err)
		return types.Position{}, false
	}

	lineCount := e.buffer.LineCount()

	if forward {
		for lineIdx := startPos.Line; lineIdx < lineCount; lineIdx++ {
			lineBytes, err := e.buffer.Line(lineIdx)
			if err != nil {
				continue
			}

			searchFrom := 0
			if lineIdx == startPos.Line {
				searchFrom = utils.RuneIndexToByteOffset(lineBytes, startPos.Col)
				if searchFrom < 0 {
					searchFrom = 0
				}
			}

			if loc := re.FindIndex(lineBytes[searchFrom:]); loc != nil {
				col := utils.ByteOffsetToRuneIndex(lineBytes, searchFrom+loc[0])
				return types.Position{Line: lineIdx, Col: col}, true
			}
		}
		return types.Position{}, false
	}

	for lineIdx := startPos.Line; lineIdx >= 0; lineIdx-- {
		lineBytes, err := e.buffer.Line(lineIdx)
		if err != nil {
			continue
		}

		searchTo := len(lineBytes)
		if lineIdx == startPos.Line {
			searchTo = utils.RuneIndexToByteOffset(lineBytes, startPos.Col)
			if searchTo < 0 || searchTo > len(lineBytes) {
				searchTo = len(lineBytes)
			}
		}

		locs := re.FindAllIndex(lineBytes[:searchTo], -1)
		if len(locs) > 0 {
			last := locs[len(locs)-1]
			col := utils.ByteOffsetToRuneIndex(lineBytes, last[0])
			return types.Position{Line: lineIdx, Col: col}, true
		}
	}
	return types.Position{}, false
}

// HighlightMatches records every match of term as a search region for the
// renderer and returns the match count. Previous matches are replaced.
func (e *Editor) HighlightMatches(term string) int {
	e.ClearSearchHighlights()
	if term == "" {
		return 0
	}

	re, err := regexp.Compile(term)
	if err != nil {
		logger.Warnf("find: invalid pattern %q: %v", term, err)
		return 0
	}

	lineCount := e.buffer.LineCount()
	for lineIdx := 0; lineIdx < lineCount; lineIdx++ {
		lineBytes, err := e.buffer.Line(lineIdx)
		if err != nil {
			continue
		}

		for _, loc := range re.FindAllIndex(lineBytes, -1) {
			e.searchMatches = append(e.searchMatches, types.Region{
				Start: types.Position{Line: lineIdx, Col: utils.ByteOffsetToRuneIndex(lineBytes, loc[0])},
				End:   types.Position{Line: lineIdx, Col: utils.ByteOffsetToRuneIndex(lineBytes, loc[1])},
			})
		}
	}
	logger.Debugf("find: %d matches for %q", len(e.searchMatches), term)
	return len(e.searchMatches)
}

// HasSearchHighlights reports whether any search regions are active.
func (e *Editor) HasSearchHighlights() bool {
	return len(e.searchMatches) > 0
}

// ClearSearchHighlights removes all search regions.
func (e *Editor) ClearSearchHighlights() {
	e.searchMatches = e.searchMatches[:0]
}

// SearchHighlights returns the active search regions for drawing.
func (e *Editor) SearchHighlights() []types.Region {
	return e.searchMatches
}
