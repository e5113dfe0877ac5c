package css

import (
	"errors"
	"fmt"
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// SegmentKind tells how segment of stylesheet text is processed.
type SegmentKind int

const (
	// SegmentFlat is subject to rule matching.
	SegmentFlat SegmentKind = iota
	// SegmentVerbatim is a top-level at-rule block with nested blocks
	// inside, it is copied as is.
	SegmentVerbatim
)

func (k SegmentKind) String() string {
	switch k {
	case SegmentFlat:
		return "flat"
	case SegmentVerbatim:
		return "verbatim"
	}
	return "unknown"
}

// ErrTokenizing is returned by Split when the lexer stopped before the end of
// text. Segments are still returned, the rest of the text is flat.
var ErrTokenizing = errors.New("stylesheet tokenizing stopped early")

// Segment is a span of stylesheet text. Concatenated Text of all segments
// returned by Split is always the original input.
type Segment struct {
	Kind SegmentKind
	Text string
}

// Split cuts top-level at-rule blocks which contain nested blocks
// (@media, @supports, @layer and alike) out of the text. Everything else is
// returned as flat segments. Braces inside comments, strings and urls are
// not counted since text is tokenized.
//
// Unbalanced input is tolerated: stray closing braces are ignored and
// unterminated block at the end of the text stays flat. NUL bytes are lexed
// as whitespace.
func Split(text string) ([]Segment, error) {
	var (
		segs []Segment
		// start of text not yet put into segments
		pos int
		// current token start and end
		start, end int
		depth      int
		// current top-level statement
		stmtStart   int
		significant bool
		atRule      bool
		nested      bool
	)

	reset := func() {
		significant, atRule, nested = false, false, false
	}

	// lexer input must keep byte offsets of text
	l := css.NewLexer(parse.NewInputString(strings.ReplaceAll(text, "\x00", " ")))
	for {
		tt, data := l.Next()
		if tt == css.ErrorToken {
			break
		}
		start, end = end, end+len(data)

		switch tt {
		case css.WhitespaceToken, css.CommentToken:
			continue

		case css.LeftBraceToken:
			if depth == 0 && !significant {
				// block without any head
				significant, stmtStart = true, start
			}
			depth++
			if depth > 1 {
				nested = true
			}

		case css.RightBraceToken:
			if depth == 0 {
				reset()
				continue
			}
			depth--
			if depth > 0 {
				continue
			}
			if atRule && nested {
				if stmtStart > pos {
					segs = append(segs, Segment{Kind: SegmentFlat, Text: text[pos:stmtStart]})
				}
				segs = append(segs, Segment{Kind: SegmentVerbatim, Text: text[stmtStart:end]})
				pos = end
			}
			reset()

		case css.SemicolonToken:
			if depth == 0 {
				reset()
			}

		default:
			if depth == 0 && !significant {
				significant, stmtStart = true, start
				atRule = tt == css.AtKeywordToken
			}
		}
	}

	var err error
	if lerr := l.Err(); end < len(text) || (lerr != nil && !errors.Is(lerr, io.EOF)) {
		err = fmt.Errorf("%w at offset %d of %d: %v", ErrTokenizing, end, len(text), lerr)
	}

	if pos < len(text) {
		segs = append(segs, Segment{Kind: SegmentFlat, Text: text[pos:]})
	}
	return segs, err
}
