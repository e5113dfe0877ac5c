package css

import (
	"regexp"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"scopecss/common"
)

// rulePattern matches rule head (everything up to the next opening brace)
// and declaration block (everything up to the next closing brace). Rules
// with nested blocks cannot be matched as a whole.
var rulePattern = regexp.MustCompile(`([^{}]+)\s*\{([^{}]*)\}`)

// Stats summarizes single rewrite.
type Stats struct {
	// matched rule heads
	Rules int
	// rule heads changed by scoping
	Scoped int
	// rule heads left as they were: exempt or already scoped
	Unchanged int
	// at-rule blocks copied without looking inside
	Verbatim int
}

// Change records what happened to a single rule head or verbatim block.
type Change struct {
	Kind     SegmentKind
	Selector string
	Result   string
}

// Result of stylesheet rewrite.
type Result struct {
	Text  string
	Stats Stats
	// only collected when rewriter was created WithTrace
	Changes []Change
}

// Rewriter scopes every rule of a stylesheet.
type Rewriter struct {
	scoper *Scoper
	nested common.NestedMode
	trace  bool
	log    *zap.Logger
}

// Option configures Rewriter.
type Option func(*Rewriter)

// WithNestedMode selects how top-level at-rule blocks with nested rules are
// handled. Default is common.NestedModePassthrough. In flat mode whitespace in
// front of a selector is dropped and every matched rule becomes exactly
// "selector {properties}".
func WithNestedMode(mode common.NestedMode) Option {
	return func(r *Rewriter) {
		r.nested = mode
	}
}

// WithTrace makes rewriter record every change in Result.
func WithTrace() Option {
	return func(r *Rewriter) {
		r.trace = true
	}
}

// NewRewriter creates rewriter using scoper for rule heads.
func NewRewriter(scoper *Scoper, log *zap.Logger, opts ...Option) *Rewriter {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Rewriter{
		scoper: scoper,
		nested: common.NestedModePassthrough,
		log:    log.Named("css-rewriter"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rewrite returns text with every rule head scoped. Declaration blocks and
// text outside of rules are never modified.
func (r *Rewriter) Rewrite(text string) *Result {
	res := &Result{}

	var segs []Segment
	if r.nested.Verbatim() {
		var err error
		if segs, err = Split(text); err != nil {
			r.log.Warn("Nested blocks past this point are not recognized, rules inside them will be scoped", zap.Error(err))
		}
	} else {
		segs = []Segment{{Kind: SegmentFlat, Text: text}}
	}

	var sb strings.Builder
	sb.Grow(len(text) + len(text)/4)

	for _, seg := range segs {
		if seg.Kind == SegmentVerbatim {
			res.Stats.Verbatim++
			head := blockHead(seg.Text)
			r.log.Debug("Passing nested block through", zap.String("head", head))
			if r.trace {
				res.Changes = append(res.Changes, Change{Kind: SegmentVerbatim, Selector: head, Result: head})
			}
			sb.WriteString(seg.Text)
			continue
		}
		r.rewriteFlat(&sb, seg.Text, res)
	}

	res.Text = sb.String()
	r.log.Debug("Stylesheet rewritten",
		zap.Int("rules", res.Stats.Rules),
		zap.Int("scoped", res.Stats.Scoped),
		zap.Int("unchanged", res.Stats.Unchanged),
		zap.Int("verbatim", res.Stats.Verbatim))
	return res
}

func (r *Rewriter) rewriteFlat(sb *strings.Builder, text string, res *Result) {
	last := 0
	for _, m := range rulePattern.FindAllStringSubmatchIndex(text, -1) {
		sb.WriteString(text[last:m[0]])
		last = m[1]

		head := text[m[2]:m[3]]
		selector := strings.TrimSpace(head)
		scoped := r.scoper.Scope(selector)

		res.Stats.Rules++
		if scoped == selector {
			res.Stats.Unchanged++
		} else {
			res.Stats.Scoped++
		}
		if r.trace {
			res.Changes = append(res.Changes, Change{Kind: SegmentFlat, Selector: selector, Result: scoped})
		}

		if r.nested.Verbatim() {
			// keep line structure: whatever whitespace preceded selector stays
			sb.WriteString(head[:len(head)-len(strings.TrimLeftFunc(head, unicode.IsSpace))])
		}
		sb.WriteString(scoped)
		sb.WriteString(" {")
		sb.WriteString(text[m[4]:m[5]])
		sb.WriteString("}")
	}
	sb.WriteString(text[last:])
}

// blockHead returns at-rule prelude without the block.
func blockHead(block string) string {
	if i := strings.IndexByte(block, '{'); i >= 0 {
		block = block[:i]
	}
	return strings.TrimSpace(block)
}
