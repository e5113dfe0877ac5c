package scope

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"scopecss/config"
	"scopecss/css"
	"scopecss/utils/debug"
)

var highlight = color.New(color.FgGreen).SprintFunc()

// confirm tells user where result went. It is printed regardless of logging
// configuration.
func confirm(w io.Writer, dst string) {
	fmt.Fprintf(w, "Scoped CSS written to %s\n", highlight(dst))
}

// renderTrace prepares rewrite trace for debug report.
func renderTrace(src, dst string, conf *config.ScopingConfig, res *css.Result) []byte {
	tw := debug.NewTraceWriter()
	tw.Text(0, "source", src)
	tw.Text(0, "destination", dst)
	tw.Text(0, "prefix", conf.Prefix)
	tw.Line(0, "exempt: %q", conf.Exempt)
	tw.Line(0, "nested: %s", conf.Nested)
	tw.Line(0, "rules: %d, scoped: %d, unchanged: %d, verbatim: %d",
		res.Stats.Rules, res.Stats.Scoped, res.Stats.Unchanged, res.Stats.Verbatim)
	for i, c := range res.Changes {
		tw.Line(1, "#%d %s", i+1, c.Kind)
		tw.Change(2, c.Selector, c.Result)
	}
	return tw.Bytes()
}
