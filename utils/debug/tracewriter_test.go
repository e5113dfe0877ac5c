package debug

import "testing"

func TestTraceWriter_Line(t *testing.T) {
	tests := []struct {
		name   string
		depth  int
		format string
		args   []any
		want   string
	}{
		{"no depth", 0, "test", nil, "test\n"},
		{"depth 1", 1, "indented", nil, "  indented\n"},
		{"depth 2", 2, "double indent", nil, "    double indent\n"},
		{"with formatting", 1, "rules=%d mode=%s", []any{3, "flat"}, "  rules=3 mode=flat\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTraceWriter()
			tw.Line(tt.depth, tt.format, tt.args...)
			if got := tw.String(); got != tt.want {
				t.Errorf("Line() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTraceWriter_Text(t *testing.T) {
	tw := NewTraceWriter()
	tw.Text(1, "input", "a\nb")
	tw.Text(0, "empty", "")

	want := "  input: \"a\\nb\"\nempty: \"\"\n"
	if got := tw.String(); got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

func TestTraceWriter_Change(t *testing.T) {
	tw := NewTraceWriter()
	tw.Change(0, ".a", ".p .a")
	tw.Change(1, ":root", ":root")

	want := "\".a\" -> \".p .a\"\n  = \":root\"\n"
	if got := tw.String(); got != want {
		t.Errorf("Change() = %q, want %q", got, want)
	}
	if string(tw.Bytes()) != want {
		t.Error("Bytes() differs from String()")
	}
}
