package scope

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"

	"scopecss/config"
)

func TestOutputFor(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{"extension/panel.css.backup", "extension/panel.css", true},
		{"panel.css.backup", "panel.css", true},
		{"/abs/path/x.backup", "/abs/path/x", true},
		{"panel.css", "", false},
		{"panel.backup.css", "", false},
		{".backup", "", false},
		{"dir/.backup", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := OutputFor(tt.input)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("OutputFor(%q) = %q, %v; want %q, %v", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestResolvePaths(t *testing.T) {
	conf := &config.ScopingConfig{
		Input:  "extension/panel.css.backup",
		Output: "extension/panel.css",
	}

	tests := []struct {
		name    string
		args    []string
		wantSrc string
		wantDst string
	}{
		{"defaults", nil, "extension/panel.css.backup", "extension/panel.css"},
		{"empty argument", []string{""}, "extension/panel.css.backup", "extension/panel.css"},
		{"backup source", []string{"a/site.css.backup"}, "a/site.css.backup", "a/site.css"},
		{"plain source", []string{"site.css"}, "site.css", "extension/panel.css"},
		{"both", []string{"in.css", "out.css"}, "in.css", "out.css"},
		{"backup source explicit destination", []string{"x.css.backup", "y.css"}, "x.css.backup", "y.css"},
		{"destination only", []string{"", "y.css"}, "extension/panel.css.backup", "y.css"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, dst := resolvePaths(tt.args, conf)
			if src != tt.wantSrc || dst != tt.wantDst {
				t.Errorf("resolvePaths(%q) = %q, %q; want %q, %q", tt.args, src, dst, tt.wantSrc, tt.wantDst)
			}
		})
	}
}

func TestSamePath(t *testing.T) {
	tmpDir := t.TempDir()
	a := filepath.Join(tmpDir, "a.css")
	writeFile(t, a, []byte("x"))

	if !samePath(a, filepath.Join(tmpDir, ".", "a.css")) {
		t.Error("expected paths to be the same")
	}
	if samePath(a, filepath.Join(tmpDir, "b.css")) {
		t.Error("expected paths to differ")
	}
	// neither exists
	if !samePath(filepath.Join(tmpDir, "c.css"), filepath.Join(tmpDir, "sub", "..", "c.css")) {
		t.Error("expected missing paths to compare by absolute name")
	}
}

func TestMakeBackup(t *testing.T) {
	log := zaptest.NewLogger(t)

	t.Run("creates backup", func(t *testing.T) {
		tmpDir := t.TempDir()
		src := filepath.Join(tmpDir, "panel.css.backup")
		dst := filepath.Join(tmpDir, "panel.css")
		writeFile(t, dst, []byte(".live {}"))

		if err := makeBackup(src, dst, log); err != nil {
			t.Fatalf("makeBackup() error = %v", err)
		}
		if got := readFile(t, src); got != ".live {}" {
			t.Errorf("backup = %q", got)
		}
	})

	t.Run("keeps existing backup", func(t *testing.T) {
		tmpDir := t.TempDir()
		src := filepath.Join(tmpDir, "panel.css.backup")
		dst := filepath.Join(tmpDir, "panel.css")
		writeFile(t, src, []byte(".pristine {}"))
		writeFile(t, dst, []byte(".live {}"))

		if err := makeBackup(src, dst, log); err != nil {
			t.Fatalf("makeBackup() error = %v", err)
		}
		if got := readFile(t, src); got != ".pristine {}" {
			t.Errorf("backup overwritten: %q", got)
		}
	})

	t.Run("nothing to copy", func(t *testing.T) {
		tmpDir := t.TempDir()
		src := filepath.Join(tmpDir, "panel.css.backup")

		if err := makeBackup(src, filepath.Join(tmpDir, "panel.css"), log); err == nil {
			t.Fatal("expected error when live stylesheet is missing")
		}
		if _, err := os.Stat(src); !os.IsNotExist(err) {
			t.Error("backup must not be created")
		}
	})
}
