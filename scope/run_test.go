package scope

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"scopecss/config"
	"scopecss/state"
)

// setupTestEnv creates a test environment with proper context and logger
func setupTestEnv(t *testing.T) (context.Context, *state.LocalEnv, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true

	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)
	env.Log = logger
	env.Cfg = cfg
	out := &bytes.Buffer{}
	env.Out = out
	return ctx, env, out
}

func runScope(ctx context.Context, args ...string) error {
	cmd := &cli.Command{
		Name:   "scope",
		Action: Run,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "prefix"},
			&cli.StringFlag{Name: "nested"},
			&cli.BoolFlag{Name: "make-backup", Aliases: []string{"mb"}},
			&cli.BoolFlag{Name: "stdout"},
		},
	}
	return cmd.Run(ctx, append([]string{"scope"}, args...))
}

func TestRun(t *testing.T) {
	ctx, _, out := setupTestEnv(t)
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "panel.css.backup")
	dst := filepath.Join(tmpDir, "panel.css")
	writeFile(t, src, []byte(panelCSS))

	if err := runScope(ctx, src); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got := readFile(t, dst); got != panelScoped {
		t.Errorf("output =\n%q\nwant\n%q", got, panelScoped)
	}
	if want := "Scoped CSS written to " + dst + "\n"; out.String() != want {
		t.Errorf("confirmation = %q, want %q", out.String(), want)
	}
}

func TestRun_Flags(t *testing.T) {
	const input = ".a { b: c; }\n@media print { .x { y: z; } }\n"

	tests := []struct {
		name  string
		flags []string
		want  string
	}{
		{
			name: "defaults",
			want: ".incident-injector-panel .a { b: c; }\n@media print { .x { y: z; } }\n",
		},
		{
			name:  "prefix",
			flags: []string{"--prefix", "#root"},
			want:  "#root .a { b: c; }\n@media print { .x { y: z; } }\n",
		},
		{
			name:  "flat",
			flags: []string{"--nested", "flat"},
			want:  ".incident-injector-panel .a { b: c; }\n@media print {.incident-injector-panel .x { y: z; } }\n",
		},
		{
			name:  "unknown nested mode",
			flags: []string{"--nested", "sideways"},
			want:  ".incident-injector-panel .a { b: c; }\n@media print { .x { y: z; } }\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _, _ := setupTestEnv(t)
			tmpDir := t.TempDir()
			src := filepath.Join(tmpDir, "in.css")
			dst := filepath.Join(tmpDir, "out.css")
			writeFile(t, src, []byte(input))

			args := append(append([]string{}, tt.flags...), src, dst)
			if err := runScope(ctx, args...); err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if got := readFile(t, dst); got != tt.want {
				t.Errorf("output =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestRun_ConfiguredPaths(t *testing.T) {
	ctx, env, _ := setupTestEnv(t)
	tmpDir := t.TempDir()
	env.Cfg.Scoping.Input = filepath.Join(tmpDir, "styles.src")
	env.Cfg.Scoping.Output = filepath.Join(tmpDir, "styles.css")
	env.Cfg.Scoping.Prefix = ".widget"
	writeFile(t, env.Cfg.Scoping.Input, []byte("p { margin: 0; }"))

	if err := runScope(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := readFile(t, env.Cfg.Scoping.Output); got != ".widget p { margin: 0; }" {
		t.Errorf("output = %q", got)
	}
}

func TestRun_Stdout(t *testing.T) {
	ctx, _, out := setupTestEnv(t)
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "panel.css.backup")
	dst := filepath.Join(tmpDir, "panel.css")
	writeFile(t, src, []byte(panelCSS))

	if err := runScope(ctx, "--stdout", src); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out.String() != panelScoped {
		t.Errorf("stdout =\n%q\nwant\n%q", out.String(), panelScoped)
	}
	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Error("destination must not be written in stdout mode")
	}
}

func TestRun_MakeBackup(t *testing.T) {
	ctx, _, _ := setupTestEnv(t)
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "panel.css.backup")
	dst := filepath.Join(tmpDir, "panel.css")
	writeFile(t, dst, []byte(panelCSS))

	if err := runScope(ctx, "--make-backup", src); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := readFile(t, src); got != panelCSS {
		t.Errorf("backup = %q", got)
	}
	if got := readFile(t, dst); got != panelScoped {
		t.Errorf("output = %q", got)
	}

	// running again starts from pristine backup and produces the same result
	if err := runScope(ctx, "--mb", src); err != nil {
		t.Fatalf("second Run() error = %v", err)
	}
	if got := readFile(t, dst); got != panelScoped {
		t.Errorf("second output = %q", got)
	}
}

func TestRun_MissingInput(t *testing.T) {
	ctx, _, out := setupTestEnv(t)
	tmpDir := t.TempDir()
	dst := filepath.Join(tmpDir, "panel.css")

	err := runScope(ctx, filepath.Join(tmpDir, "panel.css.backup"))
	if !errors.Is(err, ErrInputNotFound) {
		t.Fatalf("Run() error = %v, want ErrInputNotFound", err)
	}
	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Error("output must not be created")
	}
	if out.Len() != 0 {
		t.Errorf("unexpected confirmation %q", out.String())
	}
}

func TestRun_DebugReport(t *testing.T) {
	ctx, env, _ := setupTestEnv(t)
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "panel.css.backup")
	dst := filepath.Join(tmpDir, "panel.css")
	writeFile(t, src, []byte(panelCSS))

	env.Cfg.Reporting.Destination = filepath.Join(tmpDir, "report.zip")
	rpt, err := env.Cfg.Reporting.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	env.Rpt = rpt

	if err := runScope(ctx, src, dst); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if err := rpt.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	zr, err := zip.OpenReader(env.Cfg.Reporting.Destination)
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer zr.Close()

	files := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("Open(%s) error = %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("ReadAll(%s) error = %v", f.Name, err)
		}
		files[f.Name] = string(data)
	}

	if files["input.css"] != panelCSS {
		t.Errorf("input.css = %q", files["input.css"])
	}
	if files["output.css"] != panelScoped {
		t.Errorf("output.css = %q", files["output.css"])
	}
	trace, ok := files["trace.txt"]
	if !ok {
		t.Fatal("trace.txt missing from report")
	}
	for _, want := range []string{`".foo" -> ".incident-injector-panel .foo"`, "verbatim", "nested: passthrough"} {
		if !strings.Contains(trace, want) {
			t.Errorf("trace does not contain %q:\n%s", want, trace)
		}
	}
	if _, ok := files["MANIFEST"]; !ok {
		t.Error("MANIFEST missing from report")
	}
}
