package scope

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"scopecss/config"
)

// BackupSuffix marks pristine copy of a stylesheet which is scoped into the
// live file.
const BackupSuffix = ".backup"

// OutputFor returns live stylesheet name for backup name, false when name
// does not follow the convention.
func OutputFor(input string) (string, bool) {
	if !strings.HasSuffix(input, BackupSuffix) || filepath.Base(input) == BackupSuffix {
		return "", false
	}
	return strings.TrimSuffix(input, BackupSuffix), true
}

// resolvePaths picks source and destination. Missing source comes from
// configuration. Missing destination is derived from source backup name and
// falls back to configuration.
func resolvePaths(args []string, conf *config.ScopingConfig) (src, dst string) {
	src, dst = conf.Input, conf.Output
	if len(args) > 0 && args[0] != "" {
		src = args[0]
		if out, ok := OutputFor(src); ok {
			dst = out
		}
	}
	if len(args) > 1 && args[1] != "" {
		dst = args[1]
	}
	return src, dst
}

// samePath reports whether both names point to the same file.
func samePath(a, b string) bool {
	if fa, err := os.Stat(a); err == nil {
		if fb, err := os.Stat(b); err == nil {
			return os.SameFile(fa, fb)
		}
	}
	aa, erra := filepath.Abs(a)
	ab, errb := filepath.Abs(b)
	return erra == nil && errb == nil && aa == ab
}

// makeBackup creates src as a copy of dst when src is missing, so the very
// first run could start from live stylesheet.
func makeBackup(src, dst string, log *zap.Logger) (err error) {
	if _, err := os.Stat(src); err == nil {
		log.Debug("Backup already exists", zap.String("backup", src))
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("unable to check backup: %w", err)
	}

	in, err := os.Open(dst)
	if err != nil {
		return fmt.Errorf("unable to create backup from %s: %w", dst, err)
	}
	defer in.Close()

	out, err := os.OpenFile(src, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("unable to create backup %s: %w", src, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("unable to create backup %s: %w", src, cerr)
		}
		if err != nil {
			os.Remove(src)
		}
	}()

	if _, err = io.Copy(out, in); err != nil {
		return fmt.Errorf("unable to create backup %s: %w", src, err)
	}
	log.Info("Backup created", zap.String("from", dst), zap.String("backup", src))
	return nil
}
