package scope

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/h2non/filetype"
	"go.uber.org/multierr"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"scopecss/css"
)

var (
	// ErrInputNotFound is returned when source stylesheet does not exist or
	// cannot be read. Nothing is written in this case.
	ErrInputNotFound = errors.New("input stylesheet is not accessible")
	// ErrInputNotText is returned when source is recognized as binary file.
	ErrInputNotText = errors.New("input is not a text stylesheet")
	// ErrOutputUnwritable is returned when destination cannot be created or
	// replaced. Previous destination content, if any, stays intact.
	ErrOutputUnwritable = errors.New("output stylesheet cannot be written")
)

// Transform reads src, scopes every rule and replaces dst with the result.
func Transform(ctx context.Context, src, dst string, rw *css.Rewriter) (*css.Result, error) {
	text, err := Load(ctx, src)
	if err != nil {
		return nil, err
	}

	res := rw.Rewrite(text)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := Save(dst, []byte(res.Text)); err != nil {
		return nil, err
	}
	return res, nil
}

// Load reads whole stylesheet. Byte order mark is dropped and UTF-16 input
// with BOM is converted to UTF-8, anything else is returned as is.
func Load(ctx context.Context, src string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fi, err := os.Stat(src)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInputNotFound, err)
	}
	if !fi.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s is not a regular file", ErrInputNotFound, src)
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInputNotFound, err)
	}

	text, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), data)
	if err != nil {
		return "", fmt.Errorf("%w: unable to decode %s: %w", ErrInputNotText, src, err)
	}

	if kind, _ := filetype.Match(text); kind != filetype.Unknown {
		return "", fmt.Errorf("%w: %s looks like %s", ErrInputNotText, src, kind.MIME.Value)
	}
	return string(text), nil
}

// replaced in tests
var renameFile = os.Rename

// Save replaces dst with data. Data goes to temporary file next to dst first,
// so failed write never leaves truncated destination behind. When dst is a
// symbolic link its target is replaced and the link stays.
func Save(dst string, data []byte) (err error) {
	if real, err := filepath.EvalSymlinks(dst); err == nil {
		dst = real
	}

	mode := os.FileMode(0644)
	if fi, err := os.Stat(dst); err == nil {
		if !fi.Mode().IsRegular() {
			return fmt.Errorf("%w: %s is not a regular file", ErrOutputUnwritable, dst)
		}
		mode = fi.Mode().Perm()
	}

	f, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOutputUnwritable, err)
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			err = multierr.Append(err, os.Remove(tmp))
		}
	}()

	if _, err = f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("%w: %w", ErrOutputUnwritable, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrOutputUnwritable, err)
	}
	if err = os.Chmod(tmp, mode); err != nil {
		return fmt.Errorf("%w: %w", ErrOutputUnwritable, err)
	}
	if err = renameFile(tmp, dst); err != nil {
		return fmt.Errorf("%w: %w", ErrOutputUnwritable, err)
	}
	return nil
}
