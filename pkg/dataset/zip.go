package dataset

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// ExtractZip unpacks src into dst and returns the extracted file paths.
// Entries that would escape dst are rejected.
func ExtractZip(src, dst string) (files []string, err error) {
	r, err := zip.OpenReader(src)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", src)
	}
	defer func() {
		err = multierr.Append(err, r.Close())
	}()

	root, err := filepath.Abs(dst)
	if err != nil {
		return nil, err
	}

	for _, f := range r.File {
		target := filepath.Join(root, f.Name)
		if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
			return files, fmt.Errorf("illegal file path in archive: %s", f.Name)
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return files, err
			}
			continue
		}

		if err := extractFile(f, target); err != nil {
			return files, errors.Wrapf(err, "extract %s", f.Name)
		}

		files = append(files, target)
	}

	log.Infof("extracted %d files from %s into %s", len(files), src, dst)
	return files, nil
}

func extractFile(f *zip.File, target string) (err error) {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}

	in, err := f.Open()
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, in.Close())
	}()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, out.Close())
	}()

	_, err = io.Copy(out, in)
	return err
}
