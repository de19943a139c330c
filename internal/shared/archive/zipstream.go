package archive

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/flate"

	"resume-generator/internal/shared/telemetry"
)

// ErrArchive indicates a failure while streaming a zip archive. By the time
// it surfaces, part of the stream may already have been written; the caller
// must abort the transport rather than report truncated success.
var ErrArchive = errors.New("archive failed")

// StreamZip walks sourceDir recursively and writes a deflate-compressed zip
// to sink incrementally. Entry paths are relative to sourceDir; the root
// directory itself gets no entry. A file that disappears between the walk
// and the read is skipped (a delete racing an archive is tolerated);
// any other read error aborts the stream.
func StreamZip(ctx context.Context, sourceDir string, sink io.Writer) error {
	zw := zip.NewWriter(sink)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestCompression)
	})

	walkErr := filepath.WalkDir(sourceDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("%w: walk %s: %v", ErrArchive, path, err)
		}
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}

		rel, err := filepath.Rel(sourceDir, path)
		if err != nil {
			return fmt.Errorf("%w: rel %s: %v", ErrArchive, path, err)
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if entry.IsDir() {
			if _, err := zw.Create(rel + "/"); err != nil {
				return fmt.Errorf("%w: dir entry %s: %v", ErrArchive, rel, err)
			}
			return nil
		}

		info, err := entry.Info()
		if err != nil {
			if os.IsNotExist(err) {
				logVanished(rel)
				return nil
			}
			return fmt.Errorf("%w: stat %s: %v", ErrArchive, rel, err)
		}

		f, err := os.Open(path)
		if err != nil {
			if os.IsNotExist(err) {
				logVanished(rel)
				return nil
			}
			return fmt.Errorf("%w: open %s: %v", ErrArchive, rel, err)
		}
		defer f.Close()

		header := &zip.FileHeader{
			Name:     rel,
			Method:   zip.Deflate,
			Modified: info.ModTime(),
		}
		w, err := zw.CreateHeader(header)
		if err != nil {
			return fmt.Errorf("%w: entry %s: %v", ErrArchive, rel, err)
		}
		if _, err := io.Copy(w, f); err != nil {
			return fmt.Errorf("%w: copy %s: %v", ErrArchive, rel, err)
		}
		return nil
	})

	if walkErr != nil {
		// Closing would write a valid central directory over a partial
		// archive; leave the stream visibly broken instead.
		return walkErr
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("%w: close: %v", ErrArchive, err)
	}
	return nil
}

func logVanished(rel string) {
	telemetry.Warn("archive.entry_vanished", map[string]any{"entry": rel})
}
