package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultFileName is page_replacement_results_<unix seconds> plus the extension of c.
func DefaultFileName(now time.Time, c Compression) string {
	return fmt.Sprintf("page_replacement_results_%d%s", now.Unix(), c.Extension())
}

// Encode renders summaries and compresses them.
func Encode(c Compression, summaries ...Summary) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, summaries...); err != nil {
		return nil, err
	}
	return compress(buf.Bytes(), c)
}

// Decode reverses Encode.
func Decode(data []byte, c Compression) ([]Summary, error) {
	plain, err := decompress(data, c)
	if err != nil {
		return nil, err
	}
	return Read(bytes.NewReader(plain))
}

/*
SaveFile writes summaries to path, replacing any existing file.

The data goes to a temporary file in the same directory first and is renamed
into place, so a reader never sees a half written export.
*/
func SaveFile(path string, c Compression, summaries ...Summary) error {
	data, err := Encode(c, summaries...)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".pagesim-export-*")
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write export file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}
	return nil
}

// LoadFile reads an export, picking the decompressor from the file extension.
func LoadFile(path string) ([]Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load file: %w", err)
	}
	return Decode(data, DetectCompression(path))
}
