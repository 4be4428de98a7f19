package export

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/golang/snappy"
	"github.com/pierrec/lz4/v4"
)

// Compression selects how an export file is encoded on disk.
type Compression string

const (
	CompressionNone   Compression = "none"
	CompressionSnappy Compression = "snappy"
	CompressionLZ4    Compression = "lz4"
)

// ParseCompression accepts none/"" , snappy/sz and lz4.
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "txt":
		return CompressionNone, nil
	case "snappy", "sz":
		return CompressionSnappy, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return "", fmt.Errorf("unsupported compression %q (must be none, snappy or lz4)", s)
	}
}

// Extension is the file suffix used for c.
func (c Compression) Extension() string {
	switch c {
	case CompressionSnappy:
		return ".txt.sz"
	case CompressionLZ4:
		return ".txt.lz4"
	default:
		return ".txt"
	}
}

// DetectCompression guesses the encoding of a file from its name.
func DetectCompression(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".sz", ".snappy":
		return CompressionSnappy
	case ".lz4":
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

/*
Rename returns path with its compression suffix swapped for the one of c, so
that DetectCompression(c.Rename(path)) == c and LoadFile can read it back.

	results.txt     + lz4    -> results.txt.lz4
	results.txt.sz  + none   -> results.txt
	results.txt.lz4 + lz4    -> results.txt.lz4
*/
func (c Compression) Rename(path string) string {
	if DetectCompression(path) == c {
		return path
	}
	for DetectCompression(path) != CompressionNone {
		path = strings.TrimSuffix(path, filepath.Ext(path))
	}
	switch c {
	case CompressionSnappy:
		return path + ".sz"
	case CompressionLZ4:
		return path + ".lz4"
	default:
		return path
	}
}

func compress(data []byte, c Compression) ([]byte, error) {
	switch c {
	case CompressionNone, "":
		return data, nil

	case CompressionSnappy:
		return snappy.Encode(nil, data), nil

	case CompressionLZ4:
		var buf bytes.Buffer
		zw := lz4.NewWriter(&buf)
		if _, err := zw.Write(data); err != nil {
			return nil, fmt.Errorf("LZ4 compression failed: %w", err)
		}
		if err := zw.Close(); err != nil {
			return nil, fmt.Errorf("LZ4 compression failed: %w", err)
		}
		return buf.Bytes(), nil

	default:
		return nil, fmt.Errorf("unsupported compression %q", string(c))
	}
}

func decompress(data []byte, c Compression) ([]byte, error) {
	switch c {
	case CompressionNone, "":
		return data, nil

	case CompressionSnappy:
		out, err := snappy.Decode(nil, data)
		if err != nil {
			return nil, fmt.Errorf("snappy decompression failed: %w", err)
		}
		return out, nil

	case CompressionLZ4:
		out, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
		if err != nil {
			return nil, fmt.Errorf("LZ4 decompression failed: %w", err)
		}
		return out, nil

	default:
		return nil, fmt.Errorf("unsupported compression %q", string(c))
	}
}
