// Package export writes extraction reports to zstd-compressed JSON
// archives so recaps can be kept or shipped elsewhere cheaply.
package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/klauspost/compress/zstd"

	"github.com/codetrail/worklog/pkg/session"
)

// WriteArchive writes the report as zstd-compressed JSON to path and
// returns the compressed size in bytes.
func WriteArchive(path string, report *session.Report) (int64, error) {
	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create archive: %w", err)
	}
	defer file.Close()

	// Default compression level (good balance of speed/ratio)
	encoder, err := zstd.NewWriter(file, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return 0, fmt.Errorf("failed to create encoder: %w", err)
	}

	if err := json.NewEncoder(encoder).Encode(report); err != nil {
		encoder.Close()
		return 0, fmt.Errorf("failed to encode report: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return 0, fmt.Errorf("failed to flush archive: %w", err)
	}
	if err := file.Close(); err != nil {
		return 0, fmt.Errorf("failed to close archive: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("failed to stat archive: %w", err)
	}
	return info.Size(), nil
}

// ReadArchive reads a report back from a zstd-compressed archive.
func ReadArchive(path string) (*session.Report, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer file.Close()

	decoder, err := zstd.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}
	defer decoder.Close()

	var report session.Report
	if err := json.NewDecoder(decoder.IOReadCloser()).Decode(&report); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}
	return &report, nil
}
