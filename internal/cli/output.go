// # Naming Conventions
//
// Functions in this package follow consistent naming patterns:
//
//   - Display* functions write formatted output to an [io.Writer].
//   - Render* and Format* functions return a string without performing I/O.
//   - Write* functions write data to files on the filesystem.

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/agbru/reducebench/internal/orchestration"
)

// JSONPresenter writes the report as indented JSON.
type JSONPresenter struct{}

// PresentReport encodes report to out. Encoding errors are written as a
// JSON error object so the output stays machine-readable.
func (JSONPresenter) PresentReport(report *orchestration.Report, out io.Writer) {
	if err := EncodeReport(report, "json", out); err != nil {
		fmt.Fprintf(out, "{\"error\": %q}\n", err.Error())
	}
}

// YAMLPresenter writes the report as a YAML document.
type YAMLPresenter struct{}

// PresentReport encodes report to out.
func (YAMLPresenter) PresentReport(report *orchestration.Report, out io.Writer) {
	if err := EncodeReport(report, "yaml", out); err != nil {
		fmt.Fprintf(out, "error: %q\n", err.Error())
	}
}

// NewPresenter returns the presenter for an output format: table, json or yaml.
func NewPresenter(formatName string, verbose bool) (orchestration.ResultPresenter, error) {
	switch formatName {
	case "table":
		return TablePresenter{Verbose: verbose}, nil
	case "json":
		return JSONPresenter{}, nil
	case "yaml":
		return YAMLPresenter{}, nil
	}
	return nil, fmt.Errorf("unknown output format %q", formatName)
}

// EncodeReport serializes report in the given format ("json" or "yaml").
func EncodeReport(report *orchestration.Report, formatName string, out io.Writer) error {
	switch formatName {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown report encoding %q", formatName)
}

// FormatForPath picks the file encoding from the extension: .yaml/.yml give
// YAML, anything else JSON.
func FormatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	}
	return "json"
}

// WriteReportToFile saves the report to path, creating parent directories.
// An empty path is a no-op.
func WriteReportToFile(report *orchestration.Report, path string) error {
	if path == "" {
		return nil
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := EncodeReport(report, FormatForPath(path), file); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return file.Close()
}
