package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// FileValidator checks input and output locations before a pipeline run so
// failures surface up front rather than halfway through processing.
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// ValidateInputFile validates that the input file exists, is a regular
// file, and carries the expected extension.
func (v *FileValidator) ValidateInputFile(path string, wantExt string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("Input file does not exist",
			slog.String("path", path))
		return fmt.Errorf("input file %s does not exist", path)
	}
	if err != nil {
		return fmt.Errorf("failed to stat input file %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, expected a file", path)
	}

	if wantExt != "" && !strings.EqualFold(filepath.Ext(path), wantExt) {
		v.logger.Error("Input file has unexpected extension",
			slog.String("path", path),
			slog.String("want", wantExt))
		return fmt.Errorf("input file %s does not have extension %s", path, wantExt)
	}

	if info.Size() == 0 {
		v.logger.Warn("Input file is empty",
			slog.String("path", path))
	}

	return nil
}

// ValidateInputDirectory validates that the input directory exists and, if
// a pattern is given, contains at least one matching file.
func (v *FileValidator) ValidateInputDirectory(dir string, requiredPattern string) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		v.logger.Error("Input directory does not exist",
			slog.String("directory", dir))
		return fmt.Errorf("input directory %s does not exist", dir)
	}
	if err != nil {
		return fmt.Errorf("failed to stat directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	if requiredPattern != "" {
		pattern := filepath.Join(dir, requiredPattern)
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return fmt.Errorf("failed to check for files: %w", err)
		}
		if len(matches) == 0 {
			v.logger.Error("No files matching pattern found",
				slog.String("directory", dir),
				slog.String("pattern", requiredPattern))
			return fmt.Errorf("no files matching %s in %s", requiredPattern, dir)
		}
	}

	return nil
}

// ValidateOutputDirectory ensures the output directory exists, creating it
// when needed.
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return nil
}
