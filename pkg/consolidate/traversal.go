package consolidate

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// walkState accumulates counters and the binary manifest over one traversal.
// It lives for a single Run and is owned by the walk call stack alone.
type walkState struct {
	filesIncluded int
	binaryFiles   []string
	bytesWritten  int64
}

// walkDirectory performs the two-pass depth-first descent. Every file in a
// directory is handled before any subdirectory is entered, so a directory's
// own content always precedes its descendants' in the artifact. A listing
// failure downgrades the directory to empty; only sink write errors abort.
func walkDirectory(dir string, cfg *Config, rules *RuleSet, sink io.Writer, state *walkState, logger *zap.Logger) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Warn("Cannot list directory, treating as empty",
			zap.String("dir", dir), zap.Error(err))
		return nil
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if rules.ShouldIgnore(path, cfg.OutputPath) {
			continue
		}
		switch Classify(entry.Name(), cfg.Extensions) {
		case ClassBinary:
			absPath, absErr := filepath.Abs(path)
			if absErr != nil {
				absPath = path
			}
			state.binaryFiles = append(state.binaryFiles, absPath)
		case ClassIncludable:
			if err := emitFile(path, cfg, sink, state, logger); err != nil {
				return err
			}
		case ClassExcluded:
			logger.Debug("Skipping file outside extension list", zap.String("file", path))
		}
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if rules.ShouldIgnore(path, cfg.OutputPath) {
			logger.Debug("Skipping ignored directory", zap.String("dir", path))
			continue
		}
		if err := walkDirectory(path, cfg, rules, sink, state, logger); err != nil {
			return err
		}
	}

	return nil
}

// emitFile writes one included file's delimited block to the sink. Oversized
// and unreadable files are diagnostics and get skipped; a write failure on
// the sink is fatal for the whole run.
func emitFile(path string, cfg *Config, sink io.Writer, state *walkState, logger *zap.Logger) error {
	if cfg.MaxFileSize > 0 {
		if info, statErr := os.Stat(path); statErr == nil && info.Size() > cfg.MaxFileSize {
			logger.Warn("Skipping file over size limit",
				zap.String("file", path),
				zap.Int64("sizeBytes", info.Size()),
				zap.Int64("limitBytes", cfg.MaxFileSize))
			return nil
		}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Skipping unreadable file", zap.String("file", path), zap.Error(err))
		return nil
	}

	rel, relErr := filepath.Rel(cfg.RootDir, path)
	if relErr != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)

	if _, err := fmt.Fprintf(sink, "## FILE: %s\n\n", rel); err != nil {
		return fmt.Errorf("write header for %s: %w", rel, err)
	}
	if _, err := sink.Write(content); err != nil {
		return fmt.Errorf("write content of %s: %w", rel, err)
	}
	if _, err := io.WriteString(sink, "\n\n"); err != nil {
		return fmt.Errorf("write separator after %s: %w", rel, err)
	}

	state.filesIncluded++
	state.bytesWritten += int64(len(content))
	return nil
}
