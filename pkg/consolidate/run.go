package consolidate

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap"
)

const binaryManifestNote = "The following binary or media files were found and are not included above:"

// DefaultOutputName derives the artifact filename used when no output path
// is supplied: "<root-base>_llm_<YYYY-MM-DD>.txt".
func DefaultOutputName(rootDir string, now time.Time) string {
	return fmt.Sprintf("%s_llm_%s.txt", filepath.Base(rootDir), now.Format("2006-01-02"))
}

// Run executes one consolidation: loads ignore rules, streams included file
// content to the artifact, appends the binary manifest and the directory
// tree, flushes, and returns the final counters. Output-file creation and
// write failures are fatal; everything else is reported and skipped.
func Run(cfg Config, logger *zap.Logger) (Summary, error) {
	startTime := time.Now()

	rootDir, err := filepath.Abs(cfg.RootDir)
	if err != nil {
		return Summary{}, fmt.Errorf("resolve root directory: %w", err)
	}
	info, err := os.Stat(rootDir)
	if err != nil {
		return Summary{}, fmt.Errorf("root directory %s: %w", cfg.RootDir, err)
	}
	if !info.IsDir() {
		return Summary{}, fmt.Errorf("root %s is not a directory", cfg.RootDir)
	}
	cfg.RootDir = rootDir

	rules := LoadRules(rootDir, logger)

	if cfg.OutputPath == "" {
		cfg.OutputPath = DefaultOutputName(rootDir, time.Now())
	}

	logger.Info("Starting consolidation",
		zap.String("root", rootDir),
		zap.String("output", cfg.OutputPath))

	outFile, err := os.Create(cfg.OutputPath)
	if err != nil {
		return Summary{}, fmt.Errorf("create output file %s: %w", cfg.OutputPath, err)
	}
	defer func() {
		if closeErr := outFile.Close(); closeErr != nil {
			logger.Warn("Failed to close output file",
				zap.String("file", cfg.OutputPath), zap.Error(closeErr))
		}
	}()

	writer := bufio.NewWriter(outFile)
	state := &walkState{}

	if err := walkDirectory(rootDir, &cfg, rules, writer, state, logger); err != nil {
		return Summary{}, fmt.Errorf("traversal failed: %w", err)
	}

	if len(state.binaryFiles) > 0 {
		sort.Strings(state.binaryFiles)
		if err := writeBinaryManifest(writer, state.binaryFiles); err != nil {
			return Summary{}, err
		}
	}

	if _, err := fmt.Fprintf(writer, "## DIRECTORY TREE\n\n%s\n", filepath.Base(rootDir)); err != nil {
		return Summary{}, fmt.Errorf("write tree header: %w", err)
	}
	for _, line := range RenderTree(&cfg, rules, logger) {
		if _, err := fmt.Fprintln(writer, line); err != nil {
			return Summary{}, fmt.Errorf("write tree line: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		return Summary{}, fmt.Errorf("flush output: %w", err)
	}

	summary := Summary{
		FilesIncluded: state.filesIncluded,
		BinaryFound:   len(state.binaryFiles),
		BytesWritten:  state.bytesWritten,
		OutputPath:    cfg.OutputPath,
	}
	logger.Info("Consolidation complete",
		zap.Int("filesIncluded", summary.FilesIncluded),
		zap.Int("binaryFiles", summary.BinaryFound),
		zap.Int64("bytesWritten", summary.BytesWritten),
		zap.Duration("elapsed", time.Since(startTime)))
	return summary, nil
}

// writeBinaryManifest emits the sorted binary-file section of the artifact.
func writeBinaryManifest(w io.Writer, paths []string) error {
	if _, err := fmt.Fprintf(w, "## BINARY/MEDIA FILES FOUND\n\n%s\n", binaryManifestNote); err != nil {
		return fmt.Errorf("write binary manifest header: %w", err)
	}
	for _, path := range paths {
		if _, err := fmt.Fprintf(w, "- %s\n", path); err != nil {
			return fmt.Errorf("write binary manifest entry: %w", err)
		}
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("write binary manifest separator: %w", err)
	}
	return nil
}
