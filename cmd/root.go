package cmd

import (
	"fmt"
	"os"
	"strings"

	"llmpack/pkg/clipboard"
	"llmpack/pkg/consolidate"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagOutput      string
	flagExtensions  string
	flagMaxFileSize int64
	flagClipboard   bool
	flagTokens      bool
	flagVerbose     bool
)

// rootLogger is the process logger handed in by main. Verbose runs swap it
// for a development logger before the core is invoked.
var rootLogger *zap.Logger

// RootCmd is the base command: consolidate a repository into one text file.
var RootCmd = &cobra.Command{
	Use:   "llmpack [directory]",
	Short: "Consolidate a repository into a single text file for LLM ingestion",
	Long: `llmpack walks a source repository and produces one text artifact containing
every includable file's content, a manifest of binary/media files, and a
rendered directory tree.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rootDir := "."
		if len(args) == 1 {
			rootDir = args[0]
		}
		return runConsolidate(rootDir)
	},
	SilenceUsage: true,
}

func init() {
	RootCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output file path (default: <root>_llm_<date>.txt)")
	RootCmd.Flags().StringVarP(&flagExtensions, "extensions", "e", "", "Comma-separated list of file extensions to include (e.g. .go,.py)")
	RootCmd.Flags().Int64Var(&flagMaxFileSize, "max-file-size", consolidate.DefaultMaxFileSize, "Per-file size limit in bytes; 0 disables the limit")
	RootCmd.Flags().BoolVarP(&flagClipboard, "clipboard", "c", false, "Copy the finished artifact to the system clipboard")
	RootCmd.Flags().BoolVarP(&flagTokens, "tokens", "t", false, "Report an estimated LLM token count for the artifact")
	RootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command with the process logger.
func Execute(logger *zap.Logger) error {
	rootLogger = logger
	return RootCmd.Execute()
}

// runConsolidate validates the root directory, normalizes flag input, and
// invokes the core. It prints the final counters to standard output.
func runConsolidate(rootDir string) error {
	logger := rootLogger
	if flagVerbose {
		devLogger, err := zap.NewDevelopment()
		if err == nil {
			logger = devLogger
			defer func() { _ = logger.Sync() }()
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	info, err := os.Stat(rootDir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("invalid repository root: %s", rootDir)
	}

	cfg := consolidate.Config{
		RootDir:     rootDir,
		OutputPath:  flagOutput,
		Extensions:  parseExtensions(flagExtensions),
		MaxFileSize: flagMaxFileSize,
	}

	summary, err := consolidate.Run(cfg, logger)
	if err != nil {
		return err
	}

	fmt.Printf("Output written to %s\n", summary.OutputPath)
	fmt.Printf("Files included: %d\n", summary.FilesIncluded)
	fmt.Printf("Binary files found: %d\n", summary.BinaryFound)
	fmt.Printf("Bytes written: %d\n", summary.BytesWritten)

	if flagTokens || flagClipboard {
		artifact, readErr := os.ReadFile(summary.OutputPath)
		if readErr != nil {
			logger.Warn("Cannot read artifact back", zap.Error(readErr))
			return nil
		}
		if flagTokens {
			if tokens, tokErr := consolidate.EstimateTokens(string(artifact)); tokErr != nil {
				logger.Warn("Token estimation failed", zap.Error(tokErr))
			} else {
				fmt.Printf("Estimated tokens: %d\n", tokens)
			}
		}
		if flagClipboard {
			if copyErr := clipboard.NewService().Copy(string(artifact)); copyErr != nil {
				logger.Warn("Clipboard copy failed", zap.Error(copyErr))
			} else {
				fmt.Println("Artifact copied to clipboard.")
			}
		}
	}
	return nil
}

// parseExtensions normalizes a comma-separated extension list to lower-case,
// dot-prefixed tokens. Empty input means the built-in default list.
func parseExtensions(raw string) map[string]bool {
	if raw == "" {
		return nil
	}
	extensions := make(map[string]bool)
	for _, token := range strings.Split(raw, ",") {
		token = strings.ToLower(strings.TrimSpace(token))
		if token == "" {
			continue
		}
		if !strings.HasPrefix(token, ".") {
			token = "." + token
		}
		extensions[token] = true
	}
	if len(extensions) == 0 {
		return nil
	}
	return extensions
}
