package consolidate

// DefaultMaxFileSize is the per-file size ceiling applied when the caller
// does not override it. Files larger than this are skipped with a diagnostic.
const DefaultMaxFileSize int64 = 1 << 20 // 1 MiB

// Config holds the settings for a single consolidation run. It is built once
// from validated CLI input and never mutated afterwards.
type Config struct {
	RootDir     string          // repository root; resolved to an absolute path by Run
	OutputPath  string          // artifact destination; derived from RootDir and the date when empty
	Extensions  map[string]bool // normalized allow-list (lower-case, dot-prefixed); nil means DefaultExtensions
	MaxFileSize int64           // per-file ceiling in bytes; 0 disables the check
}

// Summary reports the counters accumulated over a completed run.
type Summary struct {
	FilesIncluded int    // text files whose content was written to the artifact
	BinaryFound   int    // binary/media files listed in the manifest
	BytesWritten  int64  // total content bytes written (headers excluded)
	OutputPath    string // resolved artifact path, default name included
}
