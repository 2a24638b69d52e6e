package consolidate

import (
	"path/filepath"
	"strings"
)

// Classification is the verdict for a single directory entry.
type Classification int

const (
	// ClassBinary marks media, archive, executable, and document formats
	// cataloged in the manifest instead of being inlined.
	ClassBinary Classification = iota
	// ClassIncludable marks text files whose content goes into the artifact.
	ClassIncludable
	// ClassExcluded marks files outside the active allow-list, dropped silently.
	ClassExcluded
)

// BinaryExtensions is the fixed registry of extensions treated as binary.
// Classification is extension-only; content is never sniffed.
var BinaryExtensions = map[string]bool{
	// images
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".bmp": true,
	".ico": true, ".svg": true, ".webp": true, ".tiff": true, ".psd": true,
	// audio / video
	".mp3": true, ".wav": true, ".ogg": true, ".flac": true, ".m4a": true,
	".mp4": true, ".avi": true, ".mov": true, ".mkv": true, ".webm": true,
	// archives
	".zip": true, ".tar": true, ".gz": true, ".bz2": true, ".xz": true,
	".7z": true, ".rar": true, ".jar": true, ".war": true,
	// executables and object code
	".exe": true, ".dll": true, ".so": true, ".dylib": true, ".bin": true,
	".o": true, ".a": true, ".class": true, ".wasm": true,
	// documents and data blobs
	".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
	".ppt": true, ".pptx": true, ".sqlite": true, ".db": true,
	// fonts
	".ttf": true, ".otf": true, ".woff": true, ".woff2": true, ".eot": true,
}

// DefaultExtensions is the allow-list used when no explicit extension filter
// is supplied: common source and plain-text formats.
var DefaultExtensions = map[string]bool{
	".go": true, ".py": true, ".js": true, ".jsx": true, ".ts": true,
	".tsx": true, ".java": true, ".c": true, ".h": true, ".cpp": true,
	".hpp": true, ".cc": true, ".cs": true, ".rb": true, ".rs": true,
	".php": true, ".swift": true, ".kt": true, ".scala": true, ".lua": true,
	".pl": true, ".r": true, ".sh": true, ".bash": true, ".zsh": true,
	".ps1": true, ".bat": true, ".sql": true, ".html": true, ".htm": true,
	".css": true, ".scss": true, ".less": true, ".vue": true, ".svelte": true,
	".json": true, ".yaml": true, ".yml": true, ".toml": true, ".ini": true,
	".cfg": true, ".conf": true, ".env": true, ".xml": true, ".proto": true,
	".graphql": true, ".md": true, ".rst": true, ".txt": true, ".mod": true,
	".dockerfile": true, ".makefile": true, ".gradle": true, ".tf": true,
	".tfvars": true,
}

// Classify buckets an entry by its extension alone, lower-cased. The binary
// registry wins over the allow-list; allowed nil means DefaultExtensions.
func Classify(name string, allowed map[string]bool) Classification {
	ext := strings.ToLower(filepath.Ext(name))
	if BinaryExtensions[ext] {
		return ClassBinary
	}
	if allowed == nil {
		allowed = DefaultExtensions
	}
	if allowed[ext] {
		return ClassIncludable
	}
	return ClassExcluded
}
