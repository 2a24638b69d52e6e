package consolidate

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// IgnoreFileName is the optional per-repository ignore file read from the root.
const IgnoreFileName = ".llmignore"

// builtinIgnores applies to every run, ignore file or not: version-control
// metadata, dependency and build output directories, lockfiles, editor state,
// and minified assets.
var builtinIgnores = []string{
	".git/",
	".hg/",
	".svn/",
	".idea/",
	".vscode/",
	"node_modules/",
	"__pycache__/",
	"venv/",
	".venv/",
	"vendor/",
	"dist/",
	"build/",
	"target/",
	".pytest_cache/",
	".mypy_cache/",
	"package-lock.json",
	"yarn.lock",
	"Pipfile.lock",
	"poetry.lock",
	".DS_Store",
	"*.min.js",
	"*.min.css",
	"*.map",
	"*.pyc",
}

// RuleSet is an ordered list of exclusion patterns resolved against a root.
// It is built once per run and read-only afterwards.
type RuleSet struct {
	patterns []string
	root     string
	logger   *zap.Logger
}

// LoadRules reads the root-level ignore file and appends the built-in
// exclusions. A missing or unreadable ignore file counts as empty. Per line:
// whitespace is trimmed, blanks and '#' comments are dropped, '!' negation
// lines are dropped unsupported (never inverted), and one leading '/' is
// stripped.
func LoadRules(root string, logger *zap.Logger) *RuleSet {
	rules := &RuleSet{root: root, logger: logger}

	data, err := os.ReadFile(filepath.Join(root, IgnoreFileName))
	switch {
	case err == nil:
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
				continue
			}
			rules.patterns = append(rules.patterns, strings.TrimPrefix(line, "/"))
		}
		logger.Debug("Loaded ignore file",
			zap.String("file", IgnoreFileName),
			zap.Int("patterns", len(rules.patterns)))
	case !os.IsNotExist(err):
		logger.Warn("Failed to read ignore file, continuing without it",
			zap.String("file", IgnoreFileName),
			zap.Error(err))
	}

	rules.patterns = append(rules.patterns, builtinIgnores...)
	return rules
}

// ShouldIgnore reports whether path is excluded by the rule set. The
// configured output artifact is always excluded so a run never consumes its
// own output. First matching pattern wins; no match means keep.
//
// Directory patterns (trailing '/') match by prefix and by path substring,
// which is deliberately broader than path-segment matching: "build/" also
// covers "other/build/". Wildcard and literal patterns are tried against both
// the root-relative path and the bare entry name.
func (rs *RuleSet) ShouldIgnore(path, outputPath string) bool {
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}
	if outputPath != "" {
		if absOutput, absErr := filepath.Abs(outputPath); absErr == nil && absPath == absOutput {
			return true
		}
	}

	rel, err := filepath.Rel(rs.root, absPath)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	base := filepath.Base(path)

	for _, pattern := range rs.patterns {
		switch {
		case strings.HasSuffix(pattern, "/"):
			dir := strings.TrimSuffix(pattern, "/")
			if strings.HasPrefix(rel, dir) || strings.Contains(rel, "/"+dir) {
				return true
			}
		case strings.ContainsAny(pattern, "*?"):
			if wildcardMatch(pattern, rel) || wildcardMatch(pattern, base) {
				return true
			}
		default:
			if rel == pattern || base == pattern {
				return true
			}
		}
	}
	return false
}
