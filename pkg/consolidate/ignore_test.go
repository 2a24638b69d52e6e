package consolidate

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

const ignoreFixture = `# comment line
!keep.py

/secret.txt
build/
*.min.js
notes.md
`

func writeIgnoreFile(t *testing.T, root, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(root, IgnoreFileName), []byte(content), 0o644); err != nil {
		t.Fatalf("write ignore file: %v", err)
	}
}

func TestLoadRulesParsing(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeIgnoreFile(t, root, ignoreFixture)

	rules := LoadRules(root, zap.NewNop())

	// Comments, blanks, and negation lines are dropped; the leading slash is
	// stripped; built-ins are appended after the file's own patterns.
	want := []string{"secret.txt", "build/", "*.min.js", "notes.md"}
	if len(rules.patterns) != len(want)+len(builtinIgnores) {
		t.Fatalf("pattern count = %d, want %d", len(rules.patterns), len(want)+len(builtinIgnores))
	}
	for i, pattern := range want {
		if rules.patterns[i] != pattern {
			t.Fatalf("patterns[%d] = %q, want %q", i, rules.patterns[i], pattern)
		}
	}
}

func TestLoadRulesMissingFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	rules := LoadRules(root, zap.NewNop())

	if len(rules.patterns) != len(builtinIgnores) {
		t.Fatalf("missing ignore file must yield built-ins only, got %d patterns", len(rules.patterns))
	}
}

func TestShouldIgnore(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeIgnoreFile(t, root, ignoreFixture)
	rules := LoadRules(root, zap.NewNop())

	testCases := []struct {
		name string
		path string
		want bool
	}{
		{"negated pattern is dropped not inverted", "keep.py", false},
		{"leading slash stripped", "secret.txt", true},
		{"directory pattern", "build/x.py", true},
		{"directory pattern matches nested occurrence", "other/build/y.py", true},
		{"wildcard against relative path", "app.min.js", true},
		{"wildcard against base name", "src/app.min.js", true},
		{"wildcard does not overreach", "src/app.js", false},
		{"literal against base name anywhere", "sub/notes.md", true},
		{"builtin vcs directory", ".git/config", true},
		{"builtin dependency directory", "node_modules/pkg/index.js", true},
		{"builtin lockfile", "package-lock.json", true},
		{"ordinary file survives", "src/main.go", false},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(root, testCase.path)
			if got := rules.ShouldIgnore(path, ""); got != testCase.want {
				t.Fatalf("ShouldIgnore(%q) = %v, want %v", testCase.path, got, testCase.want)
			}
		})
	}
}

func TestShouldIgnoreOutputSelfExclusion(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	rules := LoadRules(root, zap.NewNop())

	outputPath := filepath.Join(root, "artifact.txt")
	if !rules.ShouldIgnore(outputPath, outputPath) {
		t.Fatal("the configured output file must always be ignored")
	}
	if rules.ShouldIgnore(filepath.Join(root, "other.txt"), outputPath) {
		t.Fatal("unrelated file must not be caught by the output guard")
	}
}
