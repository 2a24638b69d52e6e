package consolidate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"llmpack/pkg/consolidate"

	"go.uber.org/zap"
)

func writeTestFile(t *testing.T, root, rel string, content []byte) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

func TestRunProducesArtifactSections(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTestFile(t, root, "a.py", []byte("print(1)"))
	writeTestFile(t, root, "b.png", []byte{0x89, 'P', 'N', 'G'})
	outputPath := filepath.Join(root, "artifact.txt")

	summary, err := consolidate.Run(consolidate.Config{
		RootDir:     root,
		OutputPath:  outputPath,
		MaxFileSize: consolidate.DefaultMaxFileSize,
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if summary.FilesIncluded != 1 || summary.BinaryFound != 1 {
		t.Fatalf("summary = %+v, want 1 included and 1 binary", summary)
	}
	if summary.BytesWritten != int64(len("print(1)")) {
		t.Fatalf("BytesWritten = %d, want %d", summary.BytesWritten, len("print(1)"))
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	artifact := string(data)

	if !strings.Contains(artifact, "## FILE: a.py\n\nprint(1)\n\n") {
		t.Fatalf("artifact missing a.py block:\n%s", artifact)
	}
	if !strings.Contains(artifact, "## BINARY/MEDIA FILES FOUND") {
		t.Fatal("artifact missing binary manifest section")
	}
	if !strings.Contains(artifact, "- "+filepath.Join(root, "b.png")) {
		t.Fatal("binary manifest missing b.png entry")
	}
	if !strings.Contains(artifact, "## DIRECTORY TREE\n\n"+filepath.Base(root)+"\n") {
		t.Fatal("artifact missing directory tree section")
	}
	// The artifact never lists itself, in content or tree.
	if strings.Count(artifact, "artifact.txt") != 0 {
		t.Fatal("artifact must not include or list itself")
	}
}

func TestRunBinaryManifestSorted(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTestFile(t, root, "z.png", []byte{0x00})
	writeTestFile(t, root, "a.png", []byte{0x00})
	writeTestFile(t, root, "m.jpg", []byte{0x00})
	outputPath := filepath.Join(t.TempDir(), "out.txt")

	_, err := consolidate.Run(consolidate.Config{RootDir: root, OutputPath: outputPath}, zap.NewNop())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	data, _ := os.ReadFile(outputPath)
	artifact := string(data)
	posA := strings.Index(artifact, "a.png")
	posM := strings.Index(artifact, "m.jpg")
	posZ := strings.Index(artifact, "z.png")
	if !(posA >= 0 && posA < posM && posM < posZ) {
		t.Fatalf("manifest not lexically sorted: a=%d m=%d z=%d", posA, posM, posZ)
	}
}

func TestRunExtensionFilterSilentExclusion(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTestFile(t, root, "x.py", []byte("print(1)\n"))
	writeTestFile(t, root, "y.go", []byte("package y\n"))
	outputPath := filepath.Join(t.TempDir(), "out.txt")

	summary, err := consolidate.Run(consolidate.Config{
		RootDir:    root,
		OutputPath: outputPath,
		Extensions: map[string]bool{".go": true},
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if summary.FilesIncluded != 1 || summary.BinaryFound != 0 {
		t.Fatalf("summary = %+v, want only y.go included", summary)
	}

	data, _ := os.ReadFile(outputPath)
	artifact := string(data)
	if !strings.Contains(artifact, "## FILE: y.go") {
		t.Fatal("y.go block missing")
	}
	if strings.Contains(artifact, "## FILE: x.py") || strings.Contains(artifact, "## BINARY") {
		t.Fatal("x.py must be excluded silently, not included or cataloged")
	}
}

func TestRunDeterministicAcrossInvocations(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTestFile(t, root, "a.py", []byte("print(1)\n"))
	writeTestFile(t, root, "sub/b.py", []byte("print(2)\n"))
	writeTestFile(t, root, "img.png", []byte{0x00, 0x01})

	outDir := t.TempDir()
	firstPath := filepath.Join(outDir, "first.txt")
	secondPath := filepath.Join(outDir, "second.txt")

	logger := zap.NewNop()
	if _, err := consolidate.Run(consolidate.Config{RootDir: root, OutputPath: firstPath}, logger); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	if _, err := consolidate.Run(consolidate.Config{RootDir: root, OutputPath: secondPath}, logger); err != nil {
		t.Fatalf("second Run: %v", err)
	}

	first, _ := os.ReadFile(firstPath)
	second, _ := os.ReadFile(secondPath)
	if string(first) != string(second) {
		t.Fatal("identical trees must produce byte-identical artifacts")
	}
}

func TestRunRejectsInvalidRoot(t *testing.T) {
	t.Parallel()

	_, err := consolidate.Run(consolidate.Config{
		RootDir:    filepath.Join(t.TempDir(), "does-not-exist"),
		OutputPath: filepath.Join(t.TempDir(), "out.txt"),
	}, zap.NewNop())
	if err == nil {
		t.Fatal("Run must fail on a non-existent root")
	}
}

func TestDefaultOutputName(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	got := consolidate.DefaultOutputName("/repo/myproj", now)
	if got != "myproj_llm_2026-08-25.txt" {
		t.Fatalf("DefaultOutputName = %q", got)
	}
}
