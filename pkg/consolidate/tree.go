package consolidate

import (
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
)

// treeItem is one surviving entry of a directory listing.
type treeItem struct {
	name  string
	path  string
	isDir bool
}

// RenderTree produces the directory diagram as display lines, one per entry.
// It is a second walk, independent of the content traversal, so the tree
// reflects exactly what the ignore rules leave visible. The artifact itself
// is excluded by absolute-path comparison.
func RenderTree(cfg *Config, rules *RuleSet, logger *zap.Logger) []string {
	absOutput := ""
	if cfg.OutputPath != "" {
		if abs, err := filepath.Abs(cfg.OutputPath); err == nil {
			absOutput = abs
		}
	}
	return renderLevel(cfg.RootDir, "", absOutput, cfg, rules, logger)
}

func renderLevel(dir, prefix, absOutput string, cfg *Config, rules *RuleSet, logger *zap.Logger) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Warn("Cannot list directory for tree", zap.String("dir", dir), zap.Error(err))
		return nil
	}

	var items []treeItem
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if absOutput != "" {
			if abs, absErr := filepath.Abs(path); absErr == nil && abs == absOutput {
				continue
			}
		}
		if rules.ShouldIgnore(path, cfg.OutputPath) {
			continue
		}
		items = append(items, treeItem{name: entry.Name(), path: path, isDir: entry.IsDir()})
	}

	// Directories before files, case-sensitive alphabetical within each group.
	sort.Slice(items, func(i, j int) bool {
		if items[i].isDir != items[j].isDir {
			return items[i].isDir
		}
		return items[i].name < items[j].name
	})

	var lines []string
	for i, item := range items {
		connector := "├── "
		continuation := "│   "
		if i == len(items)-1 {
			connector = "└── "
			continuation = "    "
		}
		lines = append(lines, prefix+connector+item.name)
		if item.isDir {
			lines = append(lines, renderLevel(item.path, prefix+continuation, absOutput, cfg, rules, logger)...)
		}
	}
	return lines
}
