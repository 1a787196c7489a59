package tui

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/tuannvm/canvasflow/internal/graph"
)

// documentDirs are searched for saved workflow documents besides the
// current directory.
var documentDirs = []string{"workflows", "examples"}

// maxRecentDocuments caps the launcher's recent list.
const maxRecentDocuments = 10

type recentDocument struct {
	path    string
	modTime time.Time
}

// DiscoverDocuments returns up to maxRecentDocuments workflow documents
// from the current directory and documentDirs, most recently modified
// first. Files that do not load as documents are skipped.
func DiscoverDocuments() []string {
	var found []recentDocument
	for _, dir := range append([]string{"."}, documentDirs...) {
		matches, _ := filepath.Glob(filepath.Join(dir, "*.json"))
		for _, m := range matches {
			info, err := os.Stat(m)
			if err != nil || info.IsDir() {
				continue
			}
			if _, err := graph.Load(m); err != nil {
				continue
			}
			found = append(found, recentDocument{path: m, modTime: info.ModTime()})
		}
	}

	slices.SortFunc(found, func(a, b recentDocument) int {
		if c := b.modTime.Compare(a.modTime); c != 0 {
			return c
		}
		return strings.Compare(a.path, b.path)
	})

	paths := make([]string, 0, min(len(found), maxRecentDocuments))
	for _, d := range found[:min(len(found), maxRecentDocuments)] {
		paths = append(paths, d.path)
	}
	return paths
}

// IsDocumentPath checks if path has the document extension
func IsDocumentPath(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".json"
}

// FileExists checks if a file exists and is not a directory
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
