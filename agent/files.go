package agent

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/kardolus/taskpilot/internal/fsio"
)

const (
	searchMaxResults      = 100
	searchMaxContentFiles = 50
	searchMaxLinesPerFile = 5
	searchMaxLineLen      = 100
)

// skippedDirs are never descended into by SearchFiles.
var skippedDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
}

//go:generate mockgen -destination=filemocks_test.go -package=agent_test github.com/kardolus/taskpilot/agent Files
type Files interface {
	ReadFile(path string) ToolResult
	WriteFile(path, content string) ToolResult
	CreateFile(path, content string) ToolResult
	CreateDirectory(path string) ToolResult
	DeleteFile(path string) ToolResult
	ListDirectory(path string) ToolResult
	SearchFiles(pattern, content string) ToolResult
}

// FileManager performs workspace filesystem operations. Relative paths are
// resolved against root.
type FileManager struct {
	root string
	r    fsio.Reader
	w    fsio.Writer
}

func NewFileManager(root string, r fsio.Reader, w fsio.Writer) *FileManager {
	return &FileManager{root: root, r: r, w: w}
}

func (f *FileManager) ReadFile(path string) ToolResult {
	b, err := f.r.ReadFile(f.resolve(path))
	if err != nil {
		return failf("Failed to read file: %v", err)
	}
	return succeed(fmt.Sprintf("Read %d bytes from %s", len(b), path), string(b))
}

func (f *FileManager) WriteFile(path, content string) ToolResult {
	abs := f.resolve(path)

	var previous *string
	if b, err := f.r.ReadFile(abs); err == nil {
		s := string(b)
		previous = &s
	}

	if err := f.write(abs, content); err != nil {
		return failf("Failed to write file: %v", err)
	}

	out := fmt.Sprintf("Wrote %d bytes to %s", len(content), path)
	if previous != nil {
		added, removed := diffStats(*previous, content)
		out += fmt.Sprintf(" (+%d/-%d chars)", added, removed)
	}
	return succeed(out, nil)
}

func (f *FileManager) CreateFile(path, content string) ToolResult {
	abs := f.resolve(path)

	if _, err := f.r.Stat(abs); err == nil {
		return failf("File already exists: %s", path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return failf("Failed to create file: %v", err)
	}

	if err := f.write(abs, content); err != nil {
		return failf("Failed to create file: %v", err)
	}
	return succeed(fmt.Sprintf("Created file: %s", path), nil)
}

func (f *FileManager) CreateDirectory(path string) ToolResult {
	abs := f.resolve(path)

	if info, err := f.r.Stat(abs); err == nil {
		if info.IsDir() {
			return failf("Directory already exists: %s", path)
		}
		return failf("Path exists but is not a directory: %s", path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return failf("Failed to create directory: %v", err)
	}

	if err := f.w.MkdirAll(abs, 0o755); err != nil {
		return failf("Failed to create directory: %v", err)
	}
	return succeed(fmt.Sprintf("Created directory: %s", path), nil)
}

func (f *FileManager) DeleteFile(path string) ToolResult {
	if err := f.w.Remove(f.resolve(path)); err != nil {
		return failf("Failed to delete file: %v", err)
	}
	return succeed(fmt.Sprintf("Deleted file: %s", path), nil)
}

func (f *FileManager) ListDirectory(path string) ToolResult {
	if strings.TrimSpace(path) == "" {
		path = "."
	}
	abs := f.resolve(path)

	info, err := f.r.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return failf("Directory does not exist: %s", path)
		}
		return failf("Failed to list directory: %v", err)
	}
	if !info.IsDir() {
		return failf("Failed to list directory: not a directory: %s", path)
	}

	entries, err := f.r.ReadDir(abs)
	if err != nil {
		return failf("Failed to list directory: %v", err)
	}

	items := make([]DirEntry, 0, len(entries))
	for _, e := range entries {
		kind := "file"
		if e.IsDir() {
			kind = "directory"
		}
		items = append(items, DirEntry{
			Name: e.Name(),
			Type: kind,
			Path: filepath.ToSlash(filepath.Join(path, e.Name())),
		})
	}

	return succeed(fmt.Sprintf("Listed %d items in %s", len(items), path), items)
}

// SearchFiles finds files whose workspace-relative, slash-separated path
// matches the doublestar glob pattern. A pattern without a slash only matches
// files in the workspace root; use "**/" to search the whole tree. With
// content set, it instead reports which of the first matches contain that
// text, with a few matching lines each.
func (f *FileManager) SearchFiles(pattern, content string) ToolResult {
	glob, err := searchPattern(pattern)
	if err != nil {
		return failf("Search failed: %v", err)
	}

	files, err := f.findFiles(glob)
	if err != nil {
		return failf("Search failed: %v", err)
	}

	if content == "" {
		results := make([]SearchMatch, 0, len(files))
		for _, rel := range files {
			results = append(results, SearchMatch{Path: rel})
		}
		return succeed(fmt.Sprintf("Found %d files matching %q", len(results), pattern), results)
	}

	if len(files) > searchMaxContentFiles {
		files = files[:searchMaxContentFiles]
	}

	matching := make([]SearchMatch, 0)
	for _, rel := range files {
		b, err := f.r.ReadFile(f.resolve(rel))
		if err != nil {
			continue
		}
		text := string(b)
		if !strings.Contains(text, content) {
			continue
		}

		var lines []string
		for i, line := range strings.Split(text, "\n") {
			if !strings.Contains(line, content) {
				continue
			}
			lines = append(lines, fmt.Sprintf("Line %d: %s", i+1, truncate(strings.TrimSpace(line), searchMaxLineLen)))
			if len(lines) == searchMaxLinesPerFile {
				break
			}
		}
		matching = append(matching, SearchMatch{Path: rel, Matches: lines})
	}

	return succeed(fmt.Sprintf("Found %d files containing %q", len(matching), content), matching)
}

func (f *FileManager) findFiles(glob string) ([]string, error) {
	root := f.resolve(".")
	ignored := f.ignoreRules(root)

	var out []string
	errDone := errors.New("done")

	err := f.r.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			// unreadable entries are skipped, not fatal
			if d != nil && d.IsDir() && p != root {
				return fs.SkipDir
			}
			return nil
		}
		if p == root {
			return nil
		}

		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if skippedDirs[d.Name()] || (ignored != nil && ignored.MatchesPath(rel+"/")) {
				return fs.SkipDir
			}
			return nil
		}
		if ignored != nil && ignored.MatchesPath(rel) {
			return nil
		}

		if ok, _ := doublestar.Match(glob, rel); ok {
			out = append(out, rel)
			if len(out) >= searchMaxResults {
				return errDone
			}
		}
		return nil
	})
	if err != nil && !errors.Is(err, errDone) {
		return nil, err
	}
	return out, nil
}

func searchPattern(pattern string) (string, error) {
	pattern = strings.TrimPrefix(strings.TrimSpace(pattern), "./")
	if pattern == "" {
		return "", errors.New("empty pattern")
	}
	if !doublestar.ValidatePattern(pattern) {
		return "", fmt.Errorf("invalid pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}
	return pattern, nil
}

func (f *FileManager) ignoreRules(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}

func (f *FileManager) write(abs, content string) error {
	if err := f.w.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return err
	}

	file, err := f.w.Create(abs)
	if err != nil {
		return err
	}

	defer func() {
		_ = file.Close()
	}()

	if err := f.w.Write(file, []byte(content)); err != nil {
		return err
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", abs, err)
	}

	return nil
}

func (f *FileManager) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(f.root, path)
}

func diffStats(before, after string) (added, removed int) {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, false)
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			added += len([]rune(d.Text))
		case diffmatchpatch.DiffDelete:
			removed += len([]rune(d.Text))
		}
	}
	return added, removed
}

