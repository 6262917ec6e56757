// Package loader reads schema source from disk.
//
// A schema is either a single file or a directory of files. Directory
// contents are concatenated in lexical path order, and Source keeps enough
// bookkeeping to map a line of the combined text back to its file.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultExtension is the schema file extension used when walking directories
const DefaultExtension = ".cfg"

// DefaultIgnoreDirs are common directories to skip during traversal
var DefaultIgnoreDirs = []string{
	"node_modules", "vendor", ".git", ".svn", ".hg",
	"dist", "build", "bin", "tmp", "temp",
	".idea", ".vscode", ".vs",
}

// Options configures how a schema directory is walked
type Options struct {
	Extension     string   // File extension to collect (default: DefaultExtension)
	IgnoreDirs    []string // Directories to skip (default: DefaultIgnoreDirs)
	IncludeHidden bool     // Include hidden files/dirs (default: false)
}

// File is one file contributing to a Source
type File struct {
	Path      string // Path as found on disk
	StartLine int    // 1-based line in Source.Text where this file begins
	Lines     int    // Number of lines contributed
}

// Source is schema text ready for parsing
type Source struct {
	Text  string
	Files []File
}

// Load reads a schema file or directory with default options
func Load(path string) (*Source, error) {
	return LoadWithOptions(path, Options{})
}

// LoadWithOptions reads a schema file or directory
func LoadWithOptions(path string, opts Options) (*Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat schema path: %w", err)
	}

	if !info.IsDir() {
		return loadFiles([]string{path})
	}

	paths, err := collect(path, opts)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		ext := opts.Extension
		if ext == "" {
			ext = DefaultExtension
		}
		return nil, fmt.Errorf("no %s schema files found in %s", ext, path)
	}
	return loadFiles(paths)
}

// FromString wraps in-memory text as a single-file Source
func FromString(name, text string) *Source {
	return &Source{
		Text:  text,
		Files: []File{{Path: name, StartLine: 1, Lines: countLines(text)}},
	}
}

// Locate maps a line of Text back to the file it came from and the line
// within that file. It returns ok == false for lines outside every file.
func (s *Source) Locate(line int) (path string, local int, ok bool) {
	for _, f := range s.Files {
		if line >= f.StartLine && line < f.StartLine+f.Lines {
			return f.Path, line - f.StartLine + 1, true
		}
	}
	return "", 0, false
}

// Position formats a line of Text as "path:line", falling back to "line N"
func (s *Source) Position(line int) string {
	if path, local, ok := s.Locate(line); ok {
		return fmt.Sprintf("%s:%d", path, local)
	}
	return fmt.Sprintf("line %d", line)
}

func collect(root string, opts Options) ([]string, error) {
	ext := opts.Extension
	if ext == "" {
		ext = DefaultExtension
	}
	ignoreDirs := opts.IgnoreDirs
	if len(ignoreDirs) == 0 {
		ignoreDirs = DefaultIgnoreDirs
	}

	var paths []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		// Skip hidden files/directories unless explicitly included
		if !opts.IncludeHidden && strings.HasPrefix(info.Name(), ".") && path != root {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() {
			for _, ignore := range ignoreDirs {
				if info.Name() == ignore && path != root {
					return filepath.SkipDir
				}
			}
			return nil
		}

		if filepath.Ext(info.Name()) == ext {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk schema directory: %w", err)
	}

	sort.Strings(paths)
	return paths, nil
}

func loadFiles(paths []string) (*Source, error) {
	src := &Source{}
	var b strings.Builder
	next := 1

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read schema file: %w", err)
		}

		text := strings.ReplaceAll(string(data), "\r\n", "\n")
		if text != "" && !strings.HasSuffix(text, "\n") {
			text += "\n"
		}

		lines := countLines(text)
		src.Files = append(src.Files, File{Path: path, StartLine: next, Lines: lines})
		next += lines
		b.WriteString(text)
	}

	src.Text = b.String()
	return src, nil
}

// countLines counts newline-terminated lines, plus a final unterminated one
func countLines(text string) int {
	n := strings.Count(text, "\n")
	if text != "" && !strings.HasSuffix(text, "\n") {
		n++
	}
	return n
}
