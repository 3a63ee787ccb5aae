package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"sort"

	"fortio.org/safecast"
)

// FileSet owns every source file of one compilation and resolves spans back
// to paths and line/column positions. Files are registered once and never
// mutated afterwards.
type FileSet struct {
	files []File
	index map[string]FileID
}

func NewFileSet() *FileSet {
	return &FileSet{index: make(map[string]FileID)}
}

// Add registers already-normalized content under path. Registering a path
// twice creates a second file; the index keeps pointing at the newest one.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	n, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("file count overflow: %w", err))
	}
	id := FileID(n)
	clean := normalizePath(path)
	fs.files = append(fs.files, File{
		ID:      id,
		Path:    clean,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	fs.index[clean] = id
	return id
}

// AddVirtual registers in-memory content, applying the same normalization
// Load applies to disk files.
func (fs *FileSet) AddVirtual(path string, content []byte) FileID {
	content, _ = removeBOM(content)
	content, _ = normalizeCRLF(content)
	return fs.Add(path, content, FileVirtual)
}

// Load reads path from disk, strips a BOM, normalizes line endings and
// registers the result, recording in the flags what was rewritten.
func (fs *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	var flags FileFlags
	if stripped, had := removeBOM(content); had {
		content = stripped
		flags |= FileHadBOM
	}
	if normalized, had := normalizeCRLF(content); had {
		content = normalized
		flags |= FileNormalizedCRLF
	}
	return fs.Add(path, content, flags), nil
}

// Get returns the file for id, or nil when id was never issued.
func (fs *FileSet) Get(id FileID) *File {
	if int(id) >= len(fs.files) {
		return nil
	}
	return &fs.files[id]
}

// Lookup resolves a path to the newest FileID registered under it.
func (fs *FileSet) Lookup(path string) (FileID, bool) {
	id, ok := fs.index[normalizePath(path)]
	return id, ok
}

func (fs *FileSet) Len() int { return len(fs.files) }

// Position resolves the start of sp to a path-qualified line/column pair.
// Unknown files resolve to an empty path at 1:1 so rendering never panics.
func (fs *FileSet) Position(sp Span) (path string, lc LineCol) {
	f := fs.Get(sp.File)
	if f == nil {
		return "", LineCol{Line: 1, Col: 1}
	}
	return f.Path, toLineCol(f.LineIdx, sp.Start)
}

// LineText returns the text of the line containing off, without its newline.
// The diagnostic renderer prints it under the position header.
func (fs *FileSet) LineText(file FileID, off uint32) string {
	f := fs.Get(file)
	if f == nil {
		return ""
	}
	next := sort.Search(len(f.LineIdx), func(i int) bool {
		return f.LineIdx[i] >= off
	})
	start := uint32(0)
	if next > 0 {
		start = f.LineIdx[next-1] + 1
	}
	end := uint32(len(f.Content))
	if next < len(f.LineIdx) {
		end = f.LineIdx[next]
	}
	if start > end {
		return ""
	}
	return string(f.Content[start:end])
}
