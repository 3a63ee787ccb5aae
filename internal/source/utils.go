package source

import (
	"bytes"
	"path/filepath"
	"sort"
)

var crlf = []byte("\r\n")

// normalizeCRLF rewrites every \r\n pair to \n. A lone \r is content, not a
// line break, and stays as is. The flag reports whether anything changed.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !bytes.Contains(content, crlf) {
		return content, false
	}
	return bytes.ReplaceAll(content, crlf, crlf[1:]), true
}

var bom = []byte{0xEF, 0xBB, 0xBF}

func removeBOM(content []byte) ([]byte, bool) {
	if bytes.HasPrefix(content, bom) {
		return content[len(bom):], true
	}
	return content, false
}

// buildLineIndex records the byte offset of every \n. Offsets resolve to
// line/column pairs by binary search over this index.
func buildLineIndex(content []byte) []uint32 {
	idx := make([]uint32, 0, 64)
	base := 0
	for {
		nl := bytes.IndexByte(content[base:], '\n')
		if nl < 0 {
			return idx
		}
		idx = append(idx, uint32(base+nl))
		base += nl + 1
	}
}

// toLineCol maps a byte offset to its 1-based line/column. A newline belongs
// to the line it terminates, so only newlines strictly before off count.
func toLineCol(lineIdx []uint32, off uint32) LineCol {
	line := sort.Search(len(lineIdx), func(i int) bool {
		return lineIdx[i] >= off
	})
	if line == 0 {
		return LineCol{Line: 1, Col: off + 1}
	}
	lineStart := lineIdx[line-1] + 1
	return LineCol{Line: uint32(line) + 1, Col: off - lineStart + 1}
}

// normalizePath gives every path one canonical, slash-separated shape so the
// FileSet index and rendered diagnostics agree across platforms.
func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}
