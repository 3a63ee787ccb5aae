package source

// FileID names one file inside a FileSet. IDs are dense and assigned in
// registration order.
type FileID uint32

// FileFlags records what normalization happened when a file was read.
type FileFlags uint8

const (
	// FileVirtual marks in-memory input (tests, stdin).
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM marks input that arrived with a UTF-8 byte order mark.
	FileHadBOM
	// FileNormalizedCRLF marks input whose \r\n pairs were rewritten to \n.
	FileNormalizedCRLF
)

// File is one registered source file: normalized content plus the newline
// index used to resolve byte offsets into line/column pairs.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a 1-based human-readable position.
type LineCol struct {
	Line uint32
	Col  uint32
}
