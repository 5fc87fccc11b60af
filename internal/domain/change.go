package domain

// ChangeStatus is the per-file status letter from a name-status listing
type ChangeStatus string

const (
	StatusAdded    ChangeStatus = "A"
	StatusModified ChangeStatus = "M"
	StatusDeleted  ChangeStatus = "D"
)

// FileStatusEntry is one file from a git name-status listing
type FileStatusEntry struct {
	Path   string
	Status ChangeStatus
}

// TokenKind classifies what a changed diff line appears to declare
type TokenKind string

const (
	TokenFunction  TokenKind = "function"
	TokenClass     TokenKind = "class"
	TokenComponent TokenKind = "component"
	TokenImport    TokenKind = "import"
	TokenExport    TokenKind = "export"
	TokenGeneric   TokenKind = "generic"
)

// ChangeToken is a heuristic signal extracted from a single added or
// removed diff line. Name is best-effort and may be empty for generic
// content.
type ChangeToken struct {
	Kind TokenKind
	Name string
}

// FileChangeSet accumulates tokens and line counts for one file while
// scanning a diff. Tokens are deduplicated by kind+name.
type FileChangeSet struct {
	Path         string
	Added        []ChangeToken
	Removed      []ChangeToken
	AddedLines   int
	RemovedLines int

	addedSeen   map[ChangeToken]bool
	removedSeen map[ChangeToken]bool
}

// NewFileChangeSet creates an empty change set for path
func NewFileChangeSet(path string) *FileChangeSet {
	return &FileChangeSet{
		Path:        path,
		addedSeen:   make(map[ChangeToken]bool),
		removedSeen: make(map[ChangeToken]bool),
	}
}

// AddToken records a token from an added line, skipping duplicates
func (s *FileChangeSet) AddToken(t ChangeToken) {
	if s.addedSeen[t] {
		return
	}
	s.addedSeen[t] = true
	s.Added = append(s.Added, t)
}

// RemoveToken records a token from a removed line, skipping duplicates
func (s *FileChangeSet) RemoveToken(t ChangeToken) {
	if s.removedSeen[t] {
		return
	}
	s.removedSeen[t] = true
	s.Removed = append(s.Removed, t)
}
