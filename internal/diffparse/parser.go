// Package diffparse turns raw git diff text and name-status listings into
// structured change records. Token extraction is regex-based and best-effort:
// it reads the text of changed lines, it does not parse the language.
package diffparse

import (
	"bufio"
	"strings"

	"github.com/forjex/forjex/internal/domain"
)

// ParseNameStatus parses a name-status listing, one "<STATUS>\t<path>" per
// line. Unknown status letters are skipped; duplicate paths keep the first
// entry seen.
func ParseNameStatus(text string) []domain.FileStatusEntry {
	var entries []domain.FileStatusEntry
	seen := make(map[string]bool)

	s := bufio.NewScanner(strings.NewReader(text))
	for s.Scan() {
		line := s.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		parts := strings.Split(line, "\t")
		if len(parts) < 2 {
			continue
		}

		var status domain.ChangeStatus
		switch {
		case strings.HasPrefix(parts[0], "A"):
			status = domain.StatusAdded
		case strings.HasPrefix(parts[0], "M"):
			status = domain.StatusModified
		case strings.HasPrefix(parts[0], "D"):
			status = domain.StatusDeleted
		default:
			continue
		}

		// Rejoin to tolerate embedded tabs in the path.
		path := strings.Join(parts[1:], "\t")
		if path == "" || seen[path] {
			continue
		}
		seen[path] = true

		entries = append(entries, domain.FileStatusEntry{Path: path, Status: status})
	}

	return entries
}

// ParseDiff scans unified diff text and builds one FileChangeSet per
// "+++ b/<path>" header. Added and removed lines between headers are
// attributed to the currently open set. Diffs without any "+++ b/" header
// yield no change sets.
func ParseDiff(text string) []*domain.FileChangeSet {
	var sets []*domain.FileChangeSet
	var current *domain.FileChangeSet

	s := bufio.NewScanner(strings.NewReader(text))
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for s.Scan() {
		line := s.Text()

		if strings.HasPrefix(line, "+++ b/") {
			current = domain.NewFileChangeSet(strings.TrimPrefix(line, "+++ b/"))
			sets = append(sets, current)
			continue
		}
		if current == nil {
			continue
		}
		if strings.HasPrefix(line, "+++") || strings.HasPrefix(line, "---") {
			continue
		}

		switch {
		case strings.HasPrefix(line, "+"):
			current.AddedLines++
			if tok, ok := matchAdded(line[1:]); ok {
				current.AddToken(tok)
			}
		case strings.HasPrefix(line, "-"):
			current.RemovedLines++
			if tok, ok := matchRemoved(line[1:]); ok {
				current.RemoveToken(tok)
			}
		}
	}

	return sets
}
