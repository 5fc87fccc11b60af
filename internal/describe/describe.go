// Package describe turns classified change records into the short,
// imperative description clause of a commit message.
package describe

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/forjex/forjex/internal/domain"
)

// fallbackDescription is used when no clause applies at all.
const fallbackDescription = "update code"

// maxNamedTokens caps how many token names are spelled out in a clause.
const maxNamedTokens = 2

// Describe builds a lower-case, period-free description for the change set.
// Clauses are tried in priority order: component, class, function and import
// tokens first, then a file-count fallback. A secondary clause reports
// removed functions.
func Describe(entries []domain.FileStatusEntry, sets []*domain.FileChangeSet) string {
	primary := primaryClause(entries, sets)
	secondary := removedFunctionsClause(sets)

	switch {
	case primary == "" && secondary == "":
		return fallbackDescription
	case primary == "":
		return secondary
	case secondary == "":
		return primary
	default:
		return primary + " and " + secondary
	}
}

func primaryClause(entries []domain.FileStatusEntry, sets []*domain.FileChangeSet) string {
	for _, candidate := range []struct {
		kind domain.TokenKind
		noun string
	}{
		{domain.TokenComponent, "component"},
		{domain.TokenClass, "class"},
		{domain.TokenFunction, "function"},
		{domain.TokenImport, "import"},
	} {
		names := addedNames(sets, candidate.kind)
		if len(names) == 0 {
			continue
		}
		clause := "add " + joinNames(names) + " " + pluralize(candidate.noun, len(names))
		if stem := singleFileStem(entries, sets); stem != "" {
			clause += " to " + stem
		}
		return clause
	}

	return fileCountClause(entries)
}

// addedNames collects distinct non-empty names of added tokens of one kind,
// in extraction order.
func addedNames(sets []*domain.FileChangeSet, kind domain.TokenKind) []string {
	var names []string
	seen := make(map[string]bool)
	for _, set := range sets {
		for _, tok := range set.Added {
			if tok.Kind != kind || tok.Name == "" || seen[tok.Name] {
				continue
			}
			seen[tok.Name] = true
			names = append(names, tok.Name)
		}
	}
	return names
}

func joinNames(names []string) string {
	if len(names) > maxNamedTokens {
		names = names[:maxNamedTokens]
	}
	return strings.Join(names, " and ")
}

func pluralize(noun string, n int) string {
	if n > maxNamedTokens {
		n = maxNamedTokens
	}
	if n > 1 {
		if strings.HasSuffix(noun, "s") {
			return noun + "es"
		}
		return noun + "s"
	}
	return noun
}

// singleFileStem returns the extension-free base name when exactly one file
// is touched, so clauses can read "add foo function to utils".
func singleFileStem(entries []domain.FileStatusEntry, sets []*domain.FileChangeSet) string {
	paths := make(map[string]bool)
	for _, e := range entries {
		paths[e.Path] = true
	}
	for _, s := range sets {
		paths[s.Path] = true
	}
	if len(paths) != 1 {
		return ""
	}
	for path := range paths {
		return fileStem(path)
	}
	return ""
}

func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// fileCountClause describes the change purely from the status listing.
func fileCountClause(entries []domain.FileStatusEntry) string {
	if len(entries) == 0 {
		return ""
	}

	byStatus := make(map[domain.ChangeStatus][]domain.FileStatusEntry)
	var statusOrder []domain.ChangeStatus
	for _, e := range entries {
		if _, ok := byStatus[e.Status]; !ok {
			statusOrder = append(statusOrder, e.Status)
		}
		byStatus[e.Status] = append(byStatus[e.Status], e)
	}

	verbs := map[domain.ChangeStatus]string{
		domain.StatusAdded:    "add",
		domain.StatusModified: "update",
		domain.StatusDeleted:  "remove",
	}

	var clauses []string
	for _, status := range statusOrder {
		group := byStatus[status]
		if len(entries) == 1 {
			clauses = append(clauses, verbs[status]+" "+fileStem(group[0].Path))
			continue
		}
		clauses = append(clauses, fmt.Sprintf("%s %d %s", verbs[status], len(group), pluralizeFiles(len(group))))
	}

	return strings.Join(clauses, " and ")
}

func pluralizeFiles(n int) string {
	if n == 1 {
		return "file"
	}
	return "files"
}

func removedFunctionsClause(sets []*domain.FileChangeSet) string {
	count := 0
	for _, set := range sets {
		for _, tok := range set.Removed {
			if tok.Kind == domain.TokenFunction {
				count++
			}
		}
	}
	if count == 0 {
		return ""
	}
	return fmt.Sprintf("remove %d %s", count, pluralizeFunctions(count))
}

func pluralizeFunctions(n int) string {
	if n == 1 {
		return "function"
	}
	return "functions"
}
