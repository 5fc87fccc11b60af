// Package classify maps structured change records to a conventional commit
// type and optional scope. Rules are an ordered priority list; the first
// matching rule decides the type.
package classify

import (
	"path/filepath"
	"strings"

	"github.com/forjex/forjex/internal/domain"
)

// changeFacts is the pre-computed input the type rules test against.
type changeFacts struct {
	entries []domain.FileStatusEntry
	sets    []*domain.FileChangeSet

	addedLines   int
	removedLines int
}

// typeRule pairs a predicate with the commit type it selects.
type typeRule struct {
	match func(*changeFacts) bool
	typ   domain.CommitType
}

// typeRules is evaluated top to bottom; order is the priority contract and
// is deliberately not commutative (a README change is docs even when the
// diff adds functions).
var typeRules = []typeRule{
	{anyPathMatches(isDocPath), domain.TypeDocs},
	{anyPathMatches(isTestPath), domain.TypeTest},
	{anyPathMatches(isStylePath), domain.TypeStyle},
	{anyPathMatches(isConfigPath), domain.TypeChore},
	{hasNewDeclarations, domain.TypeFeat},
	{looksLikeFix, domain.TypeFix},
	{looksLikeRefactor, domain.TypeRefactor},
}

// Classify derives the commit type and scope for a change set. It is a pure
// function of its inputs.
func Classify(entries []domain.FileStatusEntry, sets []*domain.FileChangeSet) domain.Classification {
	facts := &changeFacts{entries: entries, sets: sets}
	for _, set := range sets {
		facts.addedLines += set.AddedLines
		facts.removedLines += set.RemovedLines
	}

	typ := domain.TypeChore
	for _, rule := range typeRules {
		if rule.match(facts) {
			typ = rule.typ
			break
		}
	}

	return domain.Classification{Type: typ, Scope: dominantScope(entries, sets)}
}

func anyPathMatches(pred func(string) bool) func(*changeFacts) bool {
	return func(f *changeFacts) bool {
		for _, p := range f.paths() {
			if pred(p) {
				return true
			}
		}
		return false
	}
}

// paths returns every touched path, status entries first, then diff-only
// paths, preserving first-seen order.
func (f *changeFacts) paths() []string {
	var paths []string
	seen := make(map[string]bool)
	for _, e := range f.entries {
		if !seen[e.Path] {
			seen[e.Path] = true
			paths = append(paths, e.Path)
		}
	}
	for _, s := range f.sets {
		if !seen[s.Path] {
			seen[s.Path] = true
			paths = append(paths, s.Path)
		}
	}
	return paths
}

func isDocPath(path string) bool {
	lower := strings.ToLower(path)
	return strings.Contains(lower, "readme") || strings.HasSuffix(lower, ".md")
}

func isTestPath(path string) bool {
	lower := strings.ToLower(path)
	return strings.Contains(lower, "test") || strings.Contains(lower, ".spec.")
}

func isStylePath(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".css") || strings.HasSuffix(lower, ".scss") ||
		strings.Contains(lower, "style")
}

func isConfigPath(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, "package.json") || strings.Contains(lower, "config")
}

// hasNewDeclarations reports whether the diff introduces a function, class
// or component, or the listing carries any added file.
func hasNewDeclarations(f *changeFacts) bool {
	for _, set := range f.sets {
		for _, tok := range set.Added {
			switch tok.Kind {
			case domain.TokenFunction, domain.TokenClass, domain.TokenComponent:
				return true
			}
		}
	}
	for _, e := range f.entries {
		if e.Status == domain.StatusAdded {
			return true
		}
	}
	return false
}

func looksLikeFix(f *changeFacts) bool {
	for _, p := range f.paths() {
		lower := strings.ToLower(p)
		if strings.Contains(lower, "fix") || strings.Contains(lower, "bug") {
			return true
		}
	}
	return f.addedLines > 0 && f.removedLines > f.addedLines
}

func looksLikeRefactor(f *changeFacts) bool {
	return f.removedLines > 2*f.addedLines
}

// dominantScope returns the parent-directory segment shared by at least half
// of the touched files. Ties at exactly half go to the directory seen first
// in file order; files at the repository root never contribute a scope.
func dominantScope(entries []domain.FileStatusEntry, sets []*domain.FileChangeSet) string {
	facts := &changeFacts{entries: entries, sets: sets}
	paths := facts.paths()
	if len(paths) == 0 {
		return ""
	}

	counts := make(map[string]int)
	var order []string
	for _, p := range paths {
		dir := filepath.Dir(p)
		if dir == "." || dir == "/" {
			continue
		}
		segment := filepath.Base(dir)
		if counts[segment] == 0 {
			order = append(order, segment)
		}
		counts[segment]++
	}

	for _, segment := range order {
		if counts[segment]*2 >= len(paths) {
			return segment
		}
	}
	return ""
}
