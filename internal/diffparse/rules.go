package diffparse

import (
	"regexp"
	"strings"

	"github.com/forjex/forjex/internal/domain"
)

// minGenericLength is the shortest trimmed line still worth counting as
// generic content; anything shorter is treated as noise.
const minGenericLength = 12

// tokenRule pairs a line pattern with the token kind it produces. The first
// capture group, when present, becomes the token name.
type tokenRule struct {
	re   *regexp.Regexp
	kind domain.TokenKind
}

// addedRules are evaluated top to bottom against each added line; the first
// match wins and a line yields at most one token. Order encodes priority.
var addedRules = []tokenRule{
	// function declarations
	{regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?(?:async\s+)?function\s+([A-Za-z_$][\w$]*)`), domain.TokenFunction},
	// arrow functions bound to a name
	{regexp.MustCompile(`^\s*(?:export\s+)?(?:const|let|var)\s+([A-Za-z_$][\w$]*)\s*=.*=>`), domain.TokenFunction},
	// class and interface declarations
	{regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?(?:abstract\s+)?(?:class|interface)\s+([A-Za-z_$][\w$]*)`), domain.TokenClass},
	// named imports
	{regexp.MustCompile(`^\s*import\s+(?:\{\s*)?([A-Za-z_$][\w$]*)`), domain.TokenImport},
	// named exports not caught by the declaration rules above
	{regexp.MustCompile(`^\s*export\s+(?:default\s+)?(?:\{\s*)?(?:const\s+|let\s+|var\s+|type\s+)?([A-Za-z_$][\w$]*)`), domain.TokenExport},
	// tags starting with an uppercase letter look like components
	{regexp.MustCompile(`<([A-Z][\w]*)`), domain.TokenComponent},
	// state/effect hook calls
	{regexp.MustCompile(`\b(use[A-Z]\w*)\s*\(`), domain.TokenFunction},
}

// removedRules is the reduced set applied to removed lines.
var removedRules = []tokenRule{
	{regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?(?:async\s+)?function\s+([A-Za-z_$][\w$]*)`), domain.TokenFunction},
	{regexp.MustCompile(`^\s*(?:export\s+)?(?:const|let|var)\s+([A-Za-z_$][\w$]*)`), domain.TokenFunction},
}

func matchAdded(content string) (domain.ChangeToken, bool) {
	return matchRules(addedRules, content)
}

func matchRemoved(content string) (domain.ChangeToken, bool) {
	return matchRules(removedRules, content)
}

func matchRules(rules []tokenRule, content string) (domain.ChangeToken, bool) {
	for _, r := range rules {
		if m := r.re.FindStringSubmatch(content); m != nil {
			return domain.ChangeToken{Kind: r.kind, Name: m[1]}, true
		}
	}

	trimmed := strings.TrimSpace(content)
	if len(trimmed) >= minGenericLength && !isComment(trimmed) {
		return domain.ChangeToken{Kind: domain.TokenGeneric}, true
	}

	return domain.ChangeToken{}, false
}

func isComment(trimmed string) bool {
	for _, prefix := range []string{"//", "/*", "*", "#", "<!--"} {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}
