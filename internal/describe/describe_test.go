package describe

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/forjex/forjex/internal/domain"
)

func entry(path string, status domain.ChangeStatus) domain.FileStatusEntry {
	return domain.FileStatusEntry{Path: path, Status: status}
}

func setWith(path string, added ...domain.ChangeToken) *domain.FileChangeSet {
	s := domain.NewFileChangeSet(path)
	for _, tok := range added {
		s.AddToken(tok)
	}
	return s
}

func TestComponentClauseWinsOverFunctions(t *testing.T) {
	sets := []*domain.FileChangeSet{setWith("src/App.tsx",
		domain.ChangeToken{Kind: domain.TokenComponent, Name: "Navbar"},
		domain.ChangeToken{Kind: domain.TokenFunction, Name: "helper"},
	)}
	entries := []domain.FileStatusEntry{
		entry("src/App.tsx", domain.StatusModified),
		entry("src/index.ts", domain.StatusModified),
	}

	assert.Equal(t, "add Navbar component", Describe(entries, sets))
}

func TestTwoComponentNames(t *testing.T) {
	sets := []*domain.FileChangeSet{
		setWith("src/a.tsx", domain.ChangeToken{Kind: domain.TokenComponent, Name: "Navbar"}),
		setWith("src/b.tsx", domain.ChangeToken{Kind: domain.TokenComponent, Name: "Footer"}),
	}

	assert.Equal(t, "add Navbar and Footer components", Describe(nil, sets))
}

func TestNamesCappedAtTwo(t *testing.T) {
	sets := []*domain.FileChangeSet{setWith("src/a.tsx",
		domain.ChangeToken{Kind: domain.TokenComponent, Name: "A"},
		domain.ChangeToken{Kind: domain.TokenComponent, Name: "B"},
		domain.ChangeToken{Kind: domain.TokenComponent, Name: "C"},
	)}
	entries := []domain.FileStatusEntry{
		entry("src/a.tsx", domain.StatusModified),
		entry("src/b.tsx", domain.StatusModified),
	}

	assert.Equal(t, "add A and B components", Describe(entries, sets))
}

func TestSingleFileFunctionGetsStemSuffix(t *testing.T) {
	sets := []*domain.FileChangeSet{setWith("utils.ts",
		domain.ChangeToken{Kind: domain.TokenFunction, Name: "foo"},
	)}
	entries := []domain.FileStatusEntry{entry("utils.ts", domain.StatusAdded)}

	assert.Equal(t, "add foo function to utils", Describe(entries, sets))
}

func TestClassClause(t *testing.T) {
	sets := []*domain.FileChangeSet{
		setWith("src/a.ts", domain.ChangeToken{Kind: domain.TokenClass, Name: "UserService"}),
		setWith("src/b.ts", domain.ChangeToken{Kind: domain.TokenImport, Name: "axios"}),
	}

	assert.Equal(t, "add UserService class", Describe(nil, sets))
}

func TestImportClause(t *testing.T) {
	sets := []*domain.FileChangeSet{setWith("src/a.ts",
		domain.ChangeToken{Kind: domain.TokenImport, Name: "axios"},
	)}
	entries := []domain.FileStatusEntry{
		entry("src/a.ts", domain.StatusModified),
		entry("src/b.ts", domain.StatusModified),
	}

	assert.Equal(t, "add axios import", Describe(entries, sets))
}

func TestSingleFileFallbackUsesStem(t *testing.T) {
	entries := []domain.FileStatusEntry{entry("src/index.html", domain.StatusModified)}
	assert.Equal(t, "update index", Describe(entries, nil))
}

func TestMultiFileFallbackCounts(t *testing.T) {
	entries := []domain.FileStatusEntry{
		entry("a.ts", domain.StatusAdded),
		entry("b.ts", domain.StatusAdded),
		entry("c.ts", domain.StatusDeleted),
	}

	assert.Equal(t, "add 2 files and remove 1 file", Describe(entries, nil))
}

func TestRemovedFunctionsSecondaryClause(t *testing.T) {
	s := domain.NewFileChangeSet("utils.ts")
	s.AddToken(domain.ChangeToken{Kind: domain.TokenFunction, Name: "foo"})
	s.RemoveToken(domain.ChangeToken{Kind: domain.TokenFunction, Name: "bar"})
	s.RemoveToken(domain.ChangeToken{Kind: domain.TokenFunction, Name: "baz"})
	entries := []domain.FileStatusEntry{entry("utils.ts", domain.StatusModified)}

	assert.Equal(t, "add foo function to utils and remove 2 functions", Describe(entries, []*domain.FileChangeSet{s}))
}

func TestNothingQualifies(t *testing.T) {
	assert.Equal(t, "update code", Describe(nil, nil))
}
