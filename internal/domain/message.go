package domain

import "fmt"

// CommitType is a conventional-commit type
type CommitType string

const (
	TypeFeat     CommitType = "feat"
	TypeFix      CommitType = "fix"
	TypeDocs     CommitType = "docs"
	TypeStyle    CommitType = "style"
	TypeRefactor CommitType = "refactor"
	TypeTest     CommitType = "test"
	TypeChore    CommitType = "chore"
)

// Classification is the derived commit type plus an optional scope
type Classification struct {
	Type  CommitType
	Scope string // empty when no dominant directory
}

// CommitMessage is a conventional commit header
type CommitMessage struct {
	Type        CommitType
	Scope       string
	Description string
}

// String renders "type(scope): description" or "type: description"
func (m CommitMessage) String() string {
	if m.Scope != "" {
		return fmt.Sprintf("%s(%s): %s", m.Type, m.Scope, m.Description)
	}
	return fmt.Sprintf("%s: %s", m.Type, m.Description)
}
