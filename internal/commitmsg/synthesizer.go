// Package commitmsg synthesizes a conventional commit message from the
// pending change set. Generation is heuristic and never fails: any problem
// along the way degrades to a fixed fallback message.
package commitmsg

import (
	"context"
	"log"
	"strings"

	"github.com/forjex/forjex/internal/classify"
	"github.com/forjex/forjex/internal/describe"
	"github.com/forjex/forjex/internal/diffparse"
	"github.com/forjex/forjex/internal/domain"
	"github.com/forjex/forjex/internal/ui"
)

// FallbackMessage is returned whenever there is nothing to describe or
// generation fails internally. Generate never returns an empty string.
const FallbackMessage = "chore: update project files"

// ChangeReader reads the pending change set from the working tree.
type ChangeReader interface {
	Diff(ctx context.Context, staged bool) (string, error)
	NameStatus(ctx context.Context, staged bool) (string, error)
}

// Synthesizer orchestrates parsing, classification and description building.
type Synthesizer struct {
	reader   ChangeReader
	reporter ui.Reporter
	logger   *log.Logger
}

// New creates a Synthesizer.
func New(reader ChangeReader, reporter ui.Reporter, logger *log.Logger) *Synthesizer {
	return &Synthesizer{reader: reader, reporter: reporter, logger: logger}
}

// Generate derives a commit message from the staged changes, falling back to
// the unstaged ones when nothing is staged. It never returns an error and
// never returns an empty string.
func (s *Synthesizer) Generate(ctx context.Context) (message string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Printf("Warning: message generation failed: %v", r)
			s.reporter.Stop()
			message = FallbackMessage
		}
	}()

	s.reporter.Start("Analyzing changes...")

	diff, status, err := s.readChanges(ctx)
	if err != nil {
		s.logger.Printf("Warning: reading changes failed: %v", err)
		s.reporter.Stop()
		return FallbackMessage
	}
	if diff == "" && status == "" {
		s.reporter.Stop()
		return FallbackMessage
	}

	s.reporter.Update("Classifying changes...")

	entries := diffparse.ParseNameStatus(status)
	sets := diffparse.ParseDiff(diff)
	if len(entries) == 0 && len(sets) == 0 {
		s.reporter.Stop()
		return FallbackMessage
	}

	cls := classify.Classify(entries, sets)
	msg := domain.CommitMessage{
		Type:        cls.Type,
		Scope:       cls.Scope,
		Description: describe.Describe(entries, sets),
	}

	s.reporter.Succeed("Commit message ready")
	return msg.String()
}

// readChanges prefers the staged change set and falls back to the unstaged
// one when the index is clean.
func (s *Synthesizer) readChanges(ctx context.Context) (diff, status string, err error) {
	diff, status, err = s.read(ctx, true)
	if err != nil {
		return "", "", err
	}
	if diff != "" || status != "" {
		return diff, status, nil
	}
	return s.read(ctx, false)
}

func (s *Synthesizer) read(ctx context.Context, staged bool) (string, string, error) {
	diff, err := s.reader.Diff(ctx, staged)
	if err != nil {
		return "", "", err
	}
	status, err := s.reader.NameStatus(ctx, staged)
	if err != nil {
		return "", "", err
	}
	return strings.TrimSpace(diff), strings.TrimSpace(status), nil
}
