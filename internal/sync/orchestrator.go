// Package sync reconciles a local working tree with a remote repository.
// One Sync call drives a sequential state machine: init, remote setup,
// stage-and-commit, reconcile and push. The remote may be brand-new or may
// already carry history.
package sync

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/forjex/forjex/internal/git"
	"github.com/forjex/forjex/internal/ui"
)

// Branch is the only branch the sync flow operates on.
const Branch = "main"

// InitialCommitMessage is used on the new-repository path.
const InitialCommitMessage = "Initial commit from Forjex"

// missingRemoteRef is the git error fragment for a remote branch that does
// not exist yet. Matching on message text is fragile but deliberate: the git
// binary offers nothing more structured here.
const missingRemoteRef = "couldn't find remote ref"

// State names the current step of a sync invocation.
type State string

const (
	StateStart          State = "start"
	StateInitLocal      State = "init-local"
	StateRemoteSetup    State = "remote-setup"
	StateStageAndCommit State = "stage-and-commit"
	StateReconcile      State = "reconcile"
	StatePush           State = "push"
	StateDone           State = "done"
	StateFailed         State = "failed"
)

// SourceControl is the source-control backend the orchestrator drives.
type SourceControl interface {
	HasRepo() bool
	Init(ctx context.Context) error
	CheckoutNewBranch(ctx context.Context, name string) error
	AddAll(ctx context.Context) error
	Commit(ctx context.Context, message string) error
	AddRemote(ctx context.Context, name, url string) error
	RemoveRemote(ctx context.Context, name string) error
	HasRemote(ctx context.Context, name string) (bool, error)
	Pull(ctx context.Context, remote, branch string, opts git.PullOptions) error
	Push(ctx context.Context, remote, branch string, opts git.PushOptions) error
}

// Messager produces the commit message for the existing-repo path.
type Messager interface {
	Generate(ctx context.Context) string
}

// Orchestrator runs the sync state machine. State is re-derived from the
// working tree on every invocation and never cached across calls.
type Orchestrator struct {
	scm      SourceControl
	messager Messager
	reporter ui.Reporter
	logger   *log.Logger

	state State
}

// NewOrchestrator creates an Orchestrator.
func NewOrchestrator(scm SourceControl, messager Messager, reporter ui.Reporter, logger *log.Logger) *Orchestrator {
	return &Orchestrator{
		scm:      scm,
		messager: messager,
		reporter: reporter,
		logger:   logger,
		state:    StateStart,
	}
}

// State returns the state reached by the last Sync call.
func (o *Orchestrator) State() State {
	return o.state
}

// Sync pushes the working tree to remoteURL. With existingRepo set it
// reconciles against whatever history the remote already has; otherwise it
// assumes a freshly created, empty remote.
//
// A commit created before a later failing step is not rolled back, so a
// retry after failure may record a duplicate commit.
func (o *Orchestrator) Sync(ctx context.Context, remoteURL string, existingRepo bool) error {
	o.state = StateStart

	var err error
	if existingRepo {
		err = o.syncExisting(ctx, remoteURL)
	} else {
		err = o.syncNew(ctx, remoteURL)
	}

	if err != nil {
		o.state = StateFailed
		o.reporter.Fail("Repository sync failed")
		return err
	}

	o.state = StateDone
	o.reporter.Succeed("Repository synced")
	return nil
}

func (o *Orchestrator) syncExisting(ctx context.Context, remoteURL string) error {
	if !o.scm.HasRepo() {
		if err := o.initLocal(ctx); err != nil {
			return err
		}
	}

	o.transition(StateRemoteSetup, "Configuring remote...")
	if err := o.assignOrigin(ctx, remoteURL); err != nil {
		return err
	}

	if err := o.stageAndCommit(ctx, ""); err != nil {
		return err
	}

	o.transition(StateReconcile, "Reconciling with remote history...")
	o.reconcile(ctx)

	return o.push(ctx)
}

func (o *Orchestrator) syncNew(ctx context.Context, remoteURL string) error {
	if err := o.initLocal(ctx); err != nil {
		return err
	}

	if err := o.stageAndCommit(ctx, InitialCommitMessage); err != nil {
		return err
	}

	o.transition(StateRemoteSetup, "Adding remote...")
	if err := o.scm.AddRemote(ctx, "origin", remoteURL); err != nil {
		return fmt.Errorf("adding remote: %w", err)
	}

	return o.push(ctx)
}

func (o *Orchestrator) initLocal(ctx context.Context) error {
	o.transition(StateInitLocal, "Initializing repository...")
	if err := o.scm.Init(ctx); err != nil {
		return fmt.Errorf("initializing repository: %w", err)
	}
	if err := o.scm.CheckoutNewBranch(ctx, Branch); err != nil {
		return fmt.Errorf("creating branch %s: %w", Branch, err)
	}
	return nil
}

// assignOrigin points origin at remoteURL, removing any previous origin
// first. Reassignment is authoritative and idempotent.
func (o *Orchestrator) assignOrigin(ctx context.Context, remoteURL string) error {
	exists, err := o.scm.HasRemote(ctx, "origin")
	if err != nil {
		return fmt.Errorf("listing remotes: %w", err)
	}
	if exists {
		if err := o.scm.RemoveRemote(ctx, "origin"); err != nil {
			return fmt.Errorf("removing remote: %w", err)
		}
	}
	if err := o.scm.AddRemote(ctx, "origin", remoteURL); err != nil {
		return fmt.Errorf("adding remote: %w", err)
	}
	return nil
}

// stageAndCommit stages everything and commits. An empty message asks the
// synthesizer for one.
func (o *Orchestrator) stageAndCommit(ctx context.Context, message string) error {
	o.transition(StateStageAndCommit, "Committing changes...")

	if err := o.scm.AddAll(ctx); err != nil {
		return fmt.Errorf("staging changes: %w", err)
	}

	if message == "" {
		message = o.messager.Generate(ctx)
	}

	if err := o.scm.Commit(ctx, message); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}

// reconcile rebase-pulls origin main, tolerating unrelated histories. A
// missing remote branch is expected for a fresh remote and is swallowed.
// Any other pull failure is reported as a warning and the flow continues to
// push regardless; this best-effort policy can leave diverged history that
// needs manual resolution.
func (o *Orchestrator) reconcile(ctx context.Context) {
	err := o.scm.Pull(ctx, "origin", Branch, git.PullOptions{
		Rebase:                  true,
		AllowUnrelatedHistories: true,
	})
	if err == nil {
		return
	}

	if strings.Contains(err.Error(), missingRemoteRef) {
		o.logger.Printf("Remote branch %s not found, skipping pull", Branch)
		return
	}

	o.logger.Printf("Warning: pull failed, pushing anyway: %v", err)
}

func (o *Orchestrator) push(ctx context.Context) error {
	o.transition(StatePush, "Pushing to remote...")
	err := o.scm.Push(ctx, "origin", Branch, git.PushOptions{SetUpstream: true})
	if err != nil {
		return fmt.Errorf("pushing to origin/%s: %w", Branch, err)
	}
	return nil
}

func (o *Orchestrator) transition(next State, message string) {
	o.state = next
	o.reporter.Update(message)
	o.logger.Printf("sync: %s", next)
}
