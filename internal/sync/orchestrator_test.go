package sync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forjex/forjex/internal/git"
	"github.com/forjex/forjex/internal/ui"
)

// fakeSCM records every operation in call order and lets tests inject
// failures per operation.
type fakeSCM struct {
	calls   []string
	hasRepo bool
	remotes map[string]string
	fail    map[string]error
}

func newFakeSCM() *fakeSCM {
	return &fakeSCM{remotes: make(map[string]string), fail: make(map[string]error)}
}

func (f *fakeSCM) record(op string) error {
	f.calls = append(f.calls, op)
	return f.fail[op]
}

func (f *fakeSCM) HasRepo() bool { return f.hasRepo }

func (f *fakeSCM) Init(context.Context) error {
	if err := f.record("init"); err != nil {
		return err
	}
	f.hasRepo = true
	return nil
}

func (f *fakeSCM) CheckoutNewBranch(_ context.Context, name string) error {
	return f.record("checkout " + name)
}

func (f *fakeSCM) AddAll(context.Context) error { return f.record("add-all") }

func (f *fakeSCM) Commit(_ context.Context, message string) error {
	return f.record("commit " + message)
}

func (f *fakeSCM) AddRemote(_ context.Context, name, url string) error {
	if err := f.record(fmt.Sprintf("remote-add %s %s", name, url)); err != nil {
		return err
	}
	f.remotes[name] = url
	return nil
}

func (f *fakeSCM) RemoveRemote(_ context.Context, name string) error {
	if err := f.record("remote-remove " + name); err != nil {
		return err
	}
	delete(f.remotes, name)
	return nil
}

func (f *fakeSCM) HasRemote(_ context.Context, name string) (bool, error) {
	_, ok := f.remotes[name]
	return ok, f.fail["has-remote"]
}

func (f *fakeSCM) Pull(_ context.Context, remote, branch string, _ git.PullOptions) error {
	return f.record(fmt.Sprintf("pull %s %s", remote, branch))
}

func (f *fakeSCM) Push(_ context.Context, remote, branch string, opts git.PushOptions) error {
	op := fmt.Sprintf("push %s %s", remote, branch)
	if opts.SetUpstream {
		op += " --set-upstream"
	}
	return f.record(op)
}

type fixedMessager struct{ msg string }

func (m fixedMessager) Generate(context.Context) string { return m.msg }

func newOrchestrator(scm SourceControl) *Orchestrator {
	return NewOrchestrator(scm, fixedMessager{msg: "feat: add things"}, ui.NopReporter{}, log.New(io.Discard, "", 0))
}

func TestNewRepoSequence(t *testing.T) {
	scm := newFakeSCM()
	o := newOrchestrator(scm)

	err := o.Sync(context.Background(), "git@github.com:me/app.git", false)

	require.NoError(t, err)
	assert.Equal(t, []string{
		"init",
		"checkout main",
		"add-all",
		"commit " + InitialCommitMessage,
		"remote-add origin git@github.com:me/app.git",
		"push origin main --set-upstream",
	}, scm.calls)
	assert.Equal(t, StateDone, o.State())
}

func TestNewRepoNeverPulls(t *testing.T) {
	scm := newFakeSCM()
	require.NoError(t, newOrchestrator(scm).Sync(context.Background(), "url", false))
	assert.NotContains(t, scm.calls, "pull origin main")
}

func TestExistingRepoReassignsOriginBeforeCommit(t *testing.T) {
	scm := newFakeSCM()
	scm.hasRepo = true
	scm.remotes["origin"] = "git@github.com:me/old.git"
	o := newOrchestrator(scm)

	err := o.Sync(context.Background(), "git@github.com:me/new.git", true)

	require.NoError(t, err)
	assert.Equal(t, []string{
		"remote-remove origin",
		"remote-add origin git@github.com:me/new.git",
		"add-all",
		"commit feat: add things",
		"pull origin main",
		"push origin main --set-upstream",
	}, scm.calls)
	assert.Equal(t, "git@github.com:me/new.git", scm.remotes["origin"])
}

func TestExistingRepoInitializesWhenNoGitDir(t *testing.T) {
	scm := newFakeSCM()
	o := newOrchestrator(scm)

	require.NoError(t, o.Sync(context.Background(), "url", true))

	require.GreaterOrEqual(t, len(scm.calls), 2)
	assert.Equal(t, "init", scm.calls[0])
	assert.Equal(t, "checkout main", scm.calls[1])
}

func TestMissingRemoteRefIsBenign(t *testing.T) {
	scm := newFakeSCM()
	scm.hasRepo = true
	scm.fail["pull origin main"] = errors.New("fatal: couldn't find remote ref main")
	o := newOrchestrator(scm)

	err := o.Sync(context.Background(), "url", true)

	require.NoError(t, err)
	assert.Contains(t, scm.calls, "push origin main --set-upstream")
	assert.Equal(t, StateDone, o.State())
}

func TestUnexpectedPullFailureStillPushes(t *testing.T) {
	scm := newFakeSCM()
	scm.hasRepo = true
	scm.fail["pull origin main"] = errors.New("fatal: refusing to merge unrelated histories")
	o := newOrchestrator(scm)

	err := o.Sync(context.Background(), "url", true)

	require.NoError(t, err)
	assert.Contains(t, scm.calls, "push origin main --set-upstream")
	assert.Equal(t, StateDone, o.State())
}

func TestPushFailureIsFatal(t *testing.T) {
	scm := newFakeSCM()
	scm.hasRepo = true
	scm.fail["push origin main --set-upstream"] = errors.New("permission denied")
	o := newOrchestrator(scm)

	err := o.Sync(context.Background(), "url", true)

	require.Error(t, err)
	assert.Equal(t, StateFailed, o.State())
}

func TestInitFailurePropagates(t *testing.T) {
	scm := newFakeSCM()
	scm.fail["init"] = errors.New("disk full")
	o := newOrchestrator(scm)

	err := o.Sync(context.Background(), "url", false)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, StateFailed, o.State())
}

func TestCommitFailureIsFatal(t *testing.T) {
	scm := newFakeSCM()
	scm.hasRepo = true
	scm.fail["commit feat: add things"] = errors.New("nothing to commit")
	o := newOrchestrator(scm)

	err := o.Sync(context.Background(), "url", true)

	require.Error(t, err)
	assert.NotContains(t, scm.calls, "push origin main --set-upstream")
}
