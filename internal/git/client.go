// Package git wraps the git binary for the handful of operations the sync
// flow needs. Stderr is folded into returned errors so callers can
// distinguish failure modes by message text.
package git

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Client runs git commands against a single working directory.
type Client struct {
	dir    string
	logger *log.Logger
}

// NewClient creates a Client for the repository at dir.
func NewClient(dir string, logger *log.Logger) *Client {
	return &Client{dir: dir, logger: logger}
}

// run executes git with args in the client directory, returning stdout.
// Stderr text is wrapped into the error so substring checks work upstream.
func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = c.dir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("git %s: %s", args[0], msg)
	}

	return string(output), nil
}

// HasRepo reports whether the directory already holds git metadata.
func (c *Client) HasRepo() bool {
	info, err := os.Stat(filepath.Join(c.dir, ".git"))
	return err == nil && info.IsDir()
}

// Init initializes a new repository.
func (c *Client) Init(ctx context.Context) error {
	_, err := c.run(ctx, "init")
	return err
}

// CheckoutNewBranch creates and switches to a new branch.
func (c *Client) CheckoutNewBranch(ctx context.Context, name string) error {
	_, err := c.run(ctx, "checkout", "-b", name)
	return err
}

// AddAll stages every pending change.
func (c *Client) AddAll(ctx context.Context) error {
	_, err := c.run(ctx, "add", ".")
	return err
}

// Commit records the staged changes with the given message.
func (c *Client) Commit(ctx context.Context, message string) error {
	_, err := c.run(ctx, "commit", "-m", message)
	return err
}

// AddRemote registers a named remote.
func (c *Client) AddRemote(ctx context.Context, name, url string) error {
	_, err := c.run(ctx, "remote", "add", name, url)
	return err
}

// RemoveRemote deletes a named remote.
func (c *Client) RemoveRemote(ctx context.Context, name string) error {
	_, err := c.run(ctx, "remote", "remove", name)
	return err
}

// ListRemotes returns the configured remote names.
func (c *Client) ListRemotes(ctx context.Context) ([]string, error) {
	output, err := c.run(ctx, "remote")
	if err != nil {
		return nil, err
	}

	var remotes []string
	s := bufio.NewScanner(strings.NewReader(output))
	for s.Scan() {
		if name := strings.TrimSpace(s.Text()); name != "" {
			remotes = append(remotes, name)
		}
	}
	return remotes, s.Err()
}

// HasRemote reports whether a remote with the given name exists.
func (c *Client) HasRemote(ctx context.Context, name string) (bool, error) {
	remotes, err := c.ListRemotes(ctx)
	if err != nil {
		return false, err
	}
	for _, r := range remotes {
		if r == name {
			return true, nil
		}
	}
	return false, nil
}

// PullOptions control how Pull reconciles remote history.
type PullOptions struct {
	Rebase                  bool
	AllowUnrelatedHistories bool
}

// Pull fetches and integrates the remote branch.
func (c *Client) Pull(ctx context.Context, remote, branch string, opts PullOptions) error {
	args := []string{"pull"}
	if opts.Rebase {
		args = append(args, "--rebase")
	}
	if opts.AllowUnrelatedHistories {
		args = append(args, "--allow-unrelated-histories")
	}
	args = append(args, remote, branch)
	_, err := c.run(ctx, args...)
	return err
}

// PushOptions control how Push publishes the branch.
type PushOptions struct {
	SetUpstream bool
}

// Push publishes the branch to the remote.
func (c *Client) Push(ctx context.Context, remote, branch string, opts PushOptions) error {
	args := []string{"push"}
	if opts.SetUpstream {
		args = append(args, "--set-upstream")
	}
	args = append(args, remote, branch)
	_, err := c.run(ctx, args...)
	return err
}

// Diff returns the raw unified diff, staged or unstaged.
func (c *Client) Diff(ctx context.Context, staged bool) (string, error) {
	args := []string{"diff", "--no-color"}
	if staged {
		args = append(args, "--cached")
	}
	return c.run(ctx, args...)
}

// NameStatus returns the per-file change summary, staged or unstaged.
func (c *Client) NameStatus(ctx context.Context, staged bool) (string, error) {
	args := []string{"diff", "--name-status"}
	if staged {
		args = append(args, "--cached")
	}
	return c.run(ctx, args...)
}
