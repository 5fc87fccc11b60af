package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/forjex/forjex/internal/commitmsg"
	"github.com/forjex/forjex/internal/config"
	"github.com/forjex/forjex/internal/deploy"
	"github.com/forjex/forjex/internal/detect"
	"github.com/forjex/forjex/internal/git"
	"github.com/forjex/forjex/internal/hosting"
	"github.com/forjex/forjex/internal/sync"
	"github.com/forjex/forjex/internal/ui"
	"github.com/forjex/forjex/internal/workflow"
)

// Options are the per-invocation settings resolved from CLI flags.
type Options struct {
	Dir          string // project directory, defaults to cwd
	Name         string // repository name
	Description  string
	Private      bool
	ExistingRepo bool   // reconcile with a remote that may carry history
	RemoteURL    string // skip repository creation when set
	Deploy       bool
	CI           bool // generate a GitHub Actions workflow
}

// Runner orchestrates the full publish flow
type Runner struct {
	config   *config.Config
	opts     Options
	logger   *log.Logger
	reporter ui.Reporter
}

// NewRunner creates a new Runner instance
func NewRunner(cfg *config.Config, opts Options, reporter ui.Reporter) *Runner {
	return &Runner{
		config:   cfg,
		opts:     opts,
		logger:   log.New(os.Stderr, "[forjex] ", log.LstdFlags),
		reporter: reporter,
	}
}

// Run executes the full pipeline: detect, create remote, generate CI,
// sync and optionally deploy.
func (r *Runner) Run(ctx context.Context) error {
	startTime := time.Now()

	needHosting := r.opts.RemoteURL == ""
	if err := r.config.Validate(needHosting, r.opts.Deploy); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if r.opts.Dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolving working directory: %w", err)
		}
		r.opts.Dir = cwd
	}

	// Step 1: Detect project type
	projectType := detect.Detect(r.opts.Dir)
	r.log("Detected project type: %s", projectType)

	// Step 2: Resolve the remote URL, creating the repository if needed
	remoteURL := r.opts.RemoteURL
	if remoteURL == "" {
		url, err := r.createRepository(ctx)
		if err != nil {
			return err
		}
		remoteURL = url
	}
	r.log("Remote URL: %s", remoteURL)

	// Step 3: Generate CI workflow before committing so it ships with the
	// first push
	if r.opts.CI {
		path, err := workflow.Write(r.opts.Dir, projectType)
		if err != nil {
			return fmt.Errorf("generating workflow: %w", err)
		}
		r.log("Workflow written to %s", path)
	}

	// Step 4: Sync the working tree with the remote
	gitClient := git.NewClient(r.opts.Dir, r.logger)
	synth := commitmsg.New(gitClient, r.reporter, r.logger)
	orch := sync.NewOrchestrator(gitClient, synth, r.reporter, r.logger)

	r.reporter.Start("Syncing repository...")
	if err := orch.Sync(ctx, remoteURL, r.opts.ExistingRepo); err != nil {
		return fmt.Errorf("syncing repository: %w", err)
	}

	// Step 5: Deploy
	if r.opts.Deploy {
		vercel := deploy.NewVercelClient(r.config.Vercel.Token, r.logger)
		r.reporter.Start("Deploying...")
		url, err := vercel.Deploy(ctx, r.opts.Name)
		if err != nil {
			r.reporter.Fail("Deployment failed")
			return fmt.Errorf("deploying: %w", err)
		}
		r.reporter.Succeed("Deployed to " + url)
	}

	elapsed := time.Since(startTime)
	r.log("Done in %s", elapsed.Round(time.Millisecond))

	return nil
}

// createRepository creates the remote repository, translating a name
// conflict into an actionable message.
func (r *Runner) createRepository(ctx context.Context) (string, error) {
	gh := hosting.NewGitHubClient(ctx, r.config.GitHub.Token, r.logger)

	login, err := gh.Authenticate(ctx)
	if err != nil {
		return "", err
	}
	r.log("Authenticated as %s", login)

	r.reporter.Start("Creating repository...")
	url, err := gh.CreateRepository(ctx, r.opts.Name, r.opts.Description, r.opts.Private)
	if err != nil {
		r.reporter.Fail("Repository creation failed")
		if errors.Is(err, hosting.ErrNameTaken) {
			return "", fmt.Errorf("repository %q already exists on your account; pick another name or rerun with --existing and --remote", r.opts.Name)
		}
		return "", err
	}
	r.reporter.Succeed("Repository created")

	return url, nil
}

func (r *Runner) log(format string, args ...interface{}) {
	if r.config.Verbose {
		r.logger.Printf(format, args...)
	}
}
