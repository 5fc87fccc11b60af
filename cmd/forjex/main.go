package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/forjex/forjex/internal/app"
	"github.com/forjex/forjex/internal/config"
	"github.com/forjex/forjex/internal/ui"
	"github.com/spf13/cobra"
)

var (
	version     = "0.1.0"
	cfgFile     string
	name        string
	description string
	remoteURL   string
	private     bool
	existing    bool
	deployFlag  bool
	noCI        bool
	quiet       bool
	verbose     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "forjex",
		Short:   "Forjex - forge a project into a published repository",
		Long:    `Forjex creates the remote repository, derives a commit message from your pending changes, reconciles local and remote history and pushes, optionally deploying the result.`,
		Version: version,
		RunE:    run,
	}

	rootCmd.Flags().StringVarP(&cfgFile, "config", "c", "", "Path to config file (default: ~/.config/forjex/config.yaml)")
	rootCmd.Flags().StringVarP(&name, "name", "n", "", "Repository name (default: current directory name)")
	rootCmd.Flags().StringVarP(&description, "description", "d", "", "Repository description")
	rootCmd.Flags().StringVar(&remoteURL, "remote", "", "Use this remote URL instead of creating a repository")
	rootCmd.Flags().BoolVar(&private, "private", false, "Create the repository as private")
	rootCmd.Flags().BoolVar(&existing, "existing", false, "Reconcile with a remote that may already carry history")
	rootCmd.Flags().BoolVar(&deployFlag, "deploy", false, "Deploy after pushing")
	rootCmd.Flags().BoolVar(&noCI, "no-ci", false, "Skip GitHub Actions workflow generation")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress banner and spinner output")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Verbose = verbose

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}
	if name == "" {
		name = filepath.Base(cwd)
	}

	var reporter ui.Reporter = ui.NewSpinnerReporter()
	if quiet {
		reporter = ui.NopReporter{}
	} else {
		ui.PrintBanner(os.Stderr, version)
	}

	opts := app.Options{
		Dir:          cwd,
		Name:         name,
		Description:  description,
		Private:      private || cfg.Defaults.Private,
		ExistingRepo: existing,
		RemoteURL:    remoteURL,
		Deploy:       deployFlag,
		CI:           !noCI,
	}

	runner := app.NewRunner(cfg, opts, reporter)
	return runner.Run(cmd.Context())
}
