// Package workflow writes a GitHub Actions CI workflow matched to the
// detected project type.
package workflow

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/forjex/forjex/internal/detect"
	"github.com/forjex/forjex/internal/util"
)

// workflowFile mirrors the GitHub Actions workflow schema, limited to the
// fields we emit.
type workflowFile struct {
	Name string           `yaml:"name"`
	On   map[string]any   `yaml:"on"`
	Jobs map[string]ciJob `yaml:"jobs"`
}

type ciJob struct {
	RunsOn string   `yaml:"runs-on"`
	Steps  []ciStep `yaml:"steps"`
}

type ciStep struct {
	Name string            `yaml:"name,omitempty"`
	Uses string            `yaml:"uses,omitempty"`
	Run  string            `yaml:"run,omitempty"`
	With map[string]string `yaml:"with,omitempty"`
}

// Write renders .github/workflows/ci.yml under dir for the given project
// type and returns the written path.
func Write(dir string, projectType detect.ProjectType) (string, error) {
	wf := build(projectType)

	data, err := yaml.Marshal(wf)
	if err != nil {
		return "", fmt.Errorf("rendering workflow: %w", err)
	}

	outDir := filepath.Join(dir, ".github", "workflows")
	if err := util.EnsureDir(outDir); err != nil {
		return "", fmt.Errorf("creating workflow directory: %w", err)
	}

	path := filepath.Join(outDir, "ci.yml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing workflow: %w", err)
	}

	return path, nil
}

func build(projectType detect.ProjectType) workflowFile {
	steps := []ciStep{
		{Name: "Checkout", Uses: "actions/checkout@v4"},
	}

	if projectType != detect.TypeStatic {
		steps = append(steps,
			ciStep{
				Name: "Setup Node",
				Uses: "actions/setup-node@v4",
				With: map[string]string{"node-version": "20"},
			},
			ciStep{Name: "Install dependencies", Run: "npm ci"},
		)
	}

	switch projectType {
	case detect.TypeNext, detect.TypeReact, detect.TypeVue:
		steps = append(steps, ciStep{Name: "Build", Run: "npm run build"})
	case detect.TypeNode:
		steps = append(steps, ciStep{Name: "Test", Run: "npm test --if-present"})
	}

	return workflowFile{
		Name: "CI",
		On: map[string]any{
			"push":         map[string]any{"branches": []string{"main"}},
			"pull_request": map[string]any{"branches": []string{"main"}},
		},
		Jobs: map[string]ciJob{
			"build": {RunsOn: "ubuntu-latest", Steps: steps},
		},
	}
}
