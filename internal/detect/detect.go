// Package detect guesses the project type from files on disk. Detection is
// heuristic: it reads package.json dependency names, not the code itself.
package detect

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/forjex/forjex/internal/util"
)

// ProjectType is a coarse project classification used to pick build steps.
type ProjectType string

const (
	TypeNext   ProjectType = "next"
	TypeReact  ProjectType = "react"
	TypeVue    ProjectType = "vue"
	TypeNode   ProjectType = "node"
	TypeStatic ProjectType = "static"
)

type packageJSON struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// Detect classifies the project rooted at dir. Framework checks run in
// specificity order so a Next.js app is not reported as plain React.
func Detect(dir string) ProjectType {
	manifest := filepath.Join(dir, "package.json")
	if !util.FileExists(manifest) {
		return TypeStatic
	}

	data, err := os.ReadFile(manifest)
	if err != nil {
		return TypeNode
	}

	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return TypeNode
	}

	switch {
	case pkg.hasDependency("next"):
		return TypeNext
	case pkg.hasDependency("react"):
		return TypeReact
	case pkg.hasDependency("vue"):
		return TypeVue
	default:
		return TypeNode
	}
}

func (p *packageJSON) hasDependency(name string) bool {
	if _, ok := p.Dependencies[name]; ok {
		return true
	}
	_, ok := p.DevDependencies[name]
	return ok
}
