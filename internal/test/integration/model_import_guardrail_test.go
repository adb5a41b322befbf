//go:build integration
// +build integration

package integration

import (
	"go/parser"
	"go/token"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func TestApplianceModelImportsStayPresentationFree(t *testing.T) {
	const serviceImportPrefix = "github.com/brinedeck/wardroom/internal/services/"

	root := integrationRepoRoot(t)
	allowlist := applianceServiceImportAllowlist()
	var violations []string

	err := filepath.WalkDir(filepath.Join(root, "internal", "appliance"), func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(path, ".go") {
			return nil
		}

		fset := token.NewFileSet()
		file, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			return err
		}
		for _, spec := range file.Imports {
			importPath, err := strconv.Unquote(spec.Path.Value)
			if err != nil {
				return err
			}
			if !strings.HasPrefix(importPath, serviceImportPrefix) {
				continue
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			rel = filepath.ToSlash(rel)
			if _, ok := allowlist[rel]; ok {
				continue
			}
			violations = append(violations, rel+" imports "+importPath)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("scan appliance model imports: %v", err)
	}

	if len(violations) > 0 {
		t.Fatalf("appliance model packages must not depend on service packages:\n- %s", strings.Join(violations, "\n- "))
	}
}

func applianceServiceImportAllowlist() map[string]struct{} {
	return map[string]struct{}{}
}
