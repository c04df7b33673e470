package main

import (
	"fmt"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Import discipline for contexts/<context>/<service>/<layer>:
//
//	domain       stdlib and the service's own domain packages only
//	application  domain, ports and the shared kernel (internal/shared);
//	             never adapters, never internal/platform
//	ports        domain and the shared kernel
//
// Adapters and transport are unconstrained below the cross-service rule:
// no layer of one service may import another service's packages. Wiring
// between services happens in internal/app/bootstrap through ports.
const module = "collabo"

// layerRules maps a layer directory to the service-relative packages its
// files may import in addition to stdlib. A nil entry means the layer is
// unrestricted.
var layerRules = map[string][]string{
	"domain":      {"domain"},
	"application": {"application", "domain", "ports", sharedKernel},
	"ports":       {"domain", "ports", sharedKernel},
}

const sharedKernel = module + "/internal/shared"

type violation struct {
	File   string
	Line   int
	Import string
	Rule   string
}

func main() {
	violations := collect("contexts")
	if len(violations) == 0 {
		fmt.Println("boundary checks passed")
		return
	}

	sort.Slice(violations, func(i, j int) bool {
		if violations[i].File != violations[j].File {
			return violations[i].File < violations[j].File
		}
		if violations[i].Line != violations[j].Line {
			return violations[i].Line < violations[j].Line
		}
		return violations[i].Import < violations[j].Import
	})
	fmt.Println("boundary violations found:")
	for _, v := range violations {
		fmt.Printf("- %s:%d imports %q (%s)\n", v.File, v.Line, v.Import, v.Rule)
	}
	os.Exit(1)
}

func collect(root string) []violation {
	var violations []violation
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		normalized := filepath.ToSlash(path)
		parts := strings.Split(normalized, "/")
		if len(parts) < 4 || parts[0] != "contexts" {
			return nil
		}
		service := fmt.Sprintf("%s/contexts/%s/%s", module, parts[1], parts[2])
		violations = append(violations, checkFile(path, normalized, parts[3], service)...)
		return nil
	})
	return violations
}

func checkFile(path, normalized, layer, service string) []violation {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
	if err != nil {
		return []violation{{File: normalized, Line: 1, Rule: "file must parse"}}
	}

	var violations []violation
	for _, imp := range file.Imports {
		importPath := strings.Trim(imp.Path.Value, `"`)
		line := fset.Position(imp.Pos()).Line
		if rule := checkImport(importPath, layer, service); rule != "" {
			violations = append(violations, violation{
				File:   normalized,
				Line:   line,
				Import: importPath,
				Rule:   rule,
			})
		}
	}
	return violations
}

func checkImport(importPath, layer, service string) string {
	if strings.HasPrefix(importPath, module+"/contexts/") && !underPrefix(importPath, service) {
		return "cross-service imports are forbidden"
	}

	allowed, restricted := layerRules[layer]
	if !restricted || isStdlib(importPath) {
		return ""
	}
	for _, suffix := range allowed {
		prefix := suffix
		if !strings.HasPrefix(suffix, module+"/") {
			prefix = service + "/" + suffix
		}
		if underPrefix(importPath, prefix) {
			return ""
		}
	}
	return layer + " import is outside its allowlist"
}

func underPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func isStdlib(importPath string) bool {
	if strings.HasPrefix(importPath, module+"/") {
		return false
	}
	first, _, _ := strings.Cut(importPath, "/")
	return !strings.Contains(first, ".")
}
