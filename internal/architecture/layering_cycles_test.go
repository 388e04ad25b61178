// Where: cli/internal/architecture/layering_cycles_test.go
// What: Package-level import graph checks for svcgen internal packages.
// Why: Packages must not import in a cycle, and imports must point down the domain, infra, usecase, command stack.
package architecture

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// layerRank orders the stack; a package may import only its own rank or lower.
var layerRank = map[string]int{
	"domain":  0,
	"infra":   1,
	"usecase": 2,
	"command": 3,
}

// importGraph maps an internal package (relative to internal/) to the internal packages it imports.
type importGraph map[string]map[string]struct{}

func loadImportGraph(t *testing.T) importGraph {
	t.Helper()

	internalRoot := resolveInternalRoot(t)
	fset := token.NewFileSet()
	graph := importGraph{}

	err := filepath.WalkDir(internalRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		if !strings.HasSuffix(d.Name(), ".go") || strings.HasSuffix(d.Name(), "_test.go") {
			return nil
		}
		rel, err := filepath.Rel(internalRoot, filepath.Dir(path))
		if err != nil {
			return err
		}
		pkg := filepath.ToSlash(rel)
		if pkg == "." {
			return nil
		}
		graph.addNode(pkg)

		file, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			return err
		}
		for _, imp := range file.Imports {
			importPath := strings.Trim(imp.Path.Value, "\"")
			if !strings.HasPrefix(importPath, internalImportPrefix) {
				continue
			}
			dep := strings.TrimPrefix(importPath, internalImportPrefix)
			graph.addNode(dep)
			graph[pkg][dep] = struct{}{}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("scan internal packages: %v", err)
	}
	return graph
}

func (g importGraph) addNode(pkg string) {
	if _, ok := g[pkg]; !ok {
		g[pkg] = map[string]struct{}{}
	}
}

func (g importGraph) sortedDeps(pkg string) []string {
	deps := make([]string, 0, len(g[pkg]))
	for dep := range g[pkg] {
		deps = append(deps, dep)
	}
	sort.Strings(deps)
	return deps
}

func (g importGraph) sortedNodes() []string {
	nodes := make([]string, 0, len(g))
	for pkg := range g {
		nodes = append(nodes, pkg)
	}
	sort.Strings(nodes)
	return nodes
}

// cycles returns each import cycle once, written as "a -> b -> a".
func (g importGraph) cycles() []string {
	onStack := map[string]int{}
	done := map[string]bool{}
	var stack []string
	seen := map[string]struct{}{}
	var found []string

	var visit func(pkg string)
	visit = func(pkg string) {
		onStack[pkg] = len(stack)
		stack = append(stack, pkg)
		for _, dep := range g.sortedDeps(pkg) {
			if idx, ok := onStack[dep]; ok {
				cycle := strings.Join(append(append([]string{}, stack[idx:]...), dep), " -> ")
				if _, dup := seen[cycle]; !dup {
					seen[cycle] = struct{}{}
					found = append(found, cycle)
				}
				continue
			}
			if !done[dep] {
				visit(dep)
			}
		}
		stack = stack[:len(stack)-1]
		delete(onStack, pkg)
		done[pkg] = true
	}

	for _, pkg := range g.sortedNodes() {
		if !done[pkg] {
			visit(pkg)
		}
	}
	sort.Strings(found)
	return found
}

func TestNoInternalImportCycles(t *testing.T) {
	t.Parallel()

	if cycles := loadImportGraph(t).cycles(); len(cycles) > 0 {
		t.Fatalf("internal import cycles detected:\n%s", strings.Join(cycles, "\n"))
	}
}

func TestImportsPointDownTheLayerStack(t *testing.T) {
	t.Parallel()

	graph := loadImportGraph(t)
	violations := []string{}
	for _, pkg := range graph.sortedNodes() {
		from, ranked := layerRank[topLayer(pkg)]
		if !ranked {
			continue
		}
		for _, dep := range graph.sortedDeps(pkg) {
			to, ok := layerRank[topLayer(dep)]
			if ok && to > from {
				violations = append(violations, pkg+" -> "+dep)
			}
		}
	}
	if len(violations) > 0 {
		t.Fatalf("imports against the layer stack:\n%s", strings.Join(violations, "\n"))
	}
}

func TestCyclesReportsEachLoopOnce(t *testing.T) {
	graph := importGraph{
		"a": {"b": {}},
		"b": {"a": {}, "c": {}},
		"c": {},
	}
	got := graph.cycles()
	if len(got) != 1 || got[0] != "a -> b -> a" {
		t.Fatalf("cycles() = %v", got)
	}
}
