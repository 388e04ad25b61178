// Where: cli/internal/domain/template/fields.go
// What: Collect the top-level fields a parsed template references.
// Why: Missing and unused parameters are reported before execution.
package template

import (
	"fmt"
	"sort"
	"text/template"
	"text/template/parse"
)

// fieldCollector records root-data field names across every tree of a template set.
type fieldCollector struct {
	seen map[string]struct{}
	err  error
}

// referencedFields walks the main tree and every associated define/block tree and
// returns sorted, de-duplicated field names resolved against the root data.
// Fields under range/with are skipped because dot is rebound there. Associated
// trees are walked as if dot were the root data. `index` on the root data must use
// a string literal key so the key is known before execution.
func referencedFields(tmpl *template.Template) ([]string, error) {
	c := &fieldCollector{seen: map[string]struct{}{}}
	for _, associated := range tmpl.Templates() {
		if associated.Tree == nil || associated.Tree.Root == nil {
			continue
		}
		c.walk(associated.Tree.Root, true)
	}
	if c.err != nil {
		return nil, c.err
	}
	out := make([]string, 0, len(c.seen))
	for name := range c.seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}

func (c *fieldCollector) walk(node parse.Node, rootDot bool) {
	switch n := node.(type) {
	case *parse.ListNode:
		if n == nil {
			return
		}
		for _, child := range n.Nodes {
			c.walk(child, rootDot)
		}
	case *parse.ActionNode:
		c.walk(n.Pipe, rootDot)
	case *parse.IfNode:
		c.walkBranch(&n.BranchNode, rootDot, rootDot)
	case *parse.RangeNode:
		c.walkBranch(&n.BranchNode, rootDot, false)
	case *parse.WithNode:
		c.walkBranch(&n.BranchNode, rootDot, false)
	case *parse.TemplateNode:
		c.walk(n.Pipe, rootDot)
	case *parse.PipeNode:
		if n == nil {
			return
		}
		for _, cmd := range n.Cmds {
			c.walk(cmd, rootDot)
		}
	case *parse.CommandNode:
		c.indexKey(n, rootDot)
		for _, arg := range n.Args {
			c.walk(arg, rootDot)
		}
	case *parse.ChainNode:
		c.walk(n.Node, rootDot)
	case *parse.FieldNode:
		if rootDot && len(n.Ident) > 0 {
			c.seen[n.Ident[0]] = struct{}{}
		}
	case *parse.VariableNode:
		// $.Field always resolves against the root data.
		if len(n.Ident) > 1 && n.Ident[0] == "$" {
			c.seen[n.Ident[1]] = struct{}{}
		}
	}
}

func (c *fieldCollector) walkBranch(n *parse.BranchNode, rootDot, bodyRootDot bool) {
	c.walk(n.Pipe, rootDot)
	c.walk(n.List, bodyRootDot)
	if n.ElseList != nil {
		c.walk(n.ElseList, rootDot)
	}
}

// indexKey records the key of `index . "Key"` and `index $ "Key"`.
func (c *fieldCollector) indexKey(n *parse.CommandNode, rootDot bool) {
	if len(n.Args) < 2 {
		return
	}
	ident, ok := n.Args[0].(*parse.IdentifierNode)
	if !ok || ident.Ident != "index" || !isRootData(n.Args[1], rootDot) {
		return
	}
	var key *parse.StringNode
	if len(n.Args) > 2 {
		key, _ = n.Args[2].(*parse.StringNode)
	}
	if key == nil {
		if c.err == nil {
			c.err = fmt.Errorf("index on template data needs a string literal key: %s", n)
		}
		return
	}
	c.seen[key.Text] = struct{}{}
}

func isRootData(node parse.Node, rootDot bool) bool {
	switch n := node.(type) {
	case *parse.DotNode:
		return rootDot
	case *parse.VariableNode:
		return len(n.Ident) == 1 && n.Ident[0] == "$"
	default:
		return false
	}
}
