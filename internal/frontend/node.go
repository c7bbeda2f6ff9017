package frontend

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/Kryft-Studios/parsee/extraction"
)

// Node is a view over one syntax tree node. The zero value is invalid and
// every accessor on it reports absence rather than panicking.
type Node struct {
	n      *sitter.Node
	source []byte
}

// Valid reports whether the node refers to an actual tree node.
func (nd Node) Valid() bool {
	return nd.n != nil
}

// Kind returns the grammar kind tag, or "" for an invalid node.
func (nd Node) Kind() string {
	if nd.n == nil {
		return ""
	}
	return nd.n.Kind()
}

// Text returns the raw source text covered by the node.
func (nd Node) Text() string {
	if nd.n == nil {
		return ""
	}
	start, end := nd.n.StartByte(), nd.n.EndByte()
	if int(end) > len(nd.source) || start > end {
		return ""
	}
	return string(nd.source[start:end])
}

// TrimmedText returns the node text with surrounding whitespace removed.
func (nd Node) TrimmedText() string {
	return strings.TrimSpace(nd.Text())
}

// Position converts the node's byte range to a 1-based line range.
func (nd Node) Position() *extraction.Position {
	if nd.n == nil {
		return nil
	}
	start := nd.n.StartPosition()
	end := nd.n.EndPosition()
	return &extraction.Position{
		StartLine: int(start.Row) + 1,
		StartCol:  int(start.Column),
		EndLine:   int(end.Row) + 1,
		EndCol:    int(end.Column),
	}
}

// Field looks up a grammar field, e.g. "name" or "return_type".
func (nd Node) Field(name string) (Node, bool) {
	if nd.n == nil {
		return Node{}, false
	}
	child := nd.n.ChildByFieldName(name)
	if child == nil {
		return Node{}, false
	}
	return Node{n: child, source: nd.source}, true
}

// FieldText returns the trimmed text of a grammar field.
func (nd Node) FieldText(name string) (string, bool) {
	child, ok := nd.Field(name)
	if !ok {
		return "", false
	}
	return child.TrimmedText(), true
}

// Children returns all children, tokens included.
func (nd Node) Children() []Node {
	if nd.n == nil {
		return nil
	}
	count := int(nd.n.ChildCount())
	children := make([]Node, 0, count)
	for i := 0; i < count; i++ {
		child := nd.n.Child(uint(i))
		if child == nil {
			continue
		}
		children = append(children, Node{n: child, source: nd.source})
	}
	return children
}

// NamedChildren returns the named (non-token) children.
func (nd Node) NamedChildren() []Node {
	if nd.n == nil {
		return nil
	}
	count := int(nd.n.NamedChildCount())
	children := make([]Node, 0, count)
	for i := 0; i < count; i++ {
		child := nd.n.NamedChild(uint(i))
		if child == nil {
			continue
		}
		children = append(children, Node{n: child, source: nd.source})
	}
	return children
}

// FirstOfKind returns the first direct child matching any of the kinds.
func (nd Node) FirstOfKind(kinds ...string) (Node, bool) {
	for _, child := range nd.Children() {
		for _, kind := range kinds {
			if child.Kind() == kind {
				return child, true
			}
		}
	}
	return Node{}, false
}

// AllOfKind returns every direct child of the given kind.
func (nd Node) AllOfKind(kind string) []Node {
	var matches []Node
	for _, child := range nd.Children() {
		if child.Kind() == kind {
			matches = append(matches, child)
		}
	}
	return matches
}

// HasChild reports whether a direct child of the given kind exists. It
// doubles as the modifier query: static, readonly, async, abstract and
// friends appear as children with their keyword as the kind tag.
func (nd Node) HasChild(kind string) bool {
	_, ok := nd.FirstOfKind(kind)
	return ok
}

// Parent returns the enclosing node.
func (nd Node) Parent() (Node, bool) {
	if nd.n == nil {
		return Node{}, false
	}
	parent := nd.n.Parent()
	if parent == nil {
		return Node{}, false
	}
	return Node{n: parent, source: nd.source}, true
}

// PrevSibling returns the preceding sibling, tokens included.
func (nd Node) PrevSibling() (Node, bool) {
	if nd.n == nil {
		return Node{}, false
	}
	prev := nd.n.PrevSibling()
	if prev == nil {
		return Node{}, false
	}
	return Node{n: prev, source: nd.source}, true
}

// StartByte returns the starting byte offset within the source unit.
func (nd Node) StartByte() uint {
	if nd.n == nil {
		return 0
	}
	return nd.n.StartByte()
}

// EndByte returns the ending byte offset within the source unit.
func (nd Node) EndByte() uint {
	if nd.n == nil {
		return 0
	}
	return nd.n.EndByte()
}

// TextBetween returns the raw source text between two byte offsets,
// clamped to the source bounds.
func (nd Node) TextBetween(start, end uint) string {
	if nd.source == nil || start >= end || int(end) > len(nd.source) {
		return ""
	}
	return string(nd.source[start:end])
}

// DocComment returns the JSDoc block immediately preceding the node. When
// the node sits inside an export statement the comment precedes the export
// statement instead, so the lookup hops to the parent.
func (nd Node) DocComment() (string, bool) {
	if prev, ok := nd.PrevSibling(); ok && prev.Kind() == "comment" {
		if text := prev.TrimmedText(); strings.HasPrefix(text, "/**") {
			return text, true
		}
	}
	if parent, ok := nd.Parent(); ok && parent.Kind() == "export_statement" {
		if prev, ok := parent.PrevSibling(); ok && prev.Kind() == "comment" {
			if text := prev.TrimmedText(); strings.HasPrefix(text, "/**") {
				return text, true
			}
		}
	}
	return "", false
}
