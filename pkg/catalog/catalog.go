// Package catalog holds the immutable content model of a guide: diagram
// node catalogs, detail catalogs and question/answer lists.
//
// Catalogs are built once, validated at construction and never mutated
// afterwards. Every diagram node's detail key resolves to exactly one
// detail record; NewDiagram refuses anything else.
package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// Color is a semantic color token ("blue", "accent", ...). Renderers map
// tokens to concrete colors.
type Color string

const (
	ColorText   Color = "text"
	ColorMuted  Color = "muted"
	ColorAccent Color = "accent"
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorOrange Color = "orange"
	ColorPurple Color = "purple"
	ColorTeal   Color = "teal"
	ColorPink   Color = "pink"
	ColorBorder Color = "border"
)

// Rect is a rectangle in diagram coordinates.
type Rect struct {
	X float64 `json:"x" yaml:"x" toml:"x"`
	Y float64 `json:"y" yaml:"y" toml:"y"`
	W float64 `json:"w" yaml:"w" toml:"w"`
	H float64 `json:"h" yaml:"h" toml:"h"`
}

// Contains reports whether (x, y) lies inside r, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Center returns the midpoint of r.
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// DiagramNode is one clickable element of a diagram.
type DiagramNode struct {
	Index     int    `json:"index" yaml:"index" toml:"index"`
	Rect      Rect   `json:"rect" yaml:"rect" toml:"rect"`
	Label     string `json:"label" yaml:"label" toml:"label"` // may contain "\n"
	SubLabel  string `json:"sub_label,omitempty" yaml:"sub_label,omitempty" toml:"sub_label"`
	Color     Color  `json:"color" yaml:"color" toml:"color"`
	DetailKey string `json:"detail" yaml:"detail" toml:"detail"`
}

// LabelLines splits the label on newlines.
func (n DiagramNode) LabelLines() []string {
	return strings.Split(n.Label, "\n")
}

// DetailRecord is the explanatory content behind a node.
type DetailRecord struct {
	Key         string   `json:"key" yaml:"key" toml:"key"`
	Name        string   `json:"name" yaml:"name" toml:"name"`
	Description string   `json:"description" yaml:"description" toml:"description"`
	Example     string   `json:"example,omitempty" yaml:"example,omitempty" toml:"example"`
	Techniques  []string `json:"techniques,omitempty" yaml:"techniques,omitempty" toml:"techniques"`
}

// HasExample reports whether the record carries an example.
func (d DetailRecord) HasExample() bool {
	return strings.TrimSpace(d.Example) != ""
}

// NodeCatalog is an ordered, index-addressable set of nodes.
type NodeCatalog struct {
	nodes   []DiagramNode
	byIndex map[int]int
}

// NewNodeCatalog builds a catalog, rejecting duplicate indices. Nodes keep
// their given order; the index is the identity, not the position.
func NewNodeCatalog(diagram string, nodes ...DiagramNode) (NodeCatalog, error) {
	c := NodeCatalog{
		nodes:   make([]DiagramNode, len(nodes)),
		byIndex: make(map[int]int, len(nodes)),
	}
	copy(c.nodes, nodes)
	for pos, n := range c.nodes {
		if _, dup := c.byIndex[n.Index]; dup {
			return NodeCatalog{}, &DuplicateIndexError{Diagram: diagram, Index: n.Index}
		}
		c.byIndex[n.Index] = pos
	}
	return c, nil
}

// Len returns the number of nodes.
func (c NodeCatalog) Len() int {
	return len(c.nodes)
}

// Nodes returns a copy of the nodes in catalog order.
func (c NodeCatalog) Nodes() []DiagramNode {
	out := make([]DiagramNode, len(c.nodes))
	copy(out, c.nodes)
	return out
}

// Node returns the node with the given index.
func (c NodeCatalog) Node(index int) (DiagramNode, bool) {
	pos, ok := c.byIndex[index]
	if !ok {
		return DiagramNode{}, false
	}
	return c.nodes[pos], true
}

// Indices returns node indices in ascending order.
func (c NodeCatalog) Indices() []int {
	out := make([]int, 0, len(c.nodes))
	for _, n := range c.nodes {
		out = append(out, n.Index)
	}
	sort.Ints(out)
	return out
}

// DetailCatalog maps detail keys to records.
type DetailCatalog struct {
	records map[string]DetailRecord
	order   []string
}

// NewDetailCatalog builds a catalog, rejecting duplicate or empty keys.
func NewDetailCatalog(diagram string, records ...DetailRecord) (DetailCatalog, error) {
	c := DetailCatalog{
		records: make(map[string]DetailRecord, len(records)),
		order:   make([]string, 0, len(records)),
	}
	for _, r := range records {
		if r.Key == "" {
			return DetailCatalog{}, fmt.Errorf("diagram %q: detail record %q has no key", diagram, r.Name)
		}
		if _, dup := c.records[r.Key]; dup {
			return DetailCatalog{}, &DuplicateKeyError{Scope: "diagram " + diagram + " details", Key: r.Key}
		}
		r.Techniques = append([]string(nil), r.Techniques...)
		c.records[r.Key] = r
		c.order = append(c.order, r.Key)
	}
	return c, nil
}

// Len returns the number of records.
func (c DetailCatalog) Len() int {
	return len(c.records)
}

// Lookup returns the record for key.
func (c DetailCatalog) Lookup(key string) (DetailRecord, bool) {
	r, ok := c.records[key]
	if !ok {
		return DetailRecord{}, false
	}
	r.Techniques = append([]string(nil), r.Techniques...)
	return r, true
}

// Keys returns record keys in construction order.
func (c DetailCatalog) Keys() []string {
	return append([]string(nil), c.order...)
}
