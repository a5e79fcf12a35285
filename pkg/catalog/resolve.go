package catalog

import "github.com/vanderheijden86/archguide/pkg/toggle"

// Resolve returns the detail record for the selected node. An absent
// selection resolves to nil with no error.
func Resolve(selection toggle.State[int], d *Diagram) (*DetailRecord, error) {
	index, ok := selection.Current()
	if !ok {
		return nil, nil
	}
	node, ok := d.nodes.Node(index)
	if !ok {
		return nil, &InvalidIndexError{Diagram: d.id, Index: index, Len: d.nodes.Len()}
	}
	rec, ok := d.details.Lookup(node.DetailKey)
	if !ok {
		return nil, &BrokenReferenceError{Diagram: d.id, Index: index, DetailKey: node.DetailKey}
	}
	return &rec, nil
}

// Resolve is shorthand for Resolve(selection, d).
func (d *Diagram) Resolve(selection toggle.State[int]) (*DetailRecord, error) {
	return Resolve(selection, d)
}
