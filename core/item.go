package core

import (
	"reflect"

	"github.com/branflake2267/docs-sub001/schema"
)

// scanScalars compares the listed properties in order and returns the
// differences. Unless all is set only the first difference is returned.
// A property present on one side only is a difference; so is a null
// against an absent value.
func scanScalars(old, new map[string]any, props []string, all bool) []schema.ScalarChange {
	var out []schema.ScalarChange
	for _, prop := range props {
		ov, oldOK := old[prop]
		nv, newOK := new[prop]
		if oldOK == newOK && reflect.DeepEqual(ov, nv) {
			continue
		}
		out = append(out, schema.ScalarChange{
			Property:  prop,
			Old:       ov,
			New:       nv,
			OldAbsent: !oldOK,
			NewAbsent: !newOK,
		})
		if !all {
			break
		}
	}
	return out
}

// leaf builds an added or removed node.
func (d *differ) leaf(kind schema.ChangeKind, n Node) schema.ChangeNode {
	return schema.ChangeNode{Kind: kind, Name: n.Name, Buckets: d.buckets(n.Fields)}
}

// diffPair compares one matched pair and returns a modified node when the
// pair carries a scalar change or a nested change.
func (d *differ) diffPair(sc scope, p nodePair) (schema.ChangeNode, bool) {
	node := schema.ChangeNode{
		Kind:    schema.ModifiedKind,
		Name:    p.new.Name,
		Buckets: d.buckets(p.new.Fields),
		Scalars: scanScalars(p.old.Fields, p.new.Fields, d.opts.MemberProps, d.opts.AllProps),
	}
	if p.old.HasChildren || p.new.HasChildren {
		children, _ := d.diffNodes(sc.child(p.new.Name), p.old.Children, p.new.Children)
		if !children.Empty() {
			node.Children = &children
		}
	}
	if len(node.Scalars) == 0 && node.Children == nil {
		return schema.ChangeNode{}, false
	}
	return node, true
}

// diffNodes matches two sibling lists and diffs every matched pair. The
// match result is returned so callers can count the partition.
func (d *differ) diffNodes(sc scope, old, new []Node) (schema.ChildChanges, matchResult) {
	m := d.match(sc, old, new)

	var out schema.ChildChanges
	for _, n := range m.added {
		out.Added = append(out.Added, d.leaf(schema.AddedKind, n))
	}
	for _, p := range m.pairs {
		if node, changed := d.diffPair(sc, p); changed {
			out.Modified = append(out.Modified, node)
		}
	}
	for _, o := range m.removed {
		out.Removed = append(out.Removed, d.leaf(schema.RemovedKind, o))
	}
	return out, m
}
