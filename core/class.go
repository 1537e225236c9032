package core

import "github.com/branflake2267/docs-sub001/schema"

// diffClass compares one class present in both corpora across every
// configured category. It returns the change and whether anything changed.
func (d *differ) diffClass(oldCls, newCls schema.ClassRecord) (schema.ClassChange, bool) {
	change := schema.ClassChange{
		Name:    newCls.Name,
		Buckets: d.buckets(newCls.Fields),
	}
	if d.opts.ClassDetails {
		change.Scalars = scanScalars(oldCls.Fields, newCls.Fields, d.opts.ClassProps, d.opts.AllProps)
	}

	for _, category := range d.opts.Categories {
		cc, ok := d.diffCategory(oldCls, newCls, category)
		if ok {
			change.Categories = append(change.Categories, cc)
		}
	}

	if change.Empty() {
		return schema.ClassChange{}, false
	}
	return change, true
}

// diffCategory diffs one category of a matched class pair and counts its members.
// A category present on one side only is diffed against an empty list.
func (d *differ) diffCategory(oldCls, newCls schema.ClassRecord, category string) (schema.CategoryChange, bool) {
	oldNodes, oldOK := containerNodes(oldCls, category)
	newNodes, newOK := containerNodes(newCls, category)
	if !oldOK && !newOK {
		return schema.CategoryChange{}, false
	}
	sc := scope{class: newCls.Name, category: category}
	if oldOK != newOK {
		d.warn(schema.UnmatchedCategoryWarning, sc, "", "category present on one side only")
	}

	changes, m := d.diffNodes(sc, oldNodes, newNodes)

	for _, p := range m.pairs {
		d.summary.Total(category, d.buckets(p.new.Fields))
	}
	for _, n := range changes.Added {
		d.summary.Total(category, n.Buckets)
		d.summary.Added(category, n.Buckets)
	}
	for _, n := range changes.Modified {
		d.summary.Modified(category, n.Buckets)
	}
	for _, n := range changes.Removed {
		d.summary.Removed(category, n.Buckets)
	}

	cc := schema.CategoryChange{
		Category: category,
		Added:    changes.Added,
		Modified: changes.Modified,
		Removed:  changes.Removed,
	}
	return cc, !cc.Empty()
}

// countMembers adds the members of a class that has no counterpart to the
// category totals.
func (d *differ) countMembers(cls schema.ClassRecord) {
	for _, category := range d.opts.Categories {
		mc, ok := cls.Container(category)
		if !ok {
			continue
		}
		seen := make(map[string]struct{}, len(mc.Members))
		for _, m := range mc.Members {
			if _, dup := seen[m.Name]; dup || !m.Named {
				continue
			}
			seen[m.Name] = struct{}{}
			if !m.Ignore {
				d.summary.Total(category, d.buckets(m.Fields))
			}
		}
	}
}
