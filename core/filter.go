package core

import "github.com/branflake2267/docs-sub001/schema"

// VisibleReport returns a copy of the report with every class and node that
// carries an excluded bucket removed. Modified classes left without changes
// are dropped. Summary counts are kept as is; renderers derive headline
// counts with SummaryCounts.Visible.
func VisibleReport(r schema.ChangeReport, excluded []schema.Bucket) schema.ChangeReport {
	if len(excluded) == 0 {
		return r
	}
	out := r
	out.Diff = schema.DiffResult{
		AddedClasses:   filterNodes(r.Diff.AddedClasses, excluded),
		RemovedClasses: filterNodes(r.Diff.RemovedClasses, excluded),
	}
	for _, c := range r.Diff.ModifiedClasses {
		if schema.AnyBucket(c.Buckets, excluded) {
			continue
		}
		fc := schema.ClassChange{Name: c.Name, Buckets: c.Buckets, Scalars: c.Scalars}
		for _, cc := range c.Categories {
			fcc := schema.CategoryChange{
				Category: cc.Category,
				Added:    filterNodes(cc.Added, excluded),
				Modified: filterNodes(cc.Modified, excluded),
				Removed:  filterNodes(cc.Removed, excluded),
			}
			if !fcc.Empty() {
				fc.Categories = append(fc.Categories, fcc)
			}
		}
		if !fc.Empty() {
			out.Diff.ModifiedClasses = append(out.Diff.ModifiedClasses, fc)
		}
	}
	return out
}

func filterNodes(nodes []schema.ChangeNode, excluded []schema.Bucket) []schema.ChangeNode {
	var out []schema.ChangeNode
	for _, n := range nodes {
		if schema.AnyBucket(n.Buckets, excluded) {
			continue
		}
		if n.Children != nil {
			children := schema.ChildChanges{
				Added:    filterNodes(n.Children.Added, excluded),
				Modified: filterNodes(n.Children.Modified, excluded),
				Removed:  filterNodes(n.Children.Removed, excluded),
			}
			n.Children = nil
			if !children.Empty() {
				n.Children = &children
			}
			if len(n.Scalars) == 0 && n.Children == nil {
				continue
			}
		}
		out = append(out, n)
	}
	return out
}
