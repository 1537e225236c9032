package core

import "github.com/branflake2267/docs-sub001/schema"

// nodePair is a matched old/new pair sharing a name.
type nodePair struct {
	old Node
	new Node
}

// matchResult partitions two sibling lists by name.
type matchResult struct {
	pairs   []nodePair
	added   []Node
	removed []Node
}

// match partitions old and new nodes into matched pairs, added and removed.
//
// Unnamed nodes are skipped on both sides. Within one side the first node of a
// name wins and later ones are dropped. Ignored new nodes are excluded entirely
// but still consume their old counterpart; ignored old nodes can be matched but
// are never reported as removed. Output follows new order for pairs and added,
// old order for removed.
func (d *differ) match(sc scope, old, new []Node) matchResult {
	oldIndex := make(map[string]Node, len(old))
	oldOrder := make([]string, 0, len(old))
	for _, o := range old {
		if !o.Named {
			d.warn(schema.MissingNameWarning, sc, "", "item without a name skipped")
			continue
		}
		if _, dup := oldIndex[o.Name]; dup {
			d.warn(schema.DuplicateMemberWarning, sc, o.Name, "duplicate name dropped")
			continue
		}
		oldIndex[o.Name] = o
		oldOrder = append(oldOrder, o.Name)
	}

	var res matchResult
	seen := make(map[string]struct{}, len(new))
	for _, n := range new {
		if !n.Named {
			d.warn(schema.MissingNameWarning, sc, "", "item without a name skipped")
			continue
		}
		if _, dup := seen[n.Name]; dup {
			d.warn(schema.DuplicateMemberWarning, sc, n.Name, "duplicate name dropped")
			continue
		}
		seen[n.Name] = struct{}{}
		if n.Ignored {
			d.skip(sc, n.Name)
			continue
		}
		if o, ok := oldIndex[n.Name]; ok {
			res.pairs = append(res.pairs, nodePair{old: o, new: n})
		} else {
			res.added = append(res.added, n)
		}
	}

	for _, name := range oldOrder {
		if _, consumed := seen[name]; consumed {
			continue
		}
		if o := oldIndex[name]; !o.Ignored {
			res.removed = append(res.removed, o)
		}
	}
	return res
}
