package core

import (
	"github.com/branflake2267/docs-sub001/schema"
)

// Node is the uniform shape diffed at every depth: class members and their
// nested items both adapt to it.
type Node struct {
	Name        string
	Named       bool
	Ignored     bool
	Fields      map[string]any
	Children    []Node
	HasChildren bool
}

// memberNodes adapts a member list, including every nested level, to nodes.
func memberNodes(members []schema.MemberRecord) []Node {
	if members == nil {
		return nil
	}
	nodes := make([]Node, len(members))
	for i, m := range members {
		nodes[i] = Node{
			Name:        m.Name,
			Named:       m.Named,
			Ignored:     m.Ignore,
			Fields:      m.Fields,
			Children:    memberNodes(m.Items),
			HasChildren: m.HasItems,
		}
	}
	return nodes
}

// containerNodes returns the nodes of one category of a class and whether the category exists.
func containerNodes(c schema.ClassRecord, category string) ([]Node, bool) {
	mc, ok := c.Container(category)
	if !ok {
		return nil, false
	}
	return memberNodes(mc.Members), true
}
