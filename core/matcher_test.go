package core

import (
	"testing"

	"github.com/branflake2267/docs-sub001/schema"
	"github.com/stretchr/testify/assert"
)

func TestMatch_Partition(t *testing.T) {
	d := newDiffer(DefaultOptions())
	old := nodesFromJSON(t, `[{"name":"a"},{"name":"b"},{"name":"c"}]`)
	new := nodesFromJSON(t, `[{"name":"d"},{"name":"c"},{"name":"a"}]`)

	m := d.match(scope{class: "Ext.Foo", category: "methods"}, old, new)

	var pairs []string
	for _, p := range m.pairs {
		pairs = append(pairs, p.new.Name)
	}
	assert.Equal(t, []string{"c", "a"}, pairs, "pairs follow new order")
	assert.Equal(t, []string{"d"}, nodeNames(m.added))
	assert.Equal(t, []string{"b"}, nodeNames(m.removed))
	assert.Empty(t, d.warnings)
}

func TestMatch_DuplicatesFirstWins(t *testing.T) {
	d := newDiffer(DefaultOptions())
	old := nodesFromJSON(t, `[{"name":"a","type":"String"},{"name":"a","type":"Number"}]`)
	new := nodesFromJSON(t, `[{"name":"a","type":"Boolean"},{"name":"a","type":"String"}]`)

	m := d.match(scope{class: "Ext.Foo", category: "configs"}, old, new)

	if assert.Len(t, m.pairs, 1) {
		assert.Equal(t, "String", m.pairs[0].old.Fields["type"])
		assert.Equal(t, "Boolean", m.pairs[0].new.Fields["type"])
	}
	assert.Empty(t, m.added)
	assert.Empty(t, m.removed)
	if assert.Len(t, d.warnings, 2) {
		for _, w := range d.warnings {
			assert.Equal(t, schema.DuplicateMemberWarning, w.Kind)
			assert.Equal(t, "Ext.Foo", w.Class)
			assert.Equal(t, "configs", w.Category)
			assert.Equal(t, "a", w.Path)
		}
	}
}

func TestMatch_IgnoredItems(t *testing.T) {
	d := newDiffer(DefaultOptions())
	old := nodesFromJSON(t, `[{"name":"a"},{"name":"b","ignore":true},{"name":"c","ignore":true}]`)
	new := nodesFromJSON(t, `[{"name":"a","ignore":true},{"name":"b"},{"name":"x","ignore":true}]`)

	m := d.match(scope{}, old, new)

	// a is ignored on the new side: neither matched nor removed.
	// b is ignored on the old side only: it still matches.
	// c is ignored and missing from new: never reported as removed.
	// x is ignored and new: never reported as added.
	if assert.Len(t, m.pairs, 1) {
		assert.Equal(t, "b", m.pairs[0].new.Name)
	}
	assert.Empty(t, m.added)
	assert.Empty(t, m.removed)
	assert.Empty(t, d.warnings, "ignored items are not warnings")
}

func TestMatch_MissingName(t *testing.T) {
	d := newDiffer(DefaultOptions())
	old := nodesFromJSON(t, `[{"type":"String"},{"name":"a"}]`)
	new := nodesFromJSON(t, `[{"name":""},{"name":"a"}]`)

	m := d.match(scope{class: "Ext.Foo", category: "methods", path: "fn"}, old, new)

	assert.Len(t, m.pairs, 1)
	assert.Empty(t, m.added)
	assert.Empty(t, m.removed)
	if assert.Len(t, d.warnings, 2) {
		for _, w := range d.warnings {
			assert.Equal(t, schema.MissingNameWarning, w.Kind)
			assert.Equal(t, "fn", w.Path)
		}
	}
}

func TestScopePaths(t *testing.T) {
	sc := scope{class: "Ext.Foo", category: "methods"}
	assert.Equal(t, "show", sc.item("show"))

	nested := sc.child("show").child("options")
	assert.Equal(t, "show/options", nested.path)
	assert.Equal(t, "show/options/scope", nested.item("scope"))
	assert.Equal(t, "Ext.Foo", nested.class)
}
