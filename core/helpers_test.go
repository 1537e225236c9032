package core

import (
	"encoding/json"
	"testing"

	"github.com/branflake2267/docs-sub001/schema"
	"github.com/stretchr/testify/require"
)

// nodesFromJSON parses a member list into nodes.
func nodesFromJSON(t *testing.T, data string) []Node {
	t.Helper()
	var members []schema.MemberRecord
	require.NoError(t, json.Unmarshal([]byte(data), &members))
	return memberNodes(members)
}

// corpusFromJSON parses a corpus document.
func corpusFromJSON(t *testing.T, data string) []schema.ClassRecord {
	t.Helper()
	classes, err := ParseCorpus([]byte(data), "inline.json")
	require.NoError(t, err)
	return classes
}

// loadFixtures loads the old and new sample corpora.
func loadFixtures(t *testing.T) (old, new []schema.ClassRecord) {
	t.Helper()
	old, err := LoadCorpus("testdata/old.json")
	require.NoError(t, err)
	new, err = LoadCorpus("testdata/new.json")
	require.NoError(t, err)
	return old, new
}

func names(nodes []schema.ChangeNode) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Name
	}
	return out
}

func nodeNames(nodes []Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Name
	}
	return out
}
