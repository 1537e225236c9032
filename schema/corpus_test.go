package schema

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassRecordUnmarshal(t *testing.T) {
	data := `{
		"name": "Ext.Panel",
		"$type": "class",
		"extends": "Ext.Container",
		"items": [
			{"$type": "methods", "items": [
				{"name": "show", "access": "public", "items": [{"name": "config", "type": "Object"}]},
				{"name": "hide"},
				{"type": "String"},
				"garbage"
			]},
			{"$type": "configs", "items": []},
			{"items": [{"name": "orphan"}]}
		]
	}`

	var c ClassRecord
	require.NoError(t, json.Unmarshal([]byte(data), &c))

	assert.Equal(t, "Ext.Panel", c.Name)
	assert.True(t, c.Named)
	assert.True(t, c.IsClass())
	assert.False(t, c.Ignore)
	assert.Equal(t, "Ext.Container", c.Fields["extends"])
	require.Len(t, c.Containers, 2, "container without a category is dropped")

	methods, ok := c.Container("methods")
	require.True(t, ok)
	require.Len(t, methods.Members, 4)

	show := methods.Members[0]
	assert.Equal(t, "show", show.Name)
	assert.True(t, show.HasItems)
	require.Len(t, show.Items, 1)
	assert.Equal(t, "config", show.Items[0].Name)

	hide := methods.Members[1]
	assert.False(t, hide.HasItems)

	assert.False(t, methods.Members[2].Named, "member without a name")
	assert.False(t, methods.Members[3].Named, "non-object member")

	_, ok = c.Container("events")
	assert.False(t, ok)
}

func TestClassRecordUnmarshal_NotAnObject(t *testing.T) {
	var classes []ClassRecord
	err := json.Unmarshal([]byte(`[1, 2]`), &classes)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidDocument))
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		in   any
		want bool
	}{
		{nil, false},
		{false, false},
		{true, true},
		{"", false},
		{"yes", true},
		{0.0, false},
		{1.0, true},
		{[]any{}, true},
		{map[string]any{}, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Truthy(tt.in), "Truthy(%v)", tt.in)
	}
}

func TestIgnoreFlag(t *testing.T) {
	var c ClassRecord
	require.NoError(t, json.Unmarshal([]byte(`{"name": "A", "$type": "class", "ignore": true}`), &c))
	assert.True(t, c.Ignore)

	var m MemberRecord
	require.NoError(t, json.Unmarshal([]byte(`{"name": "m", "ignore": 1}`), &m))
	assert.True(t, m.Ignore)
}
