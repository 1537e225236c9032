package outwriter

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	tests := []struct {
		name     string
		data     any
		expected string
	}{
		{
			name:     "object",
			data:     map[string]any{"class": "Ext.Panel", "added": 2},
			expected: "{\n  \"added\": 2,\n  \"class\": \"Ext.Panel\"\n}\n",
		},
		{
			name:     "array",
			data:     []string{"configs", "methods"},
			expected: "[\n  \"configs\",\n  \"methods\"\n]\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, writeJSON(&buf, tt.data))
			assert.Equal(t, tt.expected, buf.String())
		})
	}

	t.Run("unsupported value", func(t *testing.T) {
		err := writeJSON(&bytes.Buffer{}, make(chan int))
		assert.ErrorContains(t, err, "failed to encode JSON")
	})
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeYAML(&buf, map[string]any{"category": "methods", "added": 1}))
	assert.Equal(t, "added: 1\ncategory: methods\n", buf.String())
}

func TestWriteCSVWithHeader(t *testing.T) {
	t.Run("rows are quoted as needed", func(t *testing.T) {
		var buf bytes.Buffer
		err := writeCSVWithHeader(&buf, []string{"class", "old"}, func(w *csv.Writer) error {
			return w.Write([]string{"Ext.Panel", "a, b"})
		})
		require.NoError(t, err)
		assert.Equal(t, "class,old\nExt.Panel,\"a, b\"\n", buf.String())
	})

	t.Run("row errors propagate", func(t *testing.T) {
		err := writeCSVWithHeader(&bytes.Buffer{}, []string{"col"}, func(*csv.Writer) error {
			return assert.AnError
		})
		assert.Equal(t, assert.AnError, err)
	})
}

func TestWriteWithFile(t *testing.T) {
	t.Run("stdout", func(t *testing.T) {
		called := false
		err := writeWithFile("", func(io.Writer) error {
			called = true
			return nil
		}, "Report written")
		require.NoError(t, err)
		assert.True(t, called)
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.md")
		err := writeWithFile(path, func(w io.Writer) error {
			_, err := io.WriteString(w, "# Changes")
			return err
		}, "Report written")
		require.NoError(t, err)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "# Changes", string(content))
	})

	t.Run("writer error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.md")
		err := writeWithFile(path, func(io.Writer) error { return assert.AnError }, "Report written")
		assert.Equal(t, assert.AnError, err)
	})

	t.Run("invalid path", func(t *testing.T) {
		err := writeWithFile("/nonexistent/path/report.md", func(io.Writer) error { return nil }, "Report written")
		assert.Error(t, err)
	})
}
