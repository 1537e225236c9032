package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/branflake2267/docs-sub001/schema"
)

// LoadCorpus reads and parses one corpus document.
func LoadCorpus(path string) ([]schema.ClassRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &schema.InputError{Path: path, Err: err}
	}
	return ParseCorpus(data, path)
}

// ParseCorpus parses a corpus document. The document is either a class list
// or an object holding the list under "classes". The path only names the
// document in errors.
func ParseCorpus(data []byte, path string) ([]schema.ClassRecord, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, &schema.InputError{Path: path, Err: fmt.Errorf("%w: empty document", schema.ErrInvalidDocument)}
	}

	switch trimmed[0] {
	case '[':
		var classes []schema.ClassRecord
		if err := json.Unmarshal(trimmed, &classes); err != nil {
			return nil, &schema.InputError{Path: path, Err: err}
		}
		return classes, nil
	case '{':
		var wrapper struct {
			Classes *[]schema.ClassRecord `json:"classes"`
		}
		if err := json.Unmarshal(trimmed, &wrapper); err != nil {
			return nil, &schema.InputError{Path: path, Err: err}
		}
		if wrapper.Classes == nil {
			return nil, &schema.InputError{Path: path, Err: fmt.Errorf("%w: missing classes list", schema.ErrInvalidDocument)}
		}
		return *wrapper.Classes, nil
	default:
		return nil, &schema.InputError{Path: path, Err: fmt.Errorf("%w: expected a class list", schema.ErrInvalidDocument)}
	}
}
