package core

import "github.com/branflake2267/docs-sub001/schema"

// ClassIndex is a name-keyed lookup over the classes of one corpus.
// Ignored classes are indexed so they can be looked up; callers decide
// whether to count them.
type ClassIndex struct {
	byName  map[string]int
	classes []schema.ClassRecord
}

// Lookup returns the class with the given name.
func (ix *ClassIndex) Lookup(name string) (schema.ClassRecord, bool) {
	i, ok := ix.byName[name]
	if !ok {
		return schema.ClassRecord{}, false
	}
	return ix.classes[i], true
}

// Classes returns the indexed classes in document order.
func (ix *ClassIndex) Classes() []schema.ClassRecord {
	return ix.classes
}

// Len returns the number of indexed classes.
func (ix *ClassIndex) Len() int {
	return len(ix.classes)
}

// NewClassIndex indexes a class list with default options and no logging.
func NewClassIndex(classes []schema.ClassRecord) *ClassIndex {
	return newDiffer(DefaultOptions()).indexClasses(classes)
}

// indexClasses builds the index. Excluded names are skipped silently, unnamed
// classes and later duplicates are skipped with a warning.
func (d *differ) indexClasses(classes []schema.ClassRecord) *ClassIndex {
	ix := &ClassIndex{
		byName:  make(map[string]int, len(classes)),
		classes: make([]schema.ClassRecord, 0, len(classes)),
	}
	for _, c := range classes {
		if !c.Named {
			d.warn(schema.MissingNameWarning, scope{}, "", "class without a name skipped")
			continue
		}
		if d.opts.excluded(c.Name) {
			continue
		}
		if _, dup := ix.byName[c.Name]; dup {
			d.warn(schema.DuplicateClassWarning, scope{class: c.Name}, "", "duplicate class dropped")
			continue
		}
		ix.byName[c.Name] = len(ix.classes)
		ix.classes = append(ix.classes, c)
	}
	return ix
}
