package schema

import "time"

// ScalarChange records one scalar property that differs between a matched pair.
type ScalarChange struct {
	Property  string `json:"property" yaml:"property"`
	Old       any    `json:"old,omitempty" yaml:"old,omitempty"`
	New       any    `json:"new,omitempty" yaml:"new,omitempty"`
	OldAbsent bool   `json:"old_absent,omitempty" yaml:"old_absent,omitempty"`
	NewAbsent bool   `json:"new_absent,omitempty" yaml:"new_absent,omitempty"`
}

// ChangeNode is one unit of reported difference for a member or nested item.
// Added and Removed nodes carry only a name and buckets.
type ChangeNode struct {
	Kind     ChangeKind     `json:"kind" yaml:"kind"`
	Name     string         `json:"name" yaml:"name"`
	Buckets  []Bucket       `json:"buckets,omitempty" yaml:"buckets,omitempty"`
	Scalars  []ScalarChange `json:"scalars,omitempty" yaml:"scalars,omitempty"`
	Children *ChildChanges  `json:"children,omitempty" yaml:"children,omitempty"`
}

// ChildChanges holds the partitioned changes of a nested item list.
type ChildChanges struct {
	Added    []ChangeNode `json:"added,omitempty" yaml:"added,omitempty"`
	Modified []ChangeNode `json:"modified,omitempty" yaml:"modified,omitempty"`
	Removed  []ChangeNode `json:"removed,omitempty" yaml:"removed,omitempty"`
}

// CategoryChange holds the changes of one member category of a class.
type CategoryChange struct {
	Category string       `json:"category" yaml:"category"`
	Added    []ChangeNode `json:"added,omitempty" yaml:"added,omitempty"`
	Modified []ChangeNode `json:"modified,omitempty" yaml:"modified,omitempty"`
	Removed  []ChangeNode `json:"removed,omitempty" yaml:"removed,omitempty"`
}

// ClassChange holds the changes of one class present in both corpora.
type ClassChange struct {
	Name       string           `json:"name" yaml:"name"`
	Buckets    []Bucket         `json:"buckets,omitempty" yaml:"buckets,omitempty"`
	Scalars    []ScalarChange   `json:"scalars,omitempty" yaml:"scalars,omitempty"`
	Categories []CategoryChange `json:"categories,omitempty" yaml:"categories,omitempty"`
}

// DiffResult is the full change model of a run.
type DiffResult struct {
	AddedClasses    []ChangeNode  `json:"added_classes" yaml:"added_classes"`
	RemovedClasses  []ChangeNode  `json:"removed_classes" yaml:"removed_classes"`
	ModifiedClasses []ClassChange `json:"modified_classes" yaml:"modified_classes"`
}

// Warning is a non-fatal condition found while diffing.
type Warning struct {
	Kind     WarningKind `json:"kind" yaml:"kind"`
	Class    string      `json:"class,omitempty" yaml:"class,omitempty"`
	Category string      `json:"category,omitempty" yaml:"category,omitempty"`
	Path     string      `json:"path,omitempty" yaml:"path,omitempty"`
	Message  string      `json:"message" yaml:"message"`
}

// ChangeReport is the unit that is cached, recorded and rendered.
type ChangeReport struct {
	RunID       string        `json:"run_id" yaml:"run_id"`
	OldVersion  string        `json:"old_version" yaml:"old_version"`
	NewVersion  string        `json:"new_version" yaml:"new_version"`
	GeneratedAt time.Time     `json:"generated_at" yaml:"generated_at"`
	Diff        DiffResult    `json:"diff" yaml:"diff"`
	Summary     SummaryCounts `json:"summary" yaml:"summary"`
	Warnings    []Warning     `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Scalar returns the first recorded scalar change.
func (n ChangeNode) Scalar() (ScalarChange, bool) {
	if len(n.Scalars) == 0 {
		return ScalarChange{}, false
	}
	return n.Scalars[0], true
}

// Empty reports whether no child changed.
func (c *ChildChanges) Empty() bool {
	return c == nil || len(c.Added)+len(c.Modified)+len(c.Removed) == 0
}

// Empty reports whether the category has no changes.
func (c CategoryChange) Empty() bool {
	return len(c.Added)+len(c.Modified)+len(c.Removed) == 0
}

// Empty reports whether the class has neither scalar nor category changes.
func (c ClassChange) Empty() bool {
	return len(c.Scalars) == 0 && len(c.Categories) == 0
}

// Category returns the change for a category if it has any.
func (c ClassChange) Category(name string) (CategoryChange, bool) {
	for _, cc := range c.Categories {
		if cc.Category == name {
			return cc, true
		}
	}
	return CategoryChange{}, false
}

// Empty reports whether the diff found nothing.
func (d DiffResult) Empty() bool {
	return len(d.AddedClasses)+len(d.RemovedClasses)+len(d.ModifiedClasses) == 0
}
