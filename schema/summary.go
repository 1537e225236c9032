package schema

// Counts holds the counters of one category and bucket.
type Counts struct {
	Total    int `json:"total" yaml:"total"`
	Added    int `json:"added" yaml:"added"`
	Modified int `json:"modified" yaml:"modified"`
	Removed  int `json:"removed" yaml:"removed"`
}

// Add returns the element-wise sum.
func (c Counts) Add(o Counts) Counts {
	return Counts{
		Total:    c.Total + o.Total,
		Added:    c.Added + o.Added,
		Modified: c.Modified + o.Modified,
		Removed:  c.Removed + o.Removed,
	}
}

// Sub returns the element-wise difference.
func (c Counts) Sub(o Counts) Counts {
	return Counts{
		Total:    c.Total - o.Total,
		Added:    c.Added - o.Added,
		Modified: c.Modified - o.Modified,
		Removed:  c.Removed - o.Removed,
	}
}

// Changed returns the number of changes of any kind.
func (c Counts) Changed() int {
	return c.Added + c.Modified + c.Removed
}

// SummaryCounts holds category -> bucket -> counters for a run.
type SummaryCounts struct {
	Categories []string                     `json:"categories" yaml:"categories"`
	Buckets    []Bucket                     `json:"buckets" yaml:"buckets"`
	Counts     map[string]map[Bucket]Counts `json:"counts" yaml:"counts"`
}

// Get returns the counters for a category and bucket.
func (s SummaryCounts) Get(category string, bucket Bucket) Counts {
	return s.Counts[category][bucket]
}

// Visible returns the headline counters of a category: the all bucket minus
// the contribution of every excluded bucket.
// Buckets are subtracted independently, so an item in two excluded buckets is
// subtracted twice and the result can go negative. The counters therefore need
// not match the entries left by the visibility filter.
func (s SummaryCounts) Visible(category string, excluded []Bucket) Counts {
	c := s.Get(category, AllBucket)
	for _, b := range excluded {
		if b == AllBucket {
			continue
		}
		c = c.Sub(s.Get(category, b))
	}
	return c
}
