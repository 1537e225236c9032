package schema

// Deprecation markers recognized on classes and members.
var deprecationMarkers = []string{"deprecated", "deprecatedVersion", "deprecatedMessage"}

// Matches reports whether a record with the given raw fields belongs to the bucket.
func (b Bucket) Matches(fields map[string]any) bool {
	switch b {
	case AllBucket:
		return true
	case PrivateBucket:
		return fields["access"] == "private"
	case ProtectedBucket:
		return fields["access"] == "protected"
	case DeprecatedBucket:
		for _, key := range deprecationMarkers {
			if Truthy(fields[key]) {
				return true
			}
		}
		return false
	case StaticBucket:
		return Truthy(fields["static"])
	case RemovedBucket:
		return Truthy(fields["removedVersion"])
	default:
		return false
	}
}

// ClassifyBuckets returns the configured buckets the record belongs to, in configured order.
// AllBucket is implied and never returned.
func ClassifyBuckets(fields map[string]any, configured []Bucket) []Bucket {
	var out []Bucket
	for _, b := range configured {
		if b == AllBucket {
			continue
		}
		if b.Matches(fields) {
			out = append(out, b)
		}
	}
	return out
}

// AnyBucket reports whether any of the tags is in the given set.
func AnyBucket(tags []Bucket, set []Bucket) bool {
	for _, t := range tags {
		for _, s := range set {
			if t == s {
				return true
			}
		}
	}
	return false
}
