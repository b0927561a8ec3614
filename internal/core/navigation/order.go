package navigation

import "sort"

// preferredOrder pins the display order of the clinic's core categories.
// Categories outside this list follow alphabetically; the fallback
// bucket always sorts last.
var preferredOrder = []string{
	"Primary Care",
	"Specialty Care",
	"Diagnostics & Imaging",
	"Rehabilitation",
	"Community Programs",
}

func sortBuckets(buckets []Bucket) {
	rank := make(map[string]int, len(preferredOrder))
	for i, name := range preferredOrder {
		rank[name] = i
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		return bucketLess(buckets[i].Name, buckets[j].Name, rank)
	})
}

func bucketLess(a, b string, rank map[string]int) bool {
	if a == FallbackBucket {
		return false
	}
	if b == FallbackBucket {
		return true
	}

	ra, aRanked := rank[a]
	rb, bRanked := rank[b]
	switch {
	case aRanked && bRanked:
		return ra < rb
	case aRanked:
		return true
	case bRanked:
		return false
	default:
		return a < b
	}
}
