package domain

import (
	"sort"
	"time"
)

type RunConfig struct {
	Source      string
	Out         string
	Concurrency int
}

// WalkError records a path the tree walk could not read.
type WalkError struct {
	Path string
	Err  error
}

type Report struct {
	RunID       string
	Source      string
	Out         string
	Concurrency int
	Outcomes    []CopyOutcome
	WalkErrors  []WalkError
	Cancelled   bool
	StartedAt   time.Time
	FinishedAt  time.Time
}

func (r Report) Count(status Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}

// Problems returns every outcome that was not a success, ordered by source path.
func (r Report) Problems() []CopyOutcome {
	var out []CopyOutcome
	for _, o := range r.Outcomes {
		if o.Status != StatusSuccess {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Entry.Path < out[j].Entry.Path
	})
	return out
}

type BucketCount struct {
	Name  string
	Files int
}

// Buckets counts successful copies per extension, sorted by name. The
// extensionless bucket is reported with an empty name.
func (r Report) Buckets() []BucketCount {
	counts := map[string]int{}
	for _, o := range r.Outcomes {
		if o.Status == StatusSuccess {
			counts[o.Entry.Ext]++
		}
	}
	buckets := make([]BucketCount, 0, len(counts))
	for name, n := range counts {
		buckets = append(buckets, BucketCount{Name: name, Files: n})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Name < buckets[j].Name
	})
	return buckets
}

func (r Report) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
