package main

import (
	"sort"
	"time"
)

const day = 24 * time.Hour

// Storage tiers, named after the S3 storage classes they are uploaded with.
const (
	TierStandard    = "STANDARD"
	TierStandardIA  = "STANDARD_IA"
	TierGlacier     = "GLACIER"
	TierDeepArchive = "DEEP_ARCHIVE"
)

// RetentionPolicy maps a storage tier to the minimum interval between two uploads of the
// same object. The zero value supports no tier at all.
type RetentionPolicy struct {
	intervals map[string]time.Duration
}

func NewRetentionPolicy(intervals map[string]time.Duration) RetentionPolicy {
	copied := make(map[string]time.Duration, len(intervals))
	for tier, interval := range intervals {
		copied[tier] = interval
	}
	return RetentionPolicy{intervals: copied}
}

func DefaultRetentionPolicy() RetentionPolicy {
	return NewRetentionPolicy(map[string]time.Duration{
		TierStandard:    1 * day,
		TierStandardIA:  30 * day,
		TierGlacier:     90 * day,
		TierDeepArchive: 180 * day,
	})
}

// Interval returns false for tiers the policy does not know about. Callers must skip the
// target in that case instead of picking a default.
func (p RetentionPolicy) Interval(tier string) (time.Duration, bool) {
	interval, ok := p.intervals[tier]
	return interval, ok
}

// Tiers lists the supported tiers ordered by increasing interval.
func (p RetentionPolicy) Tiers() []string {
	tiers := make([]string, 0, len(p.intervals))
	for tier := range p.intervals {
		tiers = append(tiers, tier)
	}
	sort.Slice(tiers, func(i, j int) bool {
		return p.intervals[tiers[i]] < p.intervals[tiers[j]]
	})
	return tiers
}
