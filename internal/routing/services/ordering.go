package services

import (
	freight "carreto-freight-api/internal/freight/models"
)

// Reconcile reorders jobs to follow orderedIDs, appending any job the
// ordering missed (in their original relative order) and dropping IDs
// that match nothing. The result always contains exactly the input jobs.
func Reconcile(jobs []*freight.FreightJob, orderedIDs []string) []*freight.FreightJob {
	byID := make(map[string]*freight.FreightJob, len(jobs))
	for _, j := range jobs {
		byID[j.ID] = j
	}
	out := make([]*freight.FreightJob, 0, len(jobs))
	seen := make(map[string]bool, len(jobs))
	for _, id := range orderedIDs {
		if j, ok := byID[id]; ok && !seen[id] {
			out = append(out, j)
			seen[id] = true
		}
	}
	for _, j := range jobs {
		if !seen[j.ID] {
			out = append(out, j)
		}
	}
	return out
}

// NextJob returns the first job still requiring a visit, or nil when the
// day is done.
func NextJob(jobs []*freight.FreightJob) *freight.FreightJob {
	for _, j := range jobs {
		if j.Status == freight.StatusPending || j.Status == freight.StatusInTransit {
			return j
		}
	}
	return nil
}
