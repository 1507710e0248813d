package probe

import "github.com/jonesrussell/north-cloud/seo-monitor/internal/domain"

// DetectBacklinkChanges compares a fresh scrape with the tracked set. Links are
// keyed by referring domain and source URL, so the same domain with another
// URL is a distinct link. Output order follows the input order.
func DetectBacklinkChanges(current, previous []domain.BacklinkRef) domain.BacklinkChanges {
	prevKeys := make(map[string]struct{}, len(previous))
	for _, p := range previous {
		prevKeys[p.Key()] = struct{}{}
	}
	currKeys := make(map[string]struct{}, len(current))
	for _, c := range current {
		currKeys[c.Key()] = struct{}{}
	}

	changes := domain.BacklinkChanges{
		New:           []domain.BacklinkRef{},
		Lost:          []domain.BacklinkRef{},
		Unchanged:     []domain.BacklinkRef{},
		Total:         len(current),
		PreviousTotal: len(previous),
	}
	for _, c := range current {
		if _, seen := prevKeys[c.Key()]; seen {
			changes.Unchanged = append(changes.Unchanged, c)
		} else {
			changes.New = append(changes.New, c)
		}
	}
	for _, p := range previous {
		if _, kept := currKeys[p.Key()]; !kept {
			changes.Lost = append(changes.Lost, p)
		}
	}
	return changes
}
