package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonesrussell/north-cloud/seo-monitor/internal/database"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/domain"
)

// PositionSnapshot is the latest measurement of a keyword.
type PositionSnapshot struct {
	Position *int      `json:"position"`
	URL      *string   `json:"url"`
	Date     time.Time `json:"date"`
}

// PositionDelta is a past measurement and the movement since. Change is
// current minus past, so a positive value is a loss of rank.
type PositionDelta struct {
	Position *int `json:"position"`
	Change   *int `json:"change"`
}

// PositionComparison lines up a keyword's latest rank against one, seven
// and thirty days ago. A nil delta means nothing was recorded that day.
type PositionComparison struct {
	KeywordID int64            `json:"keywordId"`
	Keyword   string           `json:"keyword"`
	Current   PositionSnapshot `json:"current"`
	Day1      *PositionDelta   `json:"day1"`
	Day7      *PositionDelta   `json:"day7"`
	Day30     *PositionDelta   `json:"day30"`
}

var comparisonOffsets = [...]int{1, 7, 30}

// ComparePositions compares every keyword of the site's latest execution with
// the same keyword on the calendar days 1, 7 and 30 days before today.
func (s *Service) ComparePositions(ctx context.Context, siteID int64) ([]PositionComparison, error) {
	latest, err := s.positions.LatestExecution(ctx, siteID)
	if err != nil {
		return nil, fmt.Errorf("compare positions: %w", err)
	}

	today := s.now()
	out := make([]PositionComparison, 0, len(latest))
	for _, obs := range latest {
		cmp := PositionComparison{
			KeywordID: obs.KeywordID,
			Current:   PositionSnapshot{Position: obs.Position, URL: obs.URL, Date: obs.ExecutionDate},
		}
		if obs.Keyword != nil {
			cmp.Keyword = *obs.Keyword
		}

		deltas := make([]*PositionDelta, len(comparisonOffsets))
		for i, offset := range comparisonOffsets {
			deltas[i], err = s.deltaOn(ctx, obs, today.AddDate(0, 0, -offset))
			if err != nil {
				return nil, err
			}
		}
		cmp.Day1, cmp.Day7, cmp.Day30 = deltas[0], deltas[1], deltas[2]
		out = append(out, cmp)
	}
	return out, nil
}

func (s *Service) deltaOn(ctx context.Context, current *domain.PositionObservation, day time.Time) (*PositionDelta, error) {
	past, err := s.positions.OnDay(ctx, current.SiteID, current.KeywordID, day)
	if errors.Is(err, database.ErrObservationNotFound) {
		return nil, nil //nolint:nilnil // nothing recorded that day
	}
	if err != nil {
		return nil, fmt.Errorf("compare positions: %w", err)
	}

	delta := &PositionDelta{Position: past.Position}
	if current.Position != nil && past.Position != nil {
		change := *current.Position - *past.Position
		delta.Change = &change
	}
	return delta, nil
}
