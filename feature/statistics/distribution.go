package statistics

import (
	"context"

	"member-api/core/apperror"
	"member-api/core/utils"
)

// GetDistribution sums the rating distribution of every row matching track
// and subTrack. The earliest creation and the latest update are reported.
func (s *Service) GetDistribution(ctx context.Context, track, subTrack, fields string) (Document, error) {
	selected, err := utils.ParseCommaSeparated(fields, DistributionFields)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.FindDistributions(ctx, track, subTrack)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperror.NotFound("No member distribution statistics is found.")
	}

	buckets := map[string]int64{}
	first, last := rows[0], rows[0]
	for _, row := range rows {
		for key, value := range row.Buckets {
			buckets[key] += utils.ToInt64(value)
		}
		if row.CreatedAt.Before(first.CreatedAt) {
			first = row
		}
		if row.UpdatedAt.After(last.UpdatedAt) {
			last = row
		}
	}

	doc := Document{
		"distribution": buckets,
		"createdAt":    utils.Millis(first.CreatedAt),
		"createdBy":    first.CreatedBy,
		"updatedAt":    utils.Millis(last.UpdatedAt),
		"updatedBy":    last.UpdatedBy,
	}
	if track != "" {
		doc["track"] = track
	}
	if subTrack != "" {
		doc["subTrack"] = subTrack
	}
	return FilterFields(doc, selected), nil
}
