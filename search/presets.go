package search

import (
	"time"

	"github.com/daryllundy/gitlab-dashwatch-sub001/model"
)

// FilterPresets returns the fixed list of filter templates. Date bounds are
// computed relative to now on every call; nothing here is persisted.
func FilterPresets(now time.Time) []FilterPreset {
	minStars := 10
	return []FilterPreset{
		{
			Name:        "Active Projects",
			Description: "Projects with activity in the last 30 days",
			Filters: Filters{
				LastActivity: TimeRange{From: now.AddDate(0, 0, -30)},
			},
		},
		{
			Name:        "Popular Projects",
			Description: "Projects with at least 10 stars",
			Filters: Filters{
				Stars: IntRange{Min: &minStars},
			},
		},
		{
			Name:        "Recently Created",
			Description: "Projects created in the last 7 days",
			Filters: Filters{
				CreatedAt: TimeRange{From: now.AddDate(0, 0, -7)},
			},
		},
		{
			Name:        "Private Projects",
			Description: "Projects visible to members only",
			Filters: Filters{
				Visibility: []model.Visibility{model.VisibilityPrivate},
			},
		},
		{
			Name:        "Public Projects",
			Description: "Projects visible to everyone",
			Filters: Filters{
				Visibility: []model.Visibility{model.VisibilityPublic},
			},
		},
	}
}
