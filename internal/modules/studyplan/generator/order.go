package generator

import (
	"sort"

	types "github.com/yungbote/studyguide-backend/internal/domain"
)

// SortTopics returns a copy ordered high priority first, easier topics first
// within a priority. Ties keep their original order.
func SortTopics(topics []types.Topic) []types.Topic {
	out := make([]types.Topic, len(topics))
	copy(out, topics)
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := out[i].Priority.Rank(), out[j].Priority.Rank()
		if pi != pj {
			return pi < pj
		}
		return out[i].Difficulty.Rank() < out[j].Difficulty.Rank()
	})
	return out
}
