package service

import (
	"cmp"
	"slices"

	"film-service/internal/domain"
)

// byPopularity порядок: больше лайков раньше, при равенстве меньший id раньше.
func byPopularity(a, b *domain.Film) int {
	if c := cmp.Compare(len(b.Likes), len(a.Likes)); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// scored id со счетом; сортируется по убыванию счета и возрастанию id.
type scored struct {
	id    int64
	score int
}

func rankIDs(scores map[int64]int, limit int) []int64 {
	ranked := make([]scored, 0, len(scores))
	for id, score := range scores {
		ranked = append(ranked, scored{id: id, score: score})
	}
	slices.SortFunc(ranked, func(a, b scored) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}
		return cmp.Compare(a.id, b.id)
	})
	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	ids := make([]int64, 0, len(ranked))
	for _, r := range ranked {
		ids = append(ids, r.id)
	}
	return ids
}

func intersect(a, b []int64) []int64 {
	set := make(map[int64]struct{}, len(b))
	for _, id := range b {
		set[id] = struct{}{}
	}
	var out []int64
	for _, id := range a {
		if _, ok := set[id]; ok {
			out = append(out, id)
		}
	}
	return sortedUnique(out)
}

func sortedUnique(ids []int64) []int64 {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}
