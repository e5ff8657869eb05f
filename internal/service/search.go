package service

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"film-service/internal/domain"
	"film-service/internal/store"
)

// Поля, по которым возможен поиск.
const (
	SearchByTitle    = "title"
	SearchByDirector = "director"
)

type SearchService struct {
	films  store.FilmStore
	logger *slog.Logger
}

func NewSearchService(films store.FilmStore, logger *slog.Logger) *SearchService {
	return &SearchService{films: films, logger: logger}
}

// SearchFilms ищет подстроку query без учета регистра в названии и/или именах режиссеров.
// by: список через запятую из title и director; если ни одно не распознано, ищем по названию.
// Результат упорядочен по убыванию лайков, затем по возрастанию id. Пустой запрос находит все фильмы.
func (s *SearchService) SearchFilms(ctx context.Context, query, by string) ([]*domain.Film, error) {
	byTitle, byDirector := parseSearchFields(by)
	needle := strings.ToLower(query)

	films, err := s.films.ListFilms(ctx)
	if err != nil {
		return nil, fromStore(err)
	}

	found := make([]*domain.Film, 0, len(films))
	for _, f := range films {
		if needle == "" || (byTitle && matches(f.Name, needle)) || (byDirector && directorMatches(f, needle)) {
			found = append(found, f)
		}
	}
	slices.SortStableFunc(found, byPopularity)
	s.logger.DebugContext(ctx, "Films searched",
		slog.String("query", query),
		slog.Bool("byTitle", byTitle),
		slog.Bool("byDirector", byDirector),
		slog.Int("found", len(found)))
	return found, nil
}

func parseSearchFields(by string) (byTitle, byDirector bool) {
	for _, token := range strings.Split(by, ",") {
		switch strings.ToLower(strings.TrimSpace(token)) {
		case SearchByTitle:
			byTitle = true
		case SearchByDirector:
			byDirector = true
		}
	}
	if !byTitle && !byDirector {
		byTitle = true
	}
	return byTitle, byDirector
}

func matches(s, needle string) bool {
	return strings.Contains(strings.ToLower(s), needle)
}

func directorMatches(f *domain.Film, needle string) bool {
	for _, d := range f.Directors {
		if matches(d.Name, needle) {
			return true
		}
	}
	return false
}
