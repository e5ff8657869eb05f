package store

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"film-service/internal/domain"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore реализует Store в памяти процесса. Используется для разработки и тестов.
// Все сущности хранятся в картах под одним RWMutex, id выдаются монотонными счетчиками.
// Наружу отдаются только копии.
type MemoryStore struct {
	mu     sync.RWMutex
	logger *slog.Logger

	films     map[int64]*domain.Film // Mpa, Genres и Directors хранят только id
	users     map[int64]*domain.User
	genres    map[int64]domain.Genre
	mpa       map[int64]domain.MpaRating
	directors map[int64]domain.Director

	likes   map[int64]map[int64]struct{}                // film -> users
	friends map[int64]map[int64]domain.FriendshipStatus // user -> friend -> status

	nextFilmID     int64
	nextUserID     int64
	nextDirectorID int64
}

// NewMemoryStore создает пустое хранилище со справочниками жанров и MPA.
func NewMemoryStore(logger *slog.Logger) *MemoryStore {
	s := &MemoryStore{
		logger:         logger,
		films:          make(map[int64]*domain.Film),
		users:          make(map[int64]*domain.User),
		genres:         make(map[int64]domain.Genre),
		mpa:            make(map[int64]domain.MpaRating),
		directors:      make(map[int64]domain.Director),
		likes:          make(map[int64]map[int64]struct{}),
		friends:        make(map[int64]map[int64]domain.FriendshipStatus),
		nextFilmID:     1,
		nextUserID:     1,
		nextDirectorID: 1,
	}
	for _, g := range SeedGenres {
		s.genres[g.ID] = g
	}
	for _, m := range SeedMpa {
		s.mpa[m.ID] = m
	}
	return s
}

func (s *MemoryStore) Close() error { return nil }

// --- Фильмы ---

func (s *MemoryStore) CreateFilm(ctx context.Context, film *domain.Film) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkFilmRefs(film); err != nil {
		return err
	}
	film.ID = s.nextFilmID
	s.nextFilmID++
	s.films[film.ID] = s.normalizeFilm(film)
	s.logger.DebugContext(ctx, "Film created in memory", slog.Int64("filmID", film.ID))
	return nil
}

func (s *MemoryStore) UpdateFilm(ctx context.Context, film *domain.Film) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.films[film.ID]; !ok {
		return ErrFilmNotFound
	}
	if err := s.checkFilmRefs(film); err != nil {
		return err
	}
	s.films[film.ID] = s.normalizeFilm(film)
	s.logger.DebugContext(ctx, "Film updated in memory", slog.Int64("filmID", film.ID))
	return nil
}

func (s *MemoryStore) GetFilm(ctx context.Context, id int64) (*domain.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.films[id]
	if !ok {
		return nil, ErrFilmNotFound
	}
	return s.hydrateFilm(f), nil
}

func (s *MemoryStore) GetFilmsByIDs(ctx context.Context, ids []int64) ([]*domain.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	films := make([]*domain.Film, 0, len(ids))
	for _, id := range ids {
		if f, ok := s.films[id]; ok {
			films = append(films, s.hydrateFilm(f))
		}
	}
	return films, nil
}

func (s *MemoryStore) ListFilms(ctx context.Context) ([]*domain.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	films := make([]*domain.Film, 0, len(s.films))
	for _, id := range sortedKeys(s.films) {
		films = append(films, s.hydrateFilm(s.films[id]))
	}
	return films, nil
}

func (s *MemoryStore) DeleteFilm(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.films[id]; !ok {
		return ErrFilmNotFound
	}
	delete(s.films, id)
	delete(s.likes, id)
	s.logger.DebugContext(ctx, "Film deleted from memory", slog.Int64("filmID", id))
	return nil
}

func (s *MemoryStore) FilmExists(ctx context.Context, id int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.films[id]
	return ok, nil
}

// checkFilmRefs проверяет, что MPA, жанры и режиссеры существуют. Вызывается под s.mu.
func (s *MemoryStore) checkFilmRefs(film *domain.Film) error {
	if film.Mpa != nil {
		if _, ok := s.mpa[film.Mpa.ID]; !ok {
			return ErrMpaNotFound
		}
	}
	for _, g := range film.Genres {
		if _, ok := s.genres[g.ID]; !ok {
			return ErrGenreNotFound
		}
	}
	for _, d := range film.Directors {
		if _, ok := s.directors[d.ID]; !ok {
			return ErrDirectorNotFound
		}
	}
	return nil
}

// normalizeFilm готовит копию фильма к хранению: только id ссылок, без дубликатов.
func (s *MemoryStore) normalizeFilm(film *domain.Film) *domain.Film {
	stored := &domain.Film{
		ID:          film.ID,
		Name:        film.Name,
		Description: film.Description,
		ReleaseDate: film.ReleaseDate,
		Duration:    film.Duration,
	}
	if film.Mpa != nil {
		stored.Mpa = &domain.MpaRating{ID: film.Mpa.ID}
	}
	for _, id := range uniqueSorted(film.GenreIDs()) {
		stored.Genres = append(stored.Genres, domain.Genre{ID: id})
	}
	for _, id := range uniqueSorted(film.DirectorIDs()) {
		stored.Directors = append(stored.Directors, domain.Director{ID: id})
	}
	return stored
}

// hydrateFilm собирает полную копию фильма из хранимой записи. Вызывается под s.mu.
func (s *MemoryStore) hydrateFilm(stored *domain.Film) *domain.Film {
	f := &domain.Film{
		ID:          stored.ID,
		Name:        stored.Name,
		Description: stored.Description,
		ReleaseDate: stored.ReleaseDate,
		Duration:    stored.Duration,
		Genres:      make([]domain.Genre, 0, len(stored.Genres)),
		Directors:   make([]domain.Director, 0, len(stored.Directors)),
		Likes:       sortedKeys(s.likes[stored.ID]),
	}
	if stored.Mpa != nil {
		mpa := s.mpa[stored.Mpa.ID]
		f.Mpa = &mpa
	}
	for _, g := range stored.Genres {
		f.Genres = append(f.Genres, s.genres[g.ID])
	}
	for _, d := range stored.Directors {
		if director, ok := s.directors[d.ID]; ok {
			f.Directors = append(f.Directors, director)
		}
	}
	return f
}

// --- Пользователи ---

func (s *MemoryStore) CreateUser(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user.ID = s.nextUserID
	s.nextUserID++
	userCopy := *user
	s.users[user.ID] = &userCopy
	s.logger.DebugContext(ctx, "User created in memory", slog.Int64("userID", user.ID))
	return nil
}

func (s *MemoryStore) UpdateUser(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return ErrUserNotFound
	}
	userCopy := *user
	s.users[user.ID] = &userCopy
	return nil
}

func (s *MemoryStore) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	userCopy := *u
	return &userCopy, nil
}

func (s *MemoryStore) GetUsersByIDs(ctx context.Context, ids []int64) ([]*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*domain.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			userCopy := *u
			users = append(users, &userCopy)
		}
	}
	return users, nil
}

func (s *MemoryStore) ListUsers(ctx context.Context) ([]*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*domain.User, 0, len(s.users))
	for _, id := range sortedKeys(s.users) {
		userCopy := *s.users[id]
		users = append(users, &userCopy)
	}
	return users, nil
}

func (s *MemoryStore) DeleteUser(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return ErrUserNotFound
	}
	delete(s.users, id)
	delete(s.friends, id)
	for _, edges := range s.friends {
		delete(edges, id)
	}
	for _, likers := range s.likes {
		delete(likers, id)
	}
	s.logger.DebugContext(ctx, "User deleted from memory with likes and friendships", slog.Int64("userID", id))
	return nil
}

func (s *MemoryStore) UserExists(ctx context.Context, id int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.users[id]
	return ok, nil
}

// --- Лайки ---

func (s *MemoryStore) AddLike(ctx context.Context, filmID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.films[filmID]; !ok {
		return ErrFilmNotFound
	}
	if _, ok := s.users[userID]; !ok {
		return ErrUserNotFound
	}
	likers, ok := s.likes[filmID]
	if !ok {
		likers = make(map[int64]struct{})
		s.likes[filmID] = likers
	}
	if _, exists := likers[userID]; exists {
		return ErrLikeAlreadyExists
	}
	likers[userID] = struct{}{}
	return nil
}

func (s *MemoryStore) RemoveLike(ctx context.Context, filmID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.likes[filmID], userID)
	return nil
}

func (s *MemoryStore) FilmLikers(ctx context.Context, filmID int64) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedKeys(s.likes[filmID]), nil
}

func (s *MemoryStore) UserLikes(ctx context.Context, userID int64) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var filmIDs []int64
	for filmID, likers := range s.likes {
		if _, ok := likers[userID]; ok {
			filmIDs = append(filmIDs, filmID)
		}
	}
	slices.Sort(filmIDs)
	return filmIDs, nil
}

func (s *MemoryStore) LikeCounts(ctx context.Context) (map[int64]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[int64]int, len(s.likes))
	for filmID, likers := range s.likes {
		if len(likers) > 0 {
			counts[filmID] = len(likers)
		}
	}
	return counts, nil
}

// --- Дружба ---

func (s *MemoryStore) AddFriendship(ctx context.Context, f domain.Friendship) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkUsers(f.UserID, f.FriendID); err != nil {
		return err
	}
	if _, exists := s.friends[f.UserID][f.FriendID]; exists {
		return ErrFriendshipAlreadyExists
	}
	s.setEdge(f)
	return nil
}

func (s *MemoryStore) UpsertFriendship(ctx context.Context, f domain.Friendship) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkUsers(f.UserID, f.FriendID); err != nil {
		return err
	}
	s.setEdge(f)
	return nil
}

func (s *MemoryStore) GetFriendship(ctx context.Context, userID, friendID int64) (*domain.Friendship, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status, ok := s.friends[userID][friendID]
	if !ok {
		return nil, ErrFriendshipNotFound
	}
	return &domain.Friendship{UserID: userID, FriendID: friendID, Status: status}, nil
}

func (s *MemoryStore) DeleteFriendship(ctx context.Context, userID, friendID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.friends[userID], friendID)
	return nil
}

func (s *MemoryStore) OutgoingFriendships(ctx context.Context, userID int64) ([]domain.Friendship, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	edges := s.friends[userID]
	result := make([]domain.Friendship, 0, len(edges))
	for _, friendID := range sortedKeys(edges) {
		result = append(result, domain.Friendship{UserID: userID, FriendID: friendID, Status: edges[friendID]})
	}
	return result, nil
}

func (s *MemoryStore) IncomingFriendships(ctx context.Context, userID int64) ([]domain.Friendship, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.Friendship
	for _, fromID := range sortedKeys(s.friends) {
		if status, ok := s.friends[fromID][userID]; ok {
			result = append(result, domain.Friendship{UserID: fromID, FriendID: userID, Status: status})
		}
	}
	return result, nil
}

func (s *MemoryStore) checkUsers(ids ...int64) error {
	for _, id := range ids {
		if _, ok := s.users[id]; !ok {
			return ErrUserNotFound
		}
	}
	return nil
}

func (s *MemoryStore) setEdge(f domain.Friendship) {
	edges, ok := s.friends[f.UserID]
	if !ok {
		edges = make(map[int64]domain.FriendshipStatus)
		s.friends[f.UserID] = edges
	}
	edges[f.FriendID] = f.Status
}

// --- Справочники ---

func (s *MemoryStore) ListGenres(ctx context.Context) ([]domain.Genre, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	genres := make([]domain.Genre, 0, len(s.genres))
	for _, id := range sortedKeys(s.genres) {
		genres = append(genres, s.genres[id])
	}
	return genres, nil
}

func (s *MemoryStore) GetGenre(ctx context.Context, id int64) (*domain.Genre, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.genres[id]
	if !ok {
		return nil, ErrGenreNotFound
	}
	return &g, nil
}

func (s *MemoryStore) ListMpa(ctx context.Context) ([]domain.MpaRating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ratings := make([]domain.MpaRating, 0, len(s.mpa))
	for _, id := range sortedKeys(s.mpa) {
		ratings = append(ratings, s.mpa[id])
	}
	return ratings, nil
}

func (s *MemoryStore) GetMpa(ctx context.Context, id int64) (*domain.MpaRating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.mpa[id]
	if !ok {
		return nil, ErrMpaNotFound
	}
	return &m, nil
}

func (s *MemoryStore) ListDirectors(ctx context.Context) ([]domain.Director, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	directors := make([]domain.Director, 0, len(s.directors))
	for _, id := range sortedKeys(s.directors) {
		directors = append(directors, s.directors[id])
	}
	return directors, nil
}

func (s *MemoryStore) GetDirector(ctx context.Context, id int64) (*domain.Director, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.directors[id]
	if !ok {
		return nil, ErrDirectorNotFound
	}
	return &d, nil
}

func (s *MemoryStore) CreateDirector(ctx context.Context, director *domain.Director) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	director.ID = s.nextDirectorID
	s.nextDirectorID++
	s.directors[director.ID] = *director
	return nil
}

func (s *MemoryStore) UpdateDirector(ctx context.Context, director *domain.Director) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.directors[director.ID]; !ok {
		return ErrDirectorNotFound
	}
	s.directors[director.ID] = *director
	return nil
}

func (s *MemoryStore) DeleteDirector(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.directors[id]; !ok {
		return ErrDirectorNotFound
	}
	delete(s.directors, id)
	for _, f := range s.films {
		f.Directors = slices.DeleteFunc(f.Directors, func(d domain.Director) bool { return d.ID == id })
	}
	return nil
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func uniqueSorted(ids []int64) []int64 {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}
