package service

import (
	"slices"
	"testing"
	"time"

	"film-service/internal/domain"
)

func TestCreateFilmReleaseDateBoundary(t *testing.T) {
	tests := []struct {
		name    string
		date    domain.Date
		wantErr bool
	}{
		{name: "first screening day", date: domain.NewDate(1895, time.December, 28)},
		{name: "day before first screening", date: domain.NewDate(1895, time.December, 27), wantErr: true},
		{name: "modern film", date: domain.NewDate(2010, time.July, 16)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			film := &domain.Film{Name: "Прибытие поезда", ReleaseDate: tt.date, Duration: 1}
			_, err := f.svc.Films.Create(f.ctx, film)
			if tt.wantErr {
				assertKind(t, err, ErrValidation)
				if films, _ := f.svc.Films.List(f.ctx); len(films) != 0 {
					t.Errorf("invalid film was stored: %+v", films)
				}
				return
			}
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
		})
	}
}

func TestUpdateFilmReleaseDateBoundary(t *testing.T) {
	f := newFixture(t)
	film := f.film("film")

	film.ReleaseDate = domain.NewDate(1895, time.December, 27)
	_, err := f.svc.Films.Update(f.ctx, film)
	assertKind(t, err, ErrValidation)

	film.ReleaseDate = domain.NewDate(1895, time.December, 28)
	updated, err := f.svc.Films.Update(f.ctx, film)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.ReleaseDate.String() != "1895-12-28" {
		t.Errorf("ReleaseDate = %s", updated.ReleaseDate)
	}
}

func TestValidationErrorCarriesFields(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Films.Create(f.ctx, &domain.Film{Name: "", ReleaseDate: domain.NewDate(2000, 1, 1), Duration: -5})
	assertKind(t, err, ErrValidation)

	var svcErr *Error
	if !errorsAs(err, &svcErr) {
		t.Fatalf("error %T is not *Error", err)
	}
	for _, field := range []string{"name", "duration"} {
		if _, ok := svcErr.Fields[field]; !ok {
			t.Errorf("Fields = %v, missing %q", svcErr.Fields, field)
		}
	}
}

func TestCreateFilmResolvesReferences(t *testing.T) {
	f := newFixture(t)
	d := f.director("Кристофер Нолан")

	created, err := f.svc.Films.Create(f.ctx, &domain.Film{
		Name:        "Начало",
		ReleaseDate: domain.NewDate(2010, time.July, 8),
		Duration:    148,
		Mpa:         &domain.MpaRating{ID: 3},
		Genres:      []domain.Genre{{ID: 6}, {ID: 4}, {ID: 6}},
		Directors:   []domain.Director{{ID: d.ID}},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.Mpa.Name != "PG-13" {
		t.Errorf("Mpa = %+v", created.Mpa)
	}
	gotGenres := []int64{}
	for _, g := range created.Genres {
		gotGenres = append(gotGenres, g.ID)
	}
	if !slices.Equal(gotGenres, []int64{4, 6}) {
		t.Errorf("genres = %v, want [4 6] (deduplicated, ascending)", gotGenres)
	}
	if len(created.Directors) != 1 || created.Directors[0].Name != "Кристофер Нолан" {
		t.Errorf("Directors = %+v", created.Directors)
	}
}

func TestCreateFilmUnknownReferences(t *testing.T) {
	tests := []struct {
		name string
		film domain.Film
	}{
		{name: "mpa", film: domain.Film{Mpa: &domain.MpaRating{ID: 42}}},
		{name: "genre", film: domain.Film{Genres: []domain.Genre{{ID: 42}}}},
		{name: "director", film: domain.Film{Directors: []domain.Director{{ID: 42}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			film := tt.film
			film.Name = "x"
			film.ReleaseDate = domain.NewDate(2000, 1, 1)
			film.Duration = 10
			_, err := f.svc.Films.Create(f.ctx, &film)
			assertKind(t, err, ErrNotFound)
		})
	}
}

func TestUpdateMissingFilm(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Films.Update(f.ctx, &domain.Film{ID: 77, Name: "x", ReleaseDate: domain.NewDate(2000, 1, 1), Duration: 1})
	assertKind(t, err, ErrNotFound)
}

func TestDeleteFilm(t *testing.T) {
	f := newFixture(t)
	film := f.film("x")
	if err := f.svc.Films.Delete(f.ctx, film.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	_, err := f.svc.Films.GetByID(f.ctx, film.ID)
	assertKind(t, err, ErrNotFound)
	assertKind(t, f.svc.Films.Delete(f.ctx, film.ID), ErrNotFound)
}

func TestDirectorCRUD(t *testing.T) {
	f := newFixture(t)
	d := f.director("Балабанов")
	film := f.film("Брат", d.ID)

	d.Name = "Алексей Балабанов"
	if _, err := f.svc.Directors.Update(f.ctx, d); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	got, _ := f.svc.Films.GetByID(f.ctx, film.ID)
	if got.Directors[0].Name != "Алексей Балабанов" {
		t.Errorf("film director name = %q, want renamed", got.Directors[0].Name)
	}

	_, err := f.svc.Directors.Create(f.ctx, &domain.Director{Name: "  "})
	assertKind(t, err, ErrValidation)

	if err := f.svc.Directors.Delete(f.ctx, d.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	_, err = f.svc.Directors.GetByID(f.ctx, d.ID)
	assertKind(t, err, ErrNotFound)
	got, _ = f.svc.Films.GetByID(f.ctx, film.ID)
	if len(got.Directors) != 0 {
		t.Errorf("deleted director still attached: %+v", got.Directors)
	}
}

func TestReferenceLookups(t *testing.T) {
	f := newFixture(t)
	genre, err := f.svc.Reference.GenreByID(f.ctx, 1)
	if err != nil || genre.Name != "Комедия" {
		t.Errorf("GenreByID(1) = %+v, %v", genre, err)
	}
	_, err = f.svc.Reference.MpaByID(f.ctx, 9)
	assertKind(t, err, ErrNotFound)
	ratings, _ := f.svc.Reference.MpaRatings(f.ctx)
	if len(ratings) != 5 {
		t.Errorf("MpaRatings() returned %d ratings", len(ratings))
	}
}

func TestCreateAndUpdateLeaveInputUntouched(t *testing.T) {
	f := newFixture(t)
	input := &domain.Film{
		Name:        "Солярис",
		ReleaseDate: domain.NewDate(1972, time.March, 20),
		Duration:    167,
		Mpa:         &domain.MpaRating{ID: 2},
		Genres:      []domain.Genre{{ID: 2}},
	}

	created, err := f.svc.Films.Create(f.ctx, input)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if input.ID != 0 || input.Mpa.Name != "" || input.Genres[0].Name != "" {
		t.Errorf("Create() modified its input: %+v", input)
	}

	update := &domain.Film{ID: created.ID, Name: "Солярис", ReleaseDate: input.ReleaseDate, Duration: 166, Mpa: &domain.MpaRating{ID: 1}}
	updated, err := f.svc.Films.Update(f.ctx, update)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if update.Mpa.Name != "" {
		t.Errorf("Update() modified its input: %+v", update.Mpa)
	}
	if updated.Mpa == nil || updated.Mpa.Name != "G" || updated.Duration != 166 {
		t.Errorf("Update() = %+v", updated)
	}
}
