package domain

// Film основная доменная модель фильма.
type Film struct {
	ID          int64      `json:"id" db:"id"`
	Name        string     `json:"name" db:"name" validate:"notblank,max=255"`
	Description string     `json:"description" db:"description" validate:"max=200"`
	ReleaseDate Date       `json:"releaseDate" db:"release_date" validate:"required,releasedate"`
	Duration    int        `json:"duration" db:"duration" validate:"gt=0"`
	Mpa         *MpaRating `json:"mpa,omitempty" db:"-"`
	Genres      []Genre    `json:"genres" db:"-"`
	Directors   []Director `json:"directors" db:"-"`
	Likes       []int64    `json:"likes" db:"-"` // id пользователей, поставивших лайк, по возрастанию
}

// Clone возвращает глубокую копию фильма.
func (f *Film) Clone() *Film {
	if f == nil {
		return nil
	}
	c := *f
	if f.Mpa != nil {
		mpa := *f.Mpa
		c.Mpa = &mpa
	}
	c.Genres = append([]Genre(nil), f.Genres...)
	c.Directors = append([]Director(nil), f.Directors...)
	c.Likes = append([]int64(nil), f.Likes...)
	return &c
}

// LikeCount количество уникальных лайков.
func (f *Film) LikeCount() int {
	return len(f.Likes)
}

// GenreIDs возвращает id жанров фильма в исходном порядке.
func (f *Film) GenreIDs() []int64 {
	ids := make([]int64, 0, len(f.Genres))
	for _, g := range f.Genres {
		ids = append(ids, g.ID)
	}
	return ids
}

// DirectorIDs возвращает id режиссеров фильма в исходном порядке.
func (f *Film) DirectorIDs() []int64 {
	ids := make([]int64, 0, len(f.Directors))
	for _, d := range f.Directors {
		ids = append(ids, d.ID)
	}
	return ids
}
