package domain

// Genre жанр фильма.
type Genre struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name,omitempty" db:"name"`
}

// MpaRating возрастной рейтинг MPA.
type MpaRating struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name,omitempty" db:"name"`
	Description string `json:"description,omitempty" db:"description"`
}

// Director режиссер.
type Director struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name" validate:"notblank,max=255"`
}

// Like связь "пользователь поставил лайк фильму".
type Like struct {
	FilmID int64 `db:"film_id"`
	UserID int64 `db:"user_id"`
}
