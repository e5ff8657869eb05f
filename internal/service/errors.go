package service

import (
	"errors"
	"fmt"

	"film-service/internal/store"
	"film-service/internal/validation"

	"github.com/go-playground/validator/v10"
)

// Виды ошибок сервисного слоя. Проверяются через errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrValidation   = errors.New("validation failed")
	ErrStorage      = errors.New("storage failure")
)

// Error ошибка сервиса: вид, сообщение для клиента и исходная причина.
type Error struct {
	Kind    error
	Message string
	Fields  map[string]string // только для ErrValidation
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func notFound(format string, args ...any) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func invalidState(format string, args ...any) error {
	return &Error{Kind: ErrInvalidState, Message: fmt.Sprintf(format, args...)}
}

func invalid(format string, args ...any) error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

func storageFailure(err error) error {
	return &Error{Kind: ErrStorage, Message: "storage failure", Err: err}
}

// validateStruct прогоняет теги validate и возвращает ErrValidation с картой полей.
func validateStruct(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	fields := validation.Fields(err)
	if fields == nil {
		return &Error{Kind: ErrValidation, Message: "некорректные данные", Err: err}
	}
	return &Error{Kind: ErrValidation, Message: validation.Message(fields), Fields: fields}
}

// fromStore переводит ошибки хранилища, для которых вызывающий код не знает контекста.
func fromStore(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrFilmNotFound):
		return notFound("Фильм не найден")
	case errors.Is(err, store.ErrUserNotFound):
		return notFound("Пользователь не найден")
	case errors.Is(err, store.ErrGenreNotFound):
		return notFound("Жанр не найден")
	case errors.Is(err, store.ErrMpaNotFound):
		return notFound("Рейтинг MPA не найден")
	case errors.Is(err, store.ErrDirectorNotFound):
		return notFound("Режиссер не найден")
	case errors.Is(err, store.ErrFriendshipNotFound):
		return notFound("Заявка в друзья не найдена")
	case errors.Is(err, store.ErrLikeAlreadyExists):
		return invalidState("Лайк уже поставлен")
	case errors.Is(err, store.ErrFriendshipAlreadyExists):
		return invalidState("Заявка в друзья уже существует")
	default:
		return storageFailure(err)
	}
}
