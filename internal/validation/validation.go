// Package validation собирает валидатор go-playground с правилами предметной области.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"
	"unicode"

	"film-service/internal/domain"

	"github.com/go-playground/validator/v10"
)

// MinReleaseDate самая ранняя допустимая дата релиза (первый публичный киносеанс).
var MinReleaseDate = domain.NewDate(1895, time.December, 28)

// New создает валидатор с зарегистрированными правилами notblank, nowhitespace,
// releasedate и notfuture. Имена полей в ошибках берутся из json-тегов.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	v.RegisterCustomTypeFunc(dateValue, domain.Date{})

	rules := map[string]validator.Func{
		"notblank":     notBlank,
		"nowhitespace": noWhitespace,
		"releasedate":  notBeforeFirstScreening,
		"notfuture":    notInFuture,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("validation: register %s: %v", tag, err))
		}
	}
	return v
}

// Fields превращает ошибку валидатора в карту поле -> сообщение.
// Для ошибок другого типа возвращает nil.
func Fields(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	m := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		m[fe.Field()] = messageFor(fe)
	}
	return m
}

// Message собирает сообщения в одну строку с детерминированным порядком полей.
func Message(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fields[k])
	}
	return strings.Join(parts, "; ")
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return f.Name
	}
	return name
}

func dateValue(field reflect.Value) any {
	if d, ok := field.Interface().(domain.Date); ok {
		return d.Time
	}
	return nil
}

func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}
	return strings.TrimSpace(field.String()) != ""
}

func noWhitespace(fl validator.FieldLevel) bool {
	return !strings.ContainsFunc(fl.Field().String(), unicode.IsSpace)
}

func notBeforeFirstScreening(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return !t.Before(MinReleaseDate.Time)
}

func notInFuture(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return !t.After(domain.Today().Time)
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "обязательное поле"
	case "notblank":
		return "не может быть пустым"
	case "nowhitespace":
		return "не может содержать пробелы"
	case "email":
		return "должна быть корректного формата"
	case "max":
		return fmt.Sprintf("не длиннее %s символов", fe.Param())
	case "gt":
		return "должно быть положительным числом"
	case "releasedate":
		return "не может быть раньше " + MinReleaseDate.Format("02.01.2006")
	case "notfuture":
		return "не может быть в будущем"
	default:
		return fe.Error()
	}
}
