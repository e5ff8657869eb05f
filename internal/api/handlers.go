package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"film-service/internal/service"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
)

// internalErrorMessage текст ответа на любые непредвиденные ошибки.
const internalErrorMessage = "Внутренняя ошибка сервера"

// Handler содержит зависимости для HTTP обработчиков.
type Handler struct {
	svc    *service.Services
	logger *slog.Logger
}

// NewHandler создает новый экземпляр Handler.
func NewHandler(svc *service.Services, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// --- Вспомогательные функции ---

func (h *Handler) respondJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			h.logger.ErrorContext(r.Context(), "Failed to encode JSON response", slog.String("error", err.Error()), slog.String("path", r.URL.Path))
		}
	}
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.respondJSON(w, r, status, map[string]string{"error": message})
}

// respondServiceError переводит вид ошибки сервиса в HTTP статус.
func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	var svcErr *service.Error
	switch {
	case errors.Is(err, service.ErrNotFound):
		h.respondError(w, r, http.StatusNotFound, messageOf(err))
	case errors.Is(err, service.ErrInvalidState):
		h.respondError(w, r, http.StatusConflict, messageOf(err))
	case errors.Is(err, service.ErrValidation):
		body := map[string]any{"error": messageOf(err)}
		if errors.As(err, &svcErr) && len(svcErr.Fields) > 0 {
			body["fields"] = svcErr.Fields
		}
		h.respondJSON(w, r, http.StatusBadRequest, body)
	default:
		h.logger.ErrorContext(ctx, "Unhandled service error", slog.String("path", r.URL.Path), slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, internalErrorMessage)
	}
}

// messageOf возвращает сообщение для клиента без внутренних подробностей.
func messageOf(err error) string {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		return svcErr.Message
	}
	return err.Error()
}

// decodeJSON читает тело запроса в dst. При ошибке отвечает 400 и возвращает false.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(dst); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Некорректное тело запроса")
		return false
	}
	return true
}

// pathID читает положительный id из переменной пути. При ошибке отвечает 400.
func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Некорректный идентификатор "+name+": "+raw)
		return 0, false
	}
	return id, true
}

// queryInt читает целый параметр запроса; отсутствие параметра дает def.
func (h *Handler) queryInt(w http.ResponseWriter, r *http.Request, name string, def int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Некорректный параметр "+name+": "+raw)
		return 0, false
	}
	return n, true
}

// queryID читает обязательный числовой id из параметров запроса.
func (h *Handler) queryID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := r.URL.Query().Get(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Некорректный параметр "+name+": "+raw)
		return 0, false
	}
	return id, true
}

// Health отвечает на проверку живости.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
