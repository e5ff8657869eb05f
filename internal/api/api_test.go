package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"film-service/internal/domain"
	"film-service/internal/service"
	"film-service/internal/store"
	"film-service/internal/validation"

	"github.com/goccy/go-json"
)

func newTestRouter(t *testing.T, st store.Store) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if st == nil {
		st = store.NewMemoryStore(logger)
	}
	return NewRouter(NewHandler(service.New(st, validation.New(), logger), logger))
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rr.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode body %q: %v", rr.Body.String(), err)
	}
	return v
}

const validFilm = `{"name":"Сталкер","description":"Зона","releaseDate":"1979-05-25","duration":163,"mpa":{"id":1},"genres":[{"id":2},{"id":2}]}`

func TestCreateAndGetFilm(t *testing.T) {
	router := newTestRouter(t, nil)

	rr := doRequest(t, router, http.MethodPost, "/films", validFilm)
	if rr.Code != http.StatusCreated {
		t.Fatalf("POST /films status = %d, body %s", rr.Code, rr.Body.String())
	}
	created := decodeBody[domain.Film](t, rr)
	if created.ID == 0 {
		t.Fatal("created film has zero id")
	}
	if len(created.Genres) != 1 {
		t.Errorf("genres = %v, want one deduplicated genre", created.Genres)
	}
	if created.Mpa == nil || created.Mpa.Name != "G" {
		t.Errorf("mpa = %+v, want resolved G", created.Mpa)
	}

	rr = doRequest(t, router, http.MethodGet, "/films/1", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("GET /films/1 status = %d", rr.Code)
	}
	got := decodeBody[domain.Film](t, rr)
	if got.Name != "Сталкер" || got.ReleaseDate.String() != "1979-05-25" {
		t.Errorf("GET /films/1 = %+v", got)
	}
	if rr.Header().Get(requestIDHeader) == "" {
		t.Error("response has no X-Request-ID header")
	}
}

func TestErrorStatusMapping(t *testing.T) {
	router := newTestRouter(t, nil)
	doRequest(t, router, http.MethodPost, "/films", validFilm)
	doRequest(t, router, http.MethodPost, "/users", `{"email":"a@example.com","login":"alice"}`)
	doRequest(t, router, http.MethodPut, "/films/1/like/1", "")

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"missing film", http.MethodGet, "/films/99", "", http.StatusNotFound},
		{"missing user", http.MethodGet, "/users/99", "", http.StatusNotFound},
		{"missing genre", http.MethodGet, "/genres/42", "", http.StatusNotFound},
		{"bad id", http.MethodGet, "/films/abc", "", http.StatusBadRequest},
		{"bad count", http.MethodGet, "/films/popular?count=x", "", http.StatusBadRequest},
		{"double like", http.MethodPut, "/films/1/like/1", "", http.StatusConflict},
		{"self friendship", http.MethodPut, "/users/1/friends/1", "", http.StatusBadRequest},
		{"confirm without request", http.MethodPut, "/users/1/friends/1/confirm", "", http.StatusConflict},
		{"malformed body", http.MethodPost, "/films", `{"name":`, http.StatusBadRequest},
		{"too early release", http.MethodPost, "/films", `{"name":"Old","releaseDate":"1895-12-27","duration":1}`, http.StatusBadRequest},
		{"too long name", http.MethodPost, "/films", `{"name":"` + strings.Repeat("a", 256) + `","releaseDate":"2000-01-01","duration":1}`, http.StatusBadRequest},
		{"update missing film", http.MethodPut, "/films", `{"id":77,"name":"X","releaseDate":"2000-01-01","duration":1}`, http.StatusNotFound},
		{"common films without friendId", http.MethodGet, "/films/common?userId=1", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(t, router, tt.method, tt.path, tt.body)
			if rr.Code != tt.want {
				t.Errorf("%s %s status = %d, want %d (body %s)", tt.method, tt.path, rr.Code, tt.want, rr.Body.String())
			}
			if rr.Code >= 400 {
				body := decodeBody[map[string]any](t, rr)
				if _, ok := body["error"]; !ok {
					t.Errorf("error body %s has no \"error\" key", rr.Body.String())
				}
			}
		})
	}
}

func TestValidationErrorCarriesFields(t *testing.T) {
	router := newTestRouter(t, nil)

	rr := doRequest(t, router, http.MethodPost, "/users", `{"email":"not-an-email","login":"has space"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	body := decodeBody[struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}](t, rr)
	for _, field := range []string{"email", "login"} {
		if _, ok := body.Fields[field]; !ok {
			t.Errorf("fields = %v, want key %q", body.Fields, field)
		}
	}
}

type failingStore struct {
	store.Store
}

func (failingStore) ListFilms(context.Context) ([]*domain.Film, error) {
	return nil, errors.New("connection reset")
}

func TestStorageFailureIsInternalError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := newTestRouter(t, failingStore{Store: store.NewMemoryStore(logger)})

	rr := doRequest(t, router, http.MethodGet, "/films", "")
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
	body := decodeBody[map[string]string](t, rr)
	if body["error"] != internalErrorMessage {
		t.Errorf("error = %q, want %q", body["error"], internalErrorMessage)
	}
	if strings.Contains(rr.Body.String(), "connection reset") {
		t.Error("internal error details leaked to client")
	}
}

func TestFriendsAndRecommendationsFlow(t *testing.T) {
	router := newTestRouter(t, nil)
	for _, login := range []string{"alice", "bob", "carol"} {
		rr := doRequest(t, router, http.MethodPost, "/users", `{"email":"`+login+`@example.com","login":"`+login+`"}`)
		if rr.Code != http.StatusCreated {
			t.Fatalf("create %s status = %d", login, rr.Code)
		}
	}
	for i := 0; i < 2; i++ {
		doRequest(t, router, http.MethodPost, "/films", validFilm)
	}

	steps := []struct {
		method, path string
		want         int
	}{
		{http.MethodPut, "/users/1/friends/2", http.StatusOK},
		{http.MethodPut, "/users/2/friends/1/confirm", http.StatusOK},
		{http.MethodPut, "/users/3/friends/2", http.StatusOK},
		{http.MethodPut, "/films/1/like/1", http.StatusOK},
		{http.MethodPut, "/films/1/like/2", http.StatusOK},
		{http.MethodPut, "/films/2/like/2", http.StatusOK},
	}
	for _, s := range steps {
		if rr := doRequest(t, router, s.method, s.path, ""); rr.Code != s.want {
			t.Fatalf("%s %s status = %d, want %d", s.method, s.path, rr.Code, s.want)
		}
	}

	friends := decodeBody[[]domain.User](t, doRequest(t, router, http.MethodGet, "/users/1/friends", ""))
	if len(friends) != 1 || friends[0].ID != 2 {
		t.Errorf("friends of 1 = %+v, want [2]", friends)
	}
	requests := decodeBody[[]domain.User](t, doRequest(t, router, http.MethodGet, "/users/2/friends/requests", ""))
	if len(requests) != 1 || requests[0].ID != 3 {
		t.Errorf("requests of 2 = %+v, want [3]", requests)
	}

	recs := decodeBody[[]domain.Film](t, doRequest(t, router, http.MethodGet, "/users/1/recommendations", ""))
	if len(recs) != 1 || recs[0].ID != 2 {
		t.Errorf("recommendations for 1 = %+v, want [2]", recs)
	}

	count := decodeBody[map[string]int](t, doRequest(t, router, http.MethodGet, "/films/1/likes/count", ""))
	if count["count"] != 2 {
		t.Errorf("like count = %v, want 2", count)
	}

	popular := decodeBody[[]domain.Film](t, doRequest(t, router, http.MethodGet, "/films/popular?count=1", ""))
	if len(popular) != 1 || popular[0].ID != 1 {
		t.Errorf("popular = %+v, want [1]", popular)
	}
}

func TestHealth(t *testing.T) {
	rr := doRequest(t, newTestRouter(t, nil), http.MethodGet, "/health", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestZeroCountMeansDefault(t *testing.T) {
	router := newTestRouter(t, nil)
	for i := 0; i < 12; i++ {
		if rr := doRequest(t, router, http.MethodPost, "/films", validFilm); rr.Code != http.StatusCreated {
			t.Fatalf("create film status = %d", rr.Code)
		}
	}
	for _, login := range []string{"alice", "bob"} {
		doRequest(t, router, http.MethodPost, "/users", `{"email":"`+login+`@example.com","login":"`+login+`"}`)
	}
	// bob лайкает все фильмы, alice только первый: у alice 11 кандидатов в рекомендации.
	doRequest(t, router, http.MethodPut, "/films/1/like/1", "")
	for id := 1; id <= 12; id++ {
		doRequest(t, router, http.MethodPut, "/films/"+strconv.Itoa(id)+"/like/2", "")
	}

	tests := []struct {
		path string
		want int
	}{
		{"/films/popular?count=0", service.DefaultPopularCount},
		{"/films/popular", service.DefaultPopularCount},
		{"/films/popular?count=3", 3},
		{"/films/popular?count=-5", 1},
		{"/users/1/recommendations?limit=0", service.DefaultRecommendationLimit},
		{"/users/1/recommendations", service.DefaultRecommendationLimit},
		{"/users/1/recommendations?limit=2", 2},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rr := doRequest(t, router, http.MethodGet, tt.path, "")
			if rr.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
			}
			if got := len(decodeBody[[]domain.Film](t, rr)); got != tt.want {
				t.Errorf("GET %s returned %d films, want %d", tt.path, got, tt.want)
			}
		})
	}
}
