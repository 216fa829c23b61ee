package books

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/5w1tchy/books-service/internal/apperr"
	"github.com/5w1tchy/books-service/internal/models"
)

// fakeService records the last call and returns canned results.
type fakeService struct {
	book  models.Book
	list  []models.Book
	err   error
	id    string
	in    models.Book
	patch models.BookPatch
	calls int
}

func (f *fakeService) Create(_ context.Context, b models.Book) (models.Book, error) {
	f.calls++
	f.in = b
	return f.book, f.err
}

func (f *fakeService) Get(_ context.Context, id string) (models.Book, error) {
	f.calls++
	f.id = id
	return f.book, f.err
}

func (f *fakeService) List(context.Context) ([]models.Book, error) {
	f.calls++
	return f.list, f.err
}

func (f *fakeService) Update(_ context.Context, id string, p models.BookPatch) (models.Book, error) {
	f.calls++
	f.id, f.patch = id, p
	return f.book, f.err
}

func (f *fakeService) Delete(_ context.Context, id string) (bool, error) {
	f.calls++
	f.id = id
	return f.err == nil, f.err
}

var sample = models.Book{
	ID:            "b-1",
	Title:         "Book 1",
	Author:        "Author 1",
	ISBN:          "1234567890",
	PublishedDate: models.NewDate(2025, time.July, 1),
}

func serve(t *testing.T, svc Service, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rt := httprouter.New()
	New(svc, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(rt)

	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(method, path, rd))

	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return rec, m
}

func TestCreate(t *testing.T) {
	svc := &fakeService{book: sample}
	rec, m := serve(t, svc, http.MethodPost, "/books",
		`{"id":"client","title":"Book 1","author":"Author 1","isbn":"1234567890","publishedDate":"2025-07-01"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/books/b-1", rec.Header().Get("Location"))
	assert.Equal(t, MsgCreated, m["message"])
	assert.Nil(t, m["errorCode"])
	data := m["data"].(map[string]any)
	assert.Equal(t, "b-1", data["id"])
	assert.Equal(t, "2025-07-01", data["publishedDate"])
	assert.Equal(t, "Book 1", svc.in.Title)
	assert.Equal(t, models.NewDate(2025, time.July, 1), svc.in.PublishedDate)
}

func TestCreate_BadBodyNeverReachesService(t *testing.T) {
	tests := []struct {
		name string
		body string
		msg  string
	}{
		{"bad date", `{"title":"T","publishedDate":"01-07-2025"}`, "Invalid date format. Expected format is yyyy-MM-dd"},
		{"malformed", `{"title":`, "Invalid input format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{}
			rec, m := serve(t, svc, http.MethodPost, "/books", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "FORMAT_ERROR", m["errorCode"])
			assert.Equal(t, tt.msg, m["message"])
			assert.Nil(t, m["data"])
			assert.Zero(t, svc.calls)
		})
	}
}

func TestCreate_ServiceErrors(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{apperr.Validation("Title is required"), 400, "VALIDATION_ERROR"},
		{apperr.Duplicate("1234567890", nil), 400, "DUPLICATE_ISBN"},
		{apperr.Service("Unexpected error occurred while creating book", errors.New("boom")), 500, "SERVICE_ERROR"},
	}
	for _, tt := range tests {
		rec, m := serve(t, &fakeService{err: tt.err}, http.MethodPost, "/books", `{}`)
		assert.Equal(t, tt.status, rec.Code)
		assert.Equal(t, tt.code, m["errorCode"])
		assert.Equal(t, apperr.From(tt.err).Message, m["message"])
	}
}

func TestList(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		rec, m := serve(t, &fakeService{list: []models.Book{}}, http.MethodGet, "/books", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, MsgNoneFound, m["message"])
		assert.Equal(t, []any{}, m["data"])
	})

	t.Run("some", func(t *testing.T) {
		rec, m := serve(t, &fakeService{list: []models.Book{sample}}, http.MethodGet, "/books", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, MsgFound, m["message"])
		assert.Len(t, m["data"], 1)
	})
}

func TestGet(t *testing.T) {
	svc := &fakeService{book: sample}
	rec, m := serve(t, svc, http.MethodGet, "/books/b-1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, MsgRetrieved, m["message"])
	assert.Equal(t, "b-1", svc.id)

	rec, m = serve(t, &fakeService{err: apperr.NotFound("nope")}, http.MethodGet, "/books/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "ENTITY_NOT_FOUND", m["errorCode"])
	assert.Equal(t, "Book with ID nope not found", m["message"])
}

func TestUpdate(t *testing.T) {
	svc := &fakeService{book: sample}
	rec, m := serve(t, svc, http.MethodPut, "/books/b-1", `{"title":"New","publishedDate":""}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, MsgUpdated, m["message"])
	assert.Equal(t, "b-1", svc.id)
	require.NotNil(t, svc.patch.Title)
	assert.Equal(t, "New", *svc.patch.Title)
	assert.Nil(t, svc.patch.Author)
	assert.False(t, svc.patch.PublishedDate.Valid())

	svc = &fakeService{}
	rec, m = serve(t, svc, http.MethodPut, "/books/b-1", `{"publishedDate":"2025/07/01"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "FORMAT_ERROR", m["errorCode"])
	assert.Zero(t, svc.calls)
}

func TestDelete(t *testing.T) {
	svc := &fakeService{}
	rec, m := serve(t, svc, http.MethodDelete, "/books/b-1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, MsgDeleted, m["message"])
	assert.Equal(t, true, m["data"])
	assert.Equal(t, "b-1", svc.id)

	rec, m = serve(t, &fakeService{err: apperr.NotFound("b-1")}, http.MethodDelete, "/books/b-1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Nil(t, m["data"])
}
