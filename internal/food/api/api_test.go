package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/foodcatalog/filestore/localfs"
	"github.com/rise-and-shine/foodcatalog/http/server"
	"github.com/rise-and-shine/foodcatalog/http/server/upload"
	"github.com/rise-and-shine/foodcatalog/internal/food"
	"github.com/rise-and-shine/foodcatalog/internal/food/api"
	"github.com/rise-and-shine/foodcatalog/internal/food/lifecycle"
	"github.com/rise-and-shine/foodcatalog/internal/food/query"
	"github.com/rise-and-shine/foodcatalog/internal/imagestore"
)

// memRepo is an in-memory record store serving both the lifecycle manager and the query facade.
type memRepo struct {
	mu      sync.Mutex
	records map[string]food.Food
}

func (r *memRepo) Create(_ context.Context, rec *food.Food) (*food.Food, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec.ID = uuid.NewString()
	r.records[rec.ID] = *rec
	out := *rec
	return &out, nil
}

func (r *memRepo) FindByID(_ context.Context, id string) (*food.Food, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return nil, food.ErrNotFound(id)
	}
	return &rec, nil
}

func (r *memRepo) FindMany(_ context.Context, f food.Filter) ([]food.Food, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []food.Food
	for _, rec := range r.records {
		if f.Category != nil && rec.Category != *f.Category {
			continue
		}
		if f.Available != nil && rec.Available != *f.Available {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *memRepo) Update(_ context.Context, id string, patch food.Patch) (*food.Food, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return nil, food.ErrNotFound(id)
	}
	patch.ApplyTo(&rec)
	r.records[id] = rec
	return &rec, nil
}

func (r *memRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[id]; !ok {
		return food.ErrNotFound(id)
	}
	delete(r.records, id)
	return nil
}

type env struct {
	app     *fiber.App
	backend *localfs.Store
}

func newEnv(t *testing.T) *env {
	t.Helper()

	backend, err := localfs.New(localfs.Config{Dir: t.TempDir()})
	require.NoError(t, err)

	repo := &memRepo{records: map[string]food.Food{}}
	images := imagestore.New(backend)
	h := api.New(lifecycle.New(repo, images), query.New(repo), images, upload.Options{MaxSize: 1 << 20})

	srv := server.NewHTTPServer(server.Config{Host: "localhost", Port: 8000}, nil)
	srv.RegisterRouter(h.Register)

	return &env{app: srv.App(), backend: backend}
}

func (e *env) files(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(e.backend.Root())
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, en := range entries {
		names = append(names, en.Name())
	}
	return names
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Count   int             `json:"count"`
	Error   struct {
		Code string `json:"code"`
	} `json:"error"`
}

type foodJSON struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	ImageURL    *string `json:"image_url"`
	Available   bool    `json:"available"`
}

func (e *env) do(t *testing.T, req *http.Request) (int, envelope) {
	t.Helper()
	resp, err := e.app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	return resp.StatusCode, env
}

func multipartReq(t *testing.T, method, path string, values map[string]string, image string) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range values {
		require.NoError(t, w.WriteField(k, v))
	}
	if image != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="image"; filename="`+image+`"`)
		h.Set("Content-Type", "image/jpeg")
		pw, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = pw.Write([]byte("jpeg:" + image))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func jsonReq(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	return req
}

func decodeFood(t *testing.T, raw json.RawMessage) foodJSON {
	t.Helper()
	var f foodJSON
	require.NoError(t, json.Unmarshal(raw, &f))
	return f
}

func (e *env) create(t *testing.T, values map[string]string, image string) foodJSON {
	t.Helper()
	status, body := e.do(t, multipartReq(t, http.MethodPost, "/api/foods", values, image))
	require.Equal(t, fiber.StatusCreated, status)
	return decodeFood(t, body.Data)
}

func TestCreate_MultipartWithImage(t *testing.T) {
	e := newEnv(t)

	status, body := e.do(t, multipartReq(t, http.MethodPost, "/api/foods", map[string]string{
		"name":        "Pizza",
		"description": "Cheese",
		"price":       "12.50",
		"category":    "Main",
		"available":   "false",
	}, "pizza.jpg"))

	require.Equal(t, fiber.StatusCreated, status)
	assert.True(t, body.Success)
	assert.Equal(t, "Food item created successfully", body.Message)

	rec := decodeFood(t, body.Data)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "Pizza", rec.Name)
	assert.InDelta(t, 12.5, rec.Price, 0.001)
	assert.False(t, rec.Available)
	require.NotNil(t, rec.ImageURL)
	assert.True(t, strings.HasPrefix(*rec.ImageURL, imagestore.PublicPrefix))

	files := e.files(t)
	require.Len(t, files, 1)
	assert.Equal(t, imagestore.PublicPrefix+files[0], *rec.ImageURL)

	resp, err := e.app.Test(httptest.NewRequest(http.MethodGet, *rec.ImageURL, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/jpeg", resp.Header.Get(fiber.HeaderContentType))
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "jpeg:pizza.jpg", string(raw))
}

func TestCreate_JSONDefaults(t *testing.T) {
	e := newEnv(t)

	status, body := e.do(t, jsonReq(http.MethodPost, "/api/foods",
		`{"name":"Soup","price":3,"category":"Starter"}`))

	require.Equal(t, fiber.StatusCreated, status)
	rec := decodeFood(t, body.Data)
	assert.True(t, rec.Available)
	assert.Nil(t, rec.ImageURL)
	assert.Nil(t, rec.Description)
}

func TestCreate_RejectedRequestLeavesNoFile(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]string
		code   string
	}{
		{name: "missing name", values: map[string]string{"price": "1", "category": "Main"}, code: "VALIDATION_FAILED"},
		{name: "negative price", values: map[string]string{"name": "X", "price": "-1", "category": "Main"}, code: "VALIDATION_FAILED"},
		{name: "price too large", values: map[string]string{"name": "X", "price": "1e9", "category": "Main"}, code: "INVALID_PRICE"},
		{
			name:   "bad availability",
			values: map[string]string{"name": "X", "price": "1", "category": "Main", "available": "maybe"},
			code:   "INVALID_AVAILABLE",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newEnv(t)

			status, body := e.do(t, multipartReq(t, http.MethodPost, "/api/foods", tc.values, "x.jpg"))

			assert.Equal(t, fiber.StatusBadRequest, status)
			assert.False(t, body.Success)
			assert.Equal(t, tc.code, body.Error.Code)
			assert.Empty(t, e.files(t))
		})
	}
}

func TestList_Filters(t *testing.T) {
	e := newEnv(t)
	e.create(t, map[string]string{"name": "Pizza", "price": "10", "category": "Main"}, "")
	e.create(t, map[string]string{"name": "Salad", "price": "5", "category": "Starter", "available": "false"}, "")

	tests := []struct {
		query string
		count int
	}{
		{query: "", count: 2},
		{query: "?category=Main", count: 1},
		{query: "?category=main", count: 0},
		{query: "?available=true", count: 1},
		{query: "?available=false", count: 1},
		{query: "?available=yes", count: 1},
		{query: "?available=", count: 2},
		{query: "?category=Dessert", count: 0},
	}

	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			status, body := e.do(t, httptest.NewRequest(http.MethodGet, "/api/foods"+tc.query, nil))

			require.Equal(t, fiber.StatusOK, status)
			assert.True(t, body.Success)
			assert.Equal(t, tc.count, body.Count)

			var items []foodJSON
			require.NoError(t, json.Unmarshal(body.Data, &items))
			assert.Len(t, items, tc.count)
		})
	}
}

func TestGet(t *testing.T) {
	e := newEnv(t)
	rec := e.create(t, map[string]string{"name": "Pizza", "price": "10", "category": "Main"}, "")

	status, body := e.do(t, httptest.NewRequest(http.MethodGet, "/api/foods/"+rec.ID, nil))
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, rec, decodeFood(t, body.Data))

	status, body = e.do(t, httptest.NewRequest(http.MethodGet, "/api/foods/"+uuid.NewString(), nil))
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, food.CodeFoodNotFound, body.Error.Code)
}

func TestUpdate_ReplacesImage(t *testing.T) {
	e := newEnv(t)
	rec := e.create(t, map[string]string{"name": "Pizza", "price": "10", "category": "Main"}, "old.jpg")
	require.Len(t, e.files(t), 1)
	oldFile := e.files(t)[0]

	status, body := e.do(t, multipartReq(t, http.MethodPut, "/api/foods/"+rec.ID,
		map[string]string{"price": "11"}, "new.jpg"))

	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Food item updated successfully", body.Message)

	updated := decodeFood(t, body.Data)
	assert.Equal(t, "Pizza", updated.Name)
	assert.InDelta(t, 11.0, updated.Price, 0.001)
	require.NotNil(t, updated.ImageURL)

	files := e.files(t)
	require.Len(t, files, 1)
	assert.NotEqual(t, oldFile, files[0])
	assert.Equal(t, imagestore.PublicPrefix+files[0], *updated.ImageURL)
}

func TestUpdate_JSONPartial(t *testing.T) {
	e := newEnv(t)
	rec := e.create(t, map[string]string{"name": "Pizza", "price": "10", "category": "Main"}, "p.jpg")

	status, body := e.do(t, jsonReq(http.MethodPut, "/api/foods/"+rec.ID, `{"available":false,"description":null}`))

	require.Equal(t, fiber.StatusOK, status)
	updated := decodeFood(t, body.Data)
	assert.False(t, updated.Available)
	assert.Nil(t, updated.Description)
	assert.Equal(t, rec.ImageURL, updated.ImageURL)
	assert.Len(t, e.files(t), 1)
}

func TestUpdate_UnknownIDDiscardsUpload(t *testing.T) {
	e := newEnv(t)

	status, body := e.do(t, multipartReq(t, http.MethodPut, "/api/foods/"+uuid.NewString(),
		map[string]string{"name": "X"}, "x.jpg"))

	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, food.CodeFoodNotFound, body.Error.Code)
	assert.Empty(t, e.files(t))
}

func TestDelete(t *testing.T) {
	e := newEnv(t)
	rec := e.create(t, map[string]string{"name": "Pizza", "price": "10", "category": "Main"}, "p.jpg")

	status, body := e.do(t, httptest.NewRequest(http.MethodDelete, "/api/foods/"+rec.ID, nil))
	require.Equal(t, fiber.StatusOK, status)
	assert.True(t, body.Success)
	assert.Equal(t, "Food item deleted successfully", body.Message)
	assert.Empty(t, e.files(t))

	status, _ = e.do(t, httptest.NewRequest(http.MethodGet, "/api/foods/"+rec.ID, nil))
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = e.do(t, httptest.NewRequest(http.MethodDelete, "/api/foods/"+rec.ID, nil))
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestImageInfo(t *testing.T) {
	e := newEnv(t)
	withImage := e.create(t, map[string]string{"name": "Pizza", "price": "10", "category": "Main"}, "p.jpg")
	withoutImage := e.create(t, map[string]string{"name": "Soup", "price": "3", "category": "Starter"}, "")

	status, body := e.do(t, httptest.NewRequest(http.MethodGet, "/api/foods/"+withImage.ID+"/image-info", nil))
	require.Equal(t, fiber.StatusOK, status)

	var info imagestore.Info
	require.NoError(t, json.Unmarshal(body.Data, &info))
	assert.Equal(t, int64(len("jpeg:p.jpg")), info.Size)
	assert.Equal(t, *withImage.ImageURL, info.URL)
	assert.False(t, info.ModifiedAt.IsZero())

	status, body = e.do(t, httptest.NewRequest(http.MethodGet, "/api/foods/"+withoutImage.ID+"/image-info", nil))
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, food.CodeImageNotFound, body.Error.Code)
}

func TestServeImage_Missing(t *testing.T) {
	e := newEnv(t)

	resp, err := e.app.Test(httptest.NewRequest(http.MethodGet, imagestore.PublicPrefix+"nope.jpg", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, err = e.app.Test(httptest.NewRequest(http.MethodGet, imagestore.PublicPrefix+"..", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
