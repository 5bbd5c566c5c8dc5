package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookstore/internal/audit"
	"github.com/mrlokans/bookstore/internal/cache"
	"github.com/mrlokans/bookstore/internal/database"
	auditrepo "github.com/mrlokans/bookstore/internal/database/audit"
	"github.com/mrlokans/bookstore/internal/database/authors"
	"github.com/mrlokans/bookstore/internal/database/books"
	"github.com/mrlokans/bookstore/internal/database/seed"
	"github.com/mrlokans/bookstore/internal/database/stores"
	"github.com/mrlokans/bookstore/internal/services"
)

const testSeedFile = "../../seed/seed-data.json"

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestRouter wires the full stack against a fresh sqlite file.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "http.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rec := audit.NewRecorder()
	uow := database.NewUnitOfWork(db.DB)
	c := cache.New(time.Minute)
	authorRepo := authors.NewRepository(db.DB, rec)
	bookRepo := books.NewRepository(db.DB, rec)
	storeRepo := stores.NewRepository(db.DB, rec)

	return NewRouter(RouterConfig{
		Authors:  services.NewAuthorService(uow, authorRepo, c),
		Books:    services.NewBookService(uow, bookRepo, authorRepo, storeRepo, c),
		Stores:   services.NewStoreService(uow, storeRepo, c),
		Seed:     services.NewSeedService(seed.NewRepository(db.DB, rec), testSeedFile, c),
		Audit:    audit.NewService(auditrepo.NewRepository(db.DB)),
		Database: db,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Version:  "test",
	})
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, ok := body.(string)
		if !ok {
			data, err := json.Marshal(body)
			require.NoError(t, err)
			raw = string(data)
		}
		reader = bytes.NewBufferString(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func createAuthor(t *testing.T, router http.Handler, first, last string) services.AuthorSummary {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/authors", gin.H{"firstName": first, "lastName": last})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[services.AuthorSummary](t, w)
}

func createStore(t *testing.T, router http.Handler, name string) services.StoreSummary {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/stores", gin.H{"name": name})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[services.StoreSummary](t, w)
}

func createBook(t *testing.T, router http.Handler, body gin.H) services.BookDetails {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/books", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[services.BookDetails](t, w)
}
