package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/blogr/internal/api/handler"
	"github.com/d60-Lab/blogr/internal/config"
	"github.com/d60-Lab/blogr/internal/model"
	"github.com/d60-Lab/blogr/internal/repository"
	"github.com/d60-Lab/blogr/internal/service"
	"github.com/d60-Lab/blogr/internal/session"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=1"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&model.Author{}, &model.Post{}, &model.Comment{}))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sessions := session.NewManager("test-secret", time.Hour, session.NewStore(rdb, time.Hour))

	authorRepo := repository.NewAuthorRepository(db)
	h := handler.New(
		service.NewAuthService(authorRepo, sessions),
		service.NewPostService(repository.NewPostRepository(db), authorRepo),
		service.NewCommentService(repository.NewCommentRepository(db), authorRepo),
	)

	cfg := &config.Config{Limit: config.LimitConfig{RPS: 1000, Burst: 1000}}
	return NewRouter(cfg, h, sessions)
}

func do(t *testing.T, r *gin.Engine, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	// Disable gzip on responses so bodies decode directly.
	req.Header.Del("Accept-Encoding")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func register(t *testing.T, r *gin.Engine, name, email string) string {
	t.Helper()
	w, _ := do(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": name, "email": email, "password": "hunter2hunter2",
	})
	require.Equal(t, http.StatusOK, w.Code)
	w, env := do(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": email, "password": "hunter2hunter2",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

type postPayload struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	Published bool   `json:"published"`
	Author    struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

func TestPostLifecycle(t *testing.T) {
	r := setupRouter(t)
	alice := register(t, r, "Alice", "a@x.com")
	bob := register(t, r, "Bob", "b@x.com")

	// Create: draft owned by alice.
	w, env := do(t, r, http.MethodPost, "/api/post", alice, gin.H{"title": "T", "content": "C"})
	require.Equal(t, http.StatusOK, w.Code)
	var created postPayload
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.False(t, created.Published)
	require.False(t, created.CreatedAt.IsZero())
	require.Equal(t, "a@x.com", created.Author.Email)

	// Feed does not show drafts.
	w, env = do(t, r, http.MethodGet, "/api/feed", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, "[]", string(env.Data))

	// Drafts are visible to their author, with name only.
	w, env = do(t, r, http.MethodGet, "/api/drafts", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, string(env.Data), `"name":"Alice"`)
	require.NotContains(t, string(env.Data), "a@x.com")

	// Not visible to anyone else.
	w, env = do(t, r, http.MethodGet, "/api/drafts", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, "[]", string(env.Data))

	// Anonymous drafts: 403 plus empty list, not a hard failure.
	w, env = do(t, r, http.MethodGet, "/api/drafts", "", nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	require.JSONEq(t, "[]", string(env.Data))

	// Publish is owner-only.
	id := created.ID
	path := "/api/publish/" + itoa(id)
	w, _ = do(t, r, http.MethodPut, path, bob, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	w, env = do(t, r, http.MethodPut, path, alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var published postPayload
	require.NoError(t, json.Unmarshal(env.Data, &published))
	require.True(t, published.Published)

	// Now on the public feed, and the detail view carries the email.
	w, env = do(t, r, http.MethodGet, "/api/feed", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, string(env.Data), `"title":"T"`)
	w, env = do(t, r, http.MethodGet, "/api/post/"+itoa(id), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, string(env.Data), `"email":"a@x.com"`)

	// Comments attach to the post.
	w, _ = do(t, r, http.MethodPost, "/api/comment", bob, gin.H{"comment": "nice", "id": id})
	require.Equal(t, http.StatusOK, w.Code)
	w, env = do(t, r, http.MethodGet, "/api/post/"+itoa(id)+"/comments", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, string(env.Data), `"content":"nice"`)

	// Delete is owner-only and returns the prior state.
	w, _ = do(t, r, http.MethodDelete, "/api/post/"+itoa(id), bob, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	w, env = do(t, r, http.MethodDelete, "/api/post/"+itoa(id), alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var deleted postPayload
	require.NoError(t, json.Unmarshal(env.Data, &deleted))
	require.Equal(t, "T", deleted.Title)

	// Gone now.
	w, env = do(t, r, http.MethodGet, "/api/post/"+itoa(id), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "null", string(env.Data))
}

func TestUnsupportedMethodIsExplicit(t *testing.T) {
	r := setupRouter(t)

	w, env := do(t, r, http.MethodPatch, "/api/post/1", "", nil)
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	require.Contains(t, env.Message, "PATCH")
	require.Contains(t, env.Message, "not supported")
}

func TestMalformedIDBehavesLikeMissing(t *testing.T) {
	r := setupRouter(t)

	for _, path := range []string{"/api/post/abc", "/api/post/99999"} {
		w, env := do(t, r, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "null", string(env.Data))
	}
}

func TestMutationsRequireAuth(t *testing.T) {
	r := setupRouter(t)

	w, _ := do(t, r, http.MethodPost, "/api/post", "", gin.H{"title": "T", "content": "C"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	w, _ = do(t, r, http.MethodPut, "/api/publish/1", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	w, _ = do(t, r, http.MethodDelete, "/api/post/1", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	w, _ = do(t, r, http.MethodPost, "/api/comment", "", gin.H{"comment": "hi", "id": 1})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreatePostValidation(t *testing.T) {
	r := setupRouter(t)
	alice := register(t, r, "Alice", "a@x.com")

	w, _ := do(t, r, http.MethodPost, "/api/post", alice, gin.H{"title": "   ", "content": "C"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = do(t, r, http.MethodPost, "/api/post", alice, gin.H{"content": "C"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCommentOnUnknownPostFails(t *testing.T) {
	r := setupRouter(t)
	alice := register(t, r, "Alice", "a@x.com")

	w, _ := do(t, r, http.MethodPost, "/api/comment", alice, gin.H{"comment": "void", "id": 424242})
	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestLogoutEndsSession(t *testing.T) {
	r := setupRouter(t)
	alice := register(t, r, "Alice", "a@x.com")

	w, _ := do(t, r, http.MethodGet, "/api/auth/me", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, r, http.MethodPost, "/api/auth/logout", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, r, http.MethodGet, "/api/auth/me", alice, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
