package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WooodHead/everpost-backend/internal/common/jwtverify"
	"github.com/WooodHead/everpost-backend/internal/common/logger"
	"github.com/WooodHead/everpost-backend/internal/post/domain"
	"github.com/WooodHead/everpost-backend/internal/post/service"
)

type mockPosts struct {
	listByUserFunc         func(ctx context.Context, userID int64, page, size int) (domain.PostPage, error)
	createFunc             func(ctx context.Context, userID int64, input service.CreatePostInput) (domain.Post, error)
	getByIDFunc            func(ctx context.Context, id int64) (domain.Post, error)
	listFileResourcesFunc  func(ctx context.Context, postID int64) ([]domain.FileResource, error)
	attachFileResourceFunc func(ctx context.Context, userID, postID int64, input service.AttachFileInput) (domain.FileResource, error)
}

func (m *mockPosts) ListByUser(ctx context.Context, userID int64, page, size int) (domain.PostPage, error) {
	if m.listByUserFunc != nil {
		return m.listByUserFunc(ctx, userID, page, size)
	}
	return domain.PostPage{}, nil
}

func (m *mockPosts) Create(ctx context.Context, userID int64, input service.CreatePostInput) (domain.Post, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, userID, input)
	}
	return domain.Post{}, nil
}

func (m *mockPosts) GetByID(ctx context.Context, id int64) (domain.Post, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return domain.Post{}, service.ErrPostNotFound
}

func (m *mockPosts) ListFileResources(ctx context.Context, postID int64) ([]domain.FileResource, error) {
	if m.listFileResourcesFunc != nil {
		return m.listFileResourcesFunc(ctx, postID)
	}
	return nil, nil
}

func (m *mockPosts) AttachFileResource(ctx context.Context, userID, postID int64, input service.AttachFileInput) (domain.FileResource, error) {
	if m.attachFileResourceFunc != nil {
		return m.attachFileResourceFunc(ctx, userID, postID, input)
	}
	return domain.FileResource{}, nil
}

func fakeAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := jwtverify.WithClaims(r.Context(), jwtverify.Claims{UserID: 1, Email: "me@example.com"})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func newTestMux(p *mockPosts) *http.ServeMux {
	log := logger.NewWithWriter(&bytes.Buffer{}, "test", "info")
	mux := http.NewServeMux()
	NewHandler(p, 5*time.Second, log).Routes(mux, fakeAuth)
	return mux
}

func TestListMine(t *testing.T) {
	var gotUser int64
	var gotPage, gotSize int
	mux := newTestMux(&mockPosts{
		listByUserFunc: func(ctx context.Context, userID int64, page, size int) (domain.PostPage, error) {
			gotUser, gotPage, gotSize = userID, page, size
			return domain.PostPage{Meta: domain.PageMeta{Page: page, Count: 0, MaxCount: 20}}, nil
		},
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/me/posts?page=2&size=5", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1), gotUser)
	assert.Equal(t, 2, gotPage)
	assert.Equal(t, 5, gotSize)
	assert.JSONEq(t, `{"meta":{"page":2,"count":0,"maxCount":20},"documents":[]}`, rec.Body.String())
}

func TestListMine_InvalidQuery(t *testing.T) {
	mux := newTestMux(&mockPosts{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/me/posts?page=-1", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreatePost(t *testing.T) {
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	mux := newTestMux(&mockPosts{
		createFunc: func(ctx context.Context, userID int64, input service.CreatePostInput) (domain.Post, error) {
			if input.Title == "" {
				return domain.Post{}, service.ErrValidationTitle
			}
			return domain.Post{ID: 10, UserID: userID, Title: input.Title, Content: input.Content, CreatedAt: created, UpdatedAt: created}, nil
		},
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader(`{"title":"hi","content":"there"}`)))
	require.Equal(t, http.StatusCreated, rec.Code)

	var body PostResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, int64(10), body.ID)
	assert.Equal(t, int64(1), body.UserID)
	assert.Equal(t, "hi", body.Title)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader(`{"title":"","content":"there"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_TITLE_LENGTH")

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader(`{"title":"hi","extra":1}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPost(t *testing.T) {
	mux := newTestMux(&mockPosts{
		getByIDFunc: func(ctx context.Context, id int64) (domain.Post, error) {
			if id != 3 {
				return domain.Post{}, service.ErrPostNotFound
			}
			return domain.Post{ID: 3, UserID: 2, Title: "t", Content: "c"}, nil
		},
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/posts/3", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "files")

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/posts/4", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "POST_NOT_FOUND")
}

func TestListFiles(t *testing.T) {
	mux := newTestMux(&mockPosts{
		listFileResourcesFunc: func(ctx context.Context, postID int64) ([]domain.FileResource, error) {
			return nil, nil
		},
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/posts/3/files", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestAttachFile(t *testing.T) {
	var gotUser, gotPost int64
	mux := newTestMux(&mockPosts{
		attachFileResourceFunc: func(ctx context.Context, userID, postID int64, input service.AttachFileInput) (domain.FileResource, error) {
			gotUser, gotPost = userID, postID
			if postID == 9 {
				return domain.FileResource{}, service.ErrNotPostOwner
			}
			return domain.FileResource{ID: 1, PostID: postID, Name: input.Name, URL: input.URL}, nil
		},
	})

	body := `{"name":"a.png","url":"https://cdn.example.com/a.png"}`

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/posts/3/files", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(1), gotUser)
	assert.Equal(t, int64(3), gotPost)

	var file FileResourceResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&file))
	assert.Equal(t, "https://cdn.example.com/a.png", file.URL)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/posts/9/files", strings.NewReader(body)))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
