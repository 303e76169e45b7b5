package http

import (
	"context"
	"net/http"
	"time"

	commonhttp "github.com/WooodHead/everpost-backend/internal/common/http"
	"github.com/WooodHead/everpost-backend/internal/common/jwtverify"
	"github.com/WooodHead/everpost-backend/internal/common/logger"
	"github.com/WooodHead/everpost-backend/internal/post/domain"
	"github.com/WooodHead/everpost-backend/internal/post/service"
)

type Posts interface {
	ListByUser(ctx context.Context, userID int64, page, size int) (domain.PostPage, error)
	Create(ctx context.Context, userID int64, input service.CreatePostInput) (domain.Post, error)
	GetByID(ctx context.Context, id int64) (domain.Post, error)
	ListFileResources(ctx context.Context, postID int64) ([]domain.FileResource, error)
	AttachFileResource(ctx context.Context, userID, postID int64, input service.AttachFileInput) (domain.FileResource, error)
}

type createPostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type attachFileRequest struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type Handler struct {
	posts        Posts
	errorHandler *commonhttp.ErrorHandler
	timeout      time.Duration
	log          *logger.Logger
}

func NewHandler(posts Posts, timeout time.Duration, log *logger.Logger) *Handler {
	return &Handler{
		posts:        posts,
		errorHandler: commonhttp.NewErrorHandler(log),
		timeout:      timeout,
		log:          log,
	}
}

func (h *Handler) Routes(mux *http.ServeMux, requireAuth func(http.Handler) http.Handler) {
	withTimeout := commonhttp.WithTimeout(h.timeout)

	mux.Handle("GET /users/me/posts", requireAuth(withTimeout(h.listMine)))
	mux.Handle("POST /posts", requireAuth(withTimeout(h.create)))
	mux.Handle("GET /posts/{id}", withTimeout(h.getByID))
	mux.Handle("GET /posts/{id}/files", withTimeout(h.listFiles))
	mux.Handle("POST /posts/{id}/files", requireAuth(withTimeout(h.attachFile)))
}

func (h *Handler) listMine(w http.ResponseWriter, r *http.Request) {
	claims, _ := jwtverify.FromContext(r.Context())

	page, err := commonhttp.QueryInt(r, "page", 0)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	size, err := commonhttp.QueryInt(r, "size", 0)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	result, err := h.posts.ListByUser(r.Context(), claims.UserID, page, size)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, ToPostPageResponse(result))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	claims, _ := jwtverify.FromContext(r.Context())

	var req createPostRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	post, err := h.posts.Create(r.Context(), claims.UserID, service.CreatePostInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, ToPostResponse(post))
}

func (h *Handler) getByID(w http.ResponseWriter, r *http.Request) {
	id, err := commonhttp.PathID(r, "id")
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	post, err := h.posts.GetByID(r.Context(), id)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, ToPostResponse(post))
}

func (h *Handler) listFiles(w http.ResponseWriter, r *http.Request) {
	id, err := commonhttp.PathID(r, "id")
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	files, err := h.posts.ListFileResources(r.Context(), id)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	resp := make([]FileResourceResponse, 0, len(files))
	for _, f := range files {
		resp = append(resp, ToFileResourceResponse(f))
	}
	commonhttp.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) attachFile(w http.ResponseWriter, r *http.Request) {
	claims, _ := jwtverify.FromContext(r.Context())

	id, err := commonhttp.PathID(r, "id")
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	var req attachFileRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	file, err := h.posts.AttachFileResource(r.Context(), claims.UserID, id, service.AttachFileInput{
		Name: req.Name,
		URL:  req.URL,
	})
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, ToFileResourceResponse(file))
}
