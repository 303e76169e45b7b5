package http

import (
	"context"
	"net/http"
	"time"

	commonhttp "github.com/WooodHead/everpost-backend/internal/common/http"
	"github.com/WooodHead/everpost-backend/internal/common/jwtverify"
	"github.com/WooodHead/everpost-backend/internal/common/logger"
	"github.com/WooodHead/everpost-backend/internal/user/domain"
	"github.com/WooodHead/everpost-backend/internal/user/service"
)

type Profiles interface {
	GetByID(ctx context.Context, id int64) (domain.User, error)
	UpdateProfile(ctx context.Context, id int64, input service.UpdateProfileInput) (domain.User, error)
	Delete(ctx context.Context, id int64) error
}

type updateProfileRequest struct {
	Username     *string `json:"username"`
	Email        *string `json:"email"`
	ProfileImage *string `json:"profileImage"`
}

type Handler struct {
	profiles     Profiles
	errorHandler *commonhttp.ErrorHandler
	timeout      time.Duration
	log          *logger.Logger
}

func NewHandler(profiles Profiles, timeout time.Duration, log *logger.Logger) *Handler {
	return &Handler{
		profiles:     profiles,
		errorHandler: commonhttp.NewErrorHandler(log),
		timeout:      timeout,
		log:          log,
	}
}

// Routes registers the profile endpoints. requireAuth wraps the ones that act
// on the caller's own account.
func (h *Handler) Routes(mux *http.ServeMux, requireAuth func(http.Handler) http.Handler) {
	withTimeout := commonhttp.WithTimeout(h.timeout)

	mux.Handle("GET /users/me", requireAuth(withTimeout(h.getMe)))
	mux.Handle("PATCH /users/me", requireAuth(withTimeout(h.updateMe)))
	mux.Handle("DELETE /users/me", requireAuth(withTimeout(h.deleteMe)))
	mux.Handle("GET /users/{id}", withTimeout(h.getByID))
}

func (h *Handler) getByID(w http.ResponseWriter, r *http.Request) {
	id, err := commonhttp.PathID(r, "id")
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	user, err := h.profiles.GetByID(r.Context(), id)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, ToUserResponse(user))
}

func (h *Handler) getMe(w http.ResponseWriter, r *http.Request) {
	claims, _ := jwtverify.FromContext(r.Context())

	user, err := h.profiles.GetByID(r.Context(), claims.UserID)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, ToUserResponse(user))
}

func (h *Handler) updateMe(w http.ResponseWriter, r *http.Request) {
	claims, _ := jwtverify.FromContext(r.Context())

	var req updateProfileRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	user, err := h.profiles.UpdateProfile(r.Context(), claims.UserID, service.UpdateProfileInput{
		Username:     req.Username,
		Email:        req.Email,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, ToUserResponse(user))
}

func (h *Handler) deleteMe(w http.ResponseWriter, r *http.Request) {
	claims, _ := jwtverify.FromContext(r.Context())

	if err := h.profiles.Delete(r.Context(), claims.UserID); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, commonhttp.MessageResponse{Message: "delete success"})
}
