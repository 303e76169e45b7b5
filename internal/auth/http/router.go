package http

import (
	"context"
	"net/http"
	"time"

	authdomain "github.com/WooodHead/everpost-backend/internal/auth/domain"
	"github.com/WooodHead/everpost-backend/internal/auth/service"
	commonhttp "github.com/WooodHead/everpost-backend/internal/common/http"
	"github.com/WooodHead/everpost-backend/internal/common/logger"
	userdomain "github.com/WooodHead/everpost-backend/internal/user/domain"
	userhttp "github.com/WooodHead/everpost-backend/internal/user/http"
)

type Accounts interface {
	Register(ctx context.Context, input service.RegisterInput) (userdomain.User, error)
	Authenticate(ctx context.Context, email, password string) (authdomain.Token, error)
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type Handler struct {
	accounts     Accounts
	errorHandler *commonhttp.ErrorHandler
	timeout      time.Duration
	log          *logger.Logger
}

func NewHandler(accounts Accounts, timeout time.Duration, log *logger.Logger) *Handler {
	return &Handler{
		accounts:     accounts,
		errorHandler: commonhttp.NewErrorHandler(log),
		timeout:      timeout,
		log:          log,
	}
}

// Routes registers the credential endpoints. Both are public; their rate
// limit buckets are chosen by commonhttp.StrictRateLimiter from the path.
func (h *Handler) Routes(mux *http.ServeMux) {
	withTimeout := commonhttp.WithTimeout(h.timeout)

	mux.HandleFunc("POST /users", withTimeout(h.register))
	mux.HandleFunc("POST /auth/email", withTimeout(h.login))
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := commonhttp.DecodeJSONIgnoreUnknown(r, &req); err != nil {
		h.log.WithFields(r.Context(), logger.Fields{
			"action": "register_invalid_json",
		}).Warnf("register failed: %v", err)
		h.errorHandler.HandleError(w, r, err)
		return
	}

	user, err := h.accounts.Register(r.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, userhttp.ToUserResponse(user))
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	token, err := h.accounts.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, tokenResponse{Token: token.AccessToken})
}
