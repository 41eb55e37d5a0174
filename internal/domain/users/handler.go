package users

import (
	"errors"
	"net/http"
	"time"

	"pet-vet-reviews/internal/middleware"
	"pet-vet-reviews/internal/platform/httpx"
	"pet-vet-reviews/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Post("/users", registerHandler(svc, log))

	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/", loginHandler(svc, log))
		ar.With(middleware.RequireAuth).Get("/", meHandler(svc, log))
	})
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email" msg:"Please include a valid email"`
	Password string `json:"password" validate:"min=6" msg:"password is required"`
	UserName string `json:"userName"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email" msg:"Please include a valid email"`
	Password string `json:"password" validate:"required" msg:"Password is required"`
}

type UserResponse struct {
	ID       string    `json:"_id"`
	Email    string    `json:"email"`
	UserName string    `json:"userName"`
	Date     time.Time `json:"date"`
}

type sessionResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// registerHandler godoc
// @Summary  Register user
// @Tags     users
// @Accept   json
// @Produce  json
// @Success  200 {object} sessionResponse
// @Router   /users [post]
func registerHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if !httpx.Bind(w, r, &req) {
			return
		}

		sess, err := svc.Register(r.Context(), RegisterInput{
			Email:    req.Email,
			Password: req.Password,
			UserName: req.UserName,
		})
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, toSessionResponse(sess))
	}
}

// loginHandler godoc
// @Summary  Authenticate user and get token
// @Tags     auth
// @Router   /auth [post]
func loginHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if !httpx.Bind(w, r, &req) {
			return
		}

		sess, err := svc.Authenticate(r.Context(), req.Email, req.Password)
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, toSessionResponse(sess))
	}
}

func meHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := svc.GetByID(r.Context(), middleware.UserID(r.Context()))
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, ToUserResponse(u))
	}
}

func writeError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	switch {
	case errors.Is(err, ErrPasswordTooLong):
		httpx.WriteValidation(w, httpx.FieldError{Param: "password", Msg: "Password must be at most 72 bytes"})
	case errors.Is(err, ErrInvalidInput):
		httpx.WriteValidation(w, httpx.FieldError{Param: "body", Msg: "email and password are required"})
	case errors.Is(err, ErrEmailTaken):
		httpx.WriteMessage(w, http.StatusBadRequest, "User already exists")
	case errors.Is(err, ErrInvalidCredentials):
		httpx.WriteMessage(w, http.StatusBadRequest, "Invalid Credentials")
	case errors.Is(err, ErrNotFound):
		httpx.WriteMessage(w, http.StatusNotFound, "User not found")
	default:
		httpx.WriteServerError(w, r, log, err)
	}
}

func ToUserResponse(u User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Email:    u.Email,
		UserName: u.UserName,
		Date:     u.CreatedAt,
	}
}

func toSessionResponse(s Session) sessionResponse {
	return sessionResponse{Token: s.Token, User: ToUserResponse(s.User)}
}
