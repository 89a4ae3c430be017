package auth

import (
	dto "backtester/internal/api/dto/auth"
	"backtester/internal/converter"
	"backtester/internal/middleware"
	"backtester/internal/model"
	"backtester/internal/service"
	authServ "backtester/internal/service/auth"
	"backtester/pkg/req"
	"backtester/pkg/resp"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	sessionCookie = "session_id"
	refreshCookie = "refresh_token"
	tokenType     = "bearer"
)

type HandlerDeps struct {
	Serv       service.AuthService
	RefreshTTL time.Duration
	Logger     *zap.Logger
}

type Handler struct {
	serv       service.AuthService
	refreshTTL time.Duration
	logger     *zap.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv, refreshTTL: deps.RefreshTTL, logger: deps.Logger}
}

// Register создаёт пользователя, открывает сессию
// и возвращает access_token, session_id и refresh_token через cookies
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.RegisterRequest](w, r)
	if err != nil {
		http.Error(w, err.Error(), req.Status(err))
		return
	}

	data, err := h.serv.Register(r.Context(), converter.RegisterRequestToUserModel(&requestBody))
	if err != nil {
		switch {
		case errors.Is(err, authServ.ErrUserExists):
			http.Error(w, "email already registered", http.StatusConflict)
		case errors.Is(err, authServ.ErrInvalidInput):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			h.logger.Error("register failed", zap.Error(err))
			http.Error(w, "register failed", http.StatusInternalServerError)
		}
		return
	}

	h.writeSession(w, http.StatusCreated, data)
}

// Login создаёт сессию и возвращает access_token, session_id и refresh_token через cookies
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.LoginRequest](w, r)
	if err != nil {
		http.Error(w, err.Error(), req.Status(err))
		return
	}

	data, err := h.serv.Login(r.Context(), converter.LoginRequestToUserModel(&requestBody))
	if err != nil {
		if errors.Is(err, authServ.ErrInvalidCredentials) {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		h.logger.Error("login failed", zap.Error(err))
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	h.writeSession(w, http.StatusOK, data)
}

// Refresh выдаёт новый access_token по session_id и refresh_token из cookies
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	sid, err := r.Cookie(sessionCookie)
	if err != nil {
		http.Error(w, "no session_id cookie", http.StatusUnauthorized)
		return
	}
	rt, err := r.Cookie(refreshCookie)
	if err != nil {
		http.Error(w, "no refresh_token cookie", http.StatusUnauthorized)
		return
	}

	accessToken, err := h.serv.Refresh(r.Context(), &model.AuthData{SessionID: sid.Value, RefreshToken: rt.Value})
	if err != nil {
		if errors.Is(err, authServ.ErrInvalidSession) {
			http.Error(w, "invalid session", http.StatusUnauthorized)
			return
		}
		h.logger.Error("refresh failed", zap.Error(err))
		http.Error(w, "refresh failed", http.StatusInternalServerError)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.TokenResponse{AccessToken: accessToken, TokenType: tokenType})
}

// Logout закрывает сессию по session_id
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		http.Error(w, "no session_id cookie", http.StatusUnauthorized)
		return
	}

	if err = h.serv.Logout(r.Context(), c.Value); err != nil {
		h.logger.Error("logout failed", zap.Error(err))
		http.Error(w, "logout failed", http.StatusInternalServerError)
		return
	}

	deleteCookie(w, sessionCookie, "/")
	deleteCookie(w, refreshCookie, "/refresh")

	w.WriteHeader(http.StatusNoContent)
}

// Me профиль пользователя из Bearer токена
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.serv.Me(r.Context(), userID)
	if err != nil {
		if errors.Is(err, authServ.ErrInvalidCredentials) {
			http.Error(w, "user not found", http.StatusUnauthorized)
			return
		}
		h.logger.Error("me failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToUserResponse(user))
}

func (h *Handler) writeSession(w http.ResponseWriter, status int, data *model.AuthData) {
	maxAge := int(h.refreshTTL.Seconds())

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    data.SessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   maxAge,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookie,
		Value:    data.RefreshToken,
		Path:     "/refresh",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})

	resp.WriteJSONResponse(w, status, dto.TokenResponse{AccessToken: data.AccessToken, TokenType: tokenType})
}

func deleteCookie(w http.ResponseWriter, name, path string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     path,
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
