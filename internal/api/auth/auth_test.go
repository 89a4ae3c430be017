package auth

import (
	"backtester/internal/middleware"
	"backtester/internal/model"
	authServ "backtester/internal/service/auth"
	"backtester/pkg/token"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

type stubAuthService struct {
	registerErr error
	loginErr    error
	refreshErr  error
	refreshed   *model.AuthData
	loggedOut   string
}

var session = &model.AuthData{AccessToken: "access", RefreshToken: "refresh", SessionID: "sid"}

func (s *stubAuthService) Register(context.Context, *model.User) (*model.AuthData, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return session, nil
}

func (s *stubAuthService) Login(context.Context, *model.User) (*model.AuthData, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return session, nil
}

func (s *stubAuthService) Refresh(_ context.Context, data *model.AuthData) (string, error) {
	s.refreshed = data
	return "new-access", s.refreshErr
}

func (s *stubAuthService) Logout(_ context.Context, sessionID string) error {
	s.loggedOut = sessionID
	return nil
}

func (s *stubAuthService) Me(_ context.Context, id int) (*model.User, error) {
	return &model.User{ID: id, Email: "ann@example.com"}, nil
}

func newHandler(s *stubAuthService) *Handler {
	return NewHandler(HandlerDeps{Serv: s, RefreshTTL: time.Hour, Logger: zap.NewNop()})
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "created", status: http.StatusCreated},
		{name: "duplicate", err: authServ.ErrUserExists, status: http.StatusConflict},
		{name: "empty", err: authServ.ErrInvalidInput, status: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			body := strings.NewReader(`{"email":"ann@example.com","password":"pw"}`)
			newHandler(&stubAuthService{registerErr: tt.err}).Register(w, httptest.NewRequest(http.MethodPost, "/register", body))

			if w.Code != tt.status {
				t.Fatalf("status=%d want=%d", w.Code, tt.status)
			}
			if tt.status == http.StatusCreated {
				if !strings.Contains(w.Body.String(), `"access_token":"access"`) {
					t.Fatalf("body=%s", w.Body.String())
				}
				if len(w.Result().Cookies()) != 2 {
					t.Fatalf("cookies=%v want session_id and refresh_token", w.Result().Cookies())
				}
			}
		})
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	w := httptest.NewRecorder()
	body := strings.NewReader(`{"email":"ann@example.com","password":"bad"}`)
	newHandler(&stubAuthService{loginErr: authServ.ErrInvalidCredentials}).Login(w, httptest.NewRequest(http.MethodPost, "/login", body))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d want=401", w.Code)
	}
}

func TestRefresh(t *testing.T) {
	s := &stubAuthService{}
	r := httptest.NewRequest(http.MethodPost, "/refresh", nil)
	r.AddCookie(&http.Cookie{Name: sessionCookie, Value: "sid"})
	r.AddCookie(&http.Cookie{Name: refreshCookie, Value: "refresh"})
	w := httptest.NewRecorder()

	newHandler(s).Refresh(w, r)

	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "new-access") {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if s.refreshed.SessionID != "sid" || s.refreshed.RefreshToken != "refresh" {
		t.Fatalf("refreshed=%+v", s.refreshed)
	}

	w = httptest.NewRecorder()
	newHandler(s).Refresh(w, httptest.NewRequest(http.MethodPost, "/refresh", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status without cookies=%d want=401", w.Code)
	}
}

func TestLogout(t *testing.T) {
	s := &stubAuthService{}
	r := httptest.NewRequest(http.MethodPost, "/logout", nil)
	r.AddCookie(&http.Cookie{Name: sessionCookie, Value: "sid"})
	w := httptest.NewRecorder()

	newHandler(s).Logout(w, r)

	if w.Code != http.StatusNoContent || s.loggedOut != "sid" {
		t.Fatalf("status=%d logged_out=%q", w.Code, s.loggedOut)
	}
}

func TestMe(t *testing.T) {
	secret := []byte("secret")
	access, err := token.GenerateAccessToken(&model.User{ID: 5}, secret, time.Minute)
	if err != nil {
		t.Fatalf("err=%v", err)
	}

	h := middleware.Auth(secret)(http.HandlerFunc(newHandler(&stubAuthService{}).Me))

	r := httptest.NewRequest(http.MethodGet, "/me", nil)
	r.Header.Set("Authorization", "Bearer "+access)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"id":5`) {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
}
