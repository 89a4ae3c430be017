package auth

import (
	"backtester/internal/model"
	"backtester/internal/repository"
	"backtester/pkg/pass"
	"context"
	"errors"
	"strings"
)

func (s *serv) Login(ctx context.Context, user *model.User) (*model.AuthData, error) {
	// Получение пользователя из бд по email
	stored, err := s.userRepo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(user.Email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// Верификация пароля
	if !pass.VerifyPassword(stored.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.openSession(ctx, stored)
}

func (s *serv) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrInvalidSession
	}
	return s.authRepo.DeleteSession(ctx, sessionID)
}

// Me профиль пользователя из access токена
func (s *serv) Me(ctx context.Context, userID int) (*model.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	user.Password = ""
	return user, nil
}
