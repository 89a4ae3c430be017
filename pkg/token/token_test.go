package token

import (
	"backtester/internal/model"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestAccessToken_RoundTrip(t *testing.T) {
	secret := []byte("secret")

	tok, err := GenerateAccessToken(&model.User{ID: 42}, secret, time.Minute)
	if err != nil {
		t.Fatalf("err=%v", err)
	}

	claims, err := VerifyToken(tok, secret)
	if err != nil {
		t.Fatalf("verify err=%v", err)
	}
	id, err := UserID(claims)
	if err != nil || id != 42 {
		t.Fatalf("id=%d err=%v want=42", id, err)
	}
}

func TestAccessToken_Rejected(t *testing.T) {
	secret := []byte("secret")

	expired, _ := GenerateAccessToken(&model.User{ID: 1}, secret, -time.Minute)
	other, _ := GenerateAccessToken(&model.User{ID: 1}, []byte("other"), time.Minute)
	noExp, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Issuer: issuer, Subject: "1"}).SignedString(secret)

	for name, tok := range map[string]string{"expired": expired, "wrong key": other, "no expiry": noExp, "garbage": "a.b.c"} {
		if _, err := VerifyToken(tok, secret); err == nil {
			t.Fatalf("%s: token accepted", name)
		}
	}
}

func TestRefreshToken(t *testing.T) {
	tok, err := GenerateRefreshToken()
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	hash := HashRefreshToken(tok)

	if !VerifyRefreshToken(tok, hash) {
		t.Fatalf("valid refresh token rejected")
	}
	if VerifyRefreshToken(tok+"x", hash) {
		t.Fatalf("tampered refresh token accepted")
	}
	if GenerateSessionID() == GenerateSessionID() {
		t.Fatalf("session ids repeat")
	}
}
