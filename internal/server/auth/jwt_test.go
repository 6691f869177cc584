package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/dkaledin/teamtrack/internal/common"
)

var secret = []byte("test-secret")

func TestGenerateAndParse(t *testing.T) {
	tokenString, err := GenerateToken("p-1", "alice@example.com", secret, time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	claims, err := ParseToken(tokenString, secret)
	if err != nil {
		t.Fatalf("ParseToken error: %v", err)
	}
	if claims.PrincipalID != "p-1" || claims.Email != "alice@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestParse_Expired(t *testing.T) {
	tokenString, err := GenerateToken("p-1", "alice@example.com", secret, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = ParseToken(tokenString, secret)
	if !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("want common.ErrTokenExpired, got %v", err)
	}
}

func TestParse_WrongKey(t *testing.T) {
	tokenString, err := GenerateToken("p-1", "alice@example.com", secret, time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = ParseToken(tokenString, []byte("other-secret"))
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("want common.ErrInvalidToken, got %v", err)
	}
}

func TestParse_Garbage(t *testing.T) {
	_, err := ParseToken("not.a.token", secret)
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("want common.ErrInvalidToken, got %v", err)
	}
}
