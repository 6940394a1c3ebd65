package authsvc

import (
	"errors"
	"testing"
	"time"

	"nova_crm/internal/common"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, err := tm.GenerateToken("64f0a1b2c3d4e5f601234567", "jane@example.com", "MANAGER")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := tm.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != "64f0a1b2c3d4e5f601234567" {
		t.Errorf("UserID = %q", claims.UserID)
	}
	if claims.Email != "jane@example.com" {
		t.Errorf("Email = %q", claims.Email)
	}
	if claims.Role != "MANAGER" {
		t.Errorf("Role = %q", claims.Role)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	tm := NewTokenManager("secret-a", time.Hour)
	other := NewTokenManager("secret-b", time.Hour)

	token, err := tm.GenerateToken("id", "a@b.c", "EMPLOYEE")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := other.ValidateToken(token); !errors.Is(err, common.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenExpired(t *testing.T) {
	tm := NewTokenManager("test-secret", -time.Minute)

	token, err := tm.GenerateToken("id", "a@b.c", "EMPLOYEE")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := tm.ValidateToken(token); err == nil {
		t.Error("expected expired token to be rejected")
	}
}

func TestExtractToken(t *testing.T) {
	cases := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"valid", "Bearer abc.def.ghi", "abc.def.ghi", false},
		{"case insensitive scheme", "bearer abc", "abc", false},
		{"missing", "", "", true},
		{"no scheme", "abc.def.ghi", "", true},
		{"empty token", "Bearer ", "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractToken(tc.header)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}
