package jwtmw

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TestNewGenerator は各種設定でGeneratorが正しく生成されることを検証します。
func TestNewGenerator(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		secret     string
		expiration time.Duration
	}{
		{"standard config", "my-secret-key", time.Hour},
		{"long expiration", "secret", 24 * time.Hour * 30},
		{"short expiration", "s", time.Minute},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gen := NewGenerator(tt.secret, tt.expiration)

			if gen == nil {
				t.Fatal("expected generator to be non-nil")
			}
			if string(gen.secret) != tt.secret {
				t.Errorf("expected secret %q, got %q", tt.secret, string(gen.secret))
			}
			if gen.expiration != tt.expiration {
				t.Errorf("expected expiration %v, got %v", tt.expiration, gen.expiration)
			}
		})
	}
}

// TestGenerator_GenerateToken は生成されたJWTトークンが有効で正しいクレームを含むことを検証します。
func TestGenerator_GenerateToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		accountID string
		kind      string
		email     string
	}{
		{"student", "3f1c7a9e-0000-4000-8000-000000000001", "student", "student@example.com"},
		{"school", "3f1c7a9e-0000-4000-8000-000000000002", "school", "office@school.edu"},
		{"supporter with tagged email", "3f1c7a9e-0000-4000-8000-000000000003", "supporter", "user+tag@example.com"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gen := NewGenerator("test-secret", time.Hour)
			tokenStr, err := gen.GenerateToken(tt.accountID, tt.kind, tt.email)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
				return []byte("test-secret"), nil
			})
			if err != nil {
				t.Fatalf("failed to parse token: %v", err)
			}
			if !token.Valid {
				t.Error("expected token to be valid")
			}
			if claims.Subject != tt.accountID {
				t.Errorf("expected sub %q, got %q", tt.accountID, claims.Subject)
			}
			if claims.Kind != tt.kind {
				t.Errorf("expected kind %q, got %q", tt.kind, claims.Kind)
			}
			if claims.Email != tt.email {
				t.Errorf("expected email %q, got %q", tt.email, claims.Email)
			}
			if claims.ExpiresAt == nil || claims.IssuedAt == nil {
				t.Error("expected exp and iat claims to be set")
			}
		})
	}
}

// TestGenerator_GenerateToken_SigningMethod はトークンがHS256署名アルゴリズムで署名されていることを検証します。
func TestGenerator_GenerateToken_SigningMethod(t *testing.T) {
	t.Parallel()

	gen := NewGenerator("test-secret", time.Hour)
	tokenStr, err := gen.GenerateToken("id-1", "student", "test@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, err := jwt.Parse(tokenStr, func(tok *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil {
		t.Fatalf("failed to parse token: %v", err)
	}
	if token.Method.Alg() != "HS256" {
		t.Errorf("expected HS256, got %s", token.Method.Alg())
	}
}

// TestGenerator_GenerateToken_Expiration はトークンのexp・iatクレームが正しい時刻範囲内であることを検証します。
func TestGenerator_GenerateToken_Expiration(t *testing.T) {
	t.Parallel()

	expiration := 2 * time.Hour
	gen := NewGenerator("test-secret", expiration)

	before := time.Now().Truncate(time.Second)
	tokenStr, err := gen.GenerateToken("id-1", "student", "test@example.com")
	after := time.Now().Truncate(time.Second).Add(time.Second) // Add 1 second buffer
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims := &Claims{}
	if _, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	}); err != nil {
		t.Fatalf("failed to parse token: %v", err)
	}

	expUnix := claims.ExpiresAt.Unix()
	if expUnix < before.Add(expiration).Unix() || expUnix > after.Add(expiration).Unix() {
		t.Errorf("exp %d not in expected range", expUnix)
	}
	iatUnix := claims.IssuedAt.Unix()
	if iatUnix < before.Unix() || iatUnix > after.Unix() {
		t.Errorf("iat %d not in expected range", iatUnix)
	}
}

// TestGenerator_GenerateToken_EmptySecret は未設定のシークレットで署名を拒否することを検証します。
func TestGenerator_GenerateToken_EmptySecret(t *testing.T) {
	t.Parallel()

	gen := NewGenerator("", time.Hour)
	if _, err := gen.GenerateToken("id-1", "student", "test@example.com"); err == nil {
		t.Error("expected error for empty secret")
	}
}
