package token

import (
	"errors"
	"testing"
	"time"
)

func TestIssuePair_VerifyRoundtrip(t *testing.T) {
	t.Parallel()

	issuer := NewIssuer([]byte("super-secret"), 10*time.Minute, 7*24*time.Hour)

	pair, err := issuer.IssuePair("user-123")
	if err != nil {
		t.Fatalf("IssuePair error: %v", err)
	}

	gotAccess, err := issuer.Verify(pair.Access, UseAccess)
	if err != nil {
		t.Fatalf("Verify access error: %v", err)
	}
	if gotAccess != "user-123" {
		t.Fatalf("access subject mismatch: got %q want %q", gotAccess, "user-123")
	}

	gotRefresh, err := issuer.Verify(pair.Refresh, UseRefresh)
	if err != nil {
		t.Fatalf("Verify refresh error: %v", err)
	}
	if gotRefresh != "user-123" {
		t.Fatalf("refresh subject mismatch: got %q want %q", gotRefresh, "user-123")
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	issuer := NewIssuer([]byte("secret"), 10*time.Minute, time.Hour)

	pair, err := issuer.IssuePair("u1")
	if err != nil {
		t.Fatalf("IssuePair error: %v", err)
	}

	// move the verification clock past the access TTL
	issuer.Now = func() time.Time { return time.Now().Add(11 * time.Minute) }

	_, err = issuer.Verify(pair.Access, UseAccess)
	if !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}

	// the refresh token outlives the access token
	if _, err := issuer.Verify(pair.Refresh, UseRefresh); err != nil {
		t.Fatalf("refresh should still verify: %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	pair, err := NewIssuer([]byte("right-secret"), time.Hour, time.Hour).IssuePair("u2")
	if err != nil {
		t.Fatalf("IssuePair error: %v", err)
	}

	_, err = NewIssuer([]byte("wrong-secret"), time.Hour, time.Hour).Verify(pair.Access, UseAccess)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerify_UseMismatch(t *testing.T) {
	t.Parallel()

	issuer := NewIssuer([]byte("secret"), time.Hour, time.Hour)

	pair, err := issuer.IssuePair("u3")
	if err != nil {
		t.Fatalf("IssuePair error: %v", err)
	}

	// an access token must not pass as a refresh token, and vice versa
	if _, err := issuer.Verify(pair.Access, UseRefresh); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("access-as-refresh: expected ErrInvalidToken, got %v", err)
	}
	if _, err := issuer.Verify(pair.Refresh, UseAccess); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("refresh-as-access: expected ErrInvalidToken, got %v", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	issuer := NewIssuer([]byte("k"), time.Hour, time.Hour)

	_, err := issuer.Verify("not.a.jwt", UseAccess)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
