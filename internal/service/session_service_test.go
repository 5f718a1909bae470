package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"account-service/internal/token"
)

func TestRefresh_Rotation(t *testing.T) {
	t.Parallel()

	issuer := token.NewIssuer([]byte("secret"), 10*time.Minute, 7*24*time.Hour)
	svc := NewSessionService(issuer)

	pair, err := svc.IssueSession("user-1")
	require.NoError(t, err)

	userID, next, err := svc.Refresh(pair.Refresh)
	require.NoError(t, err)
	require.Equal(t, "user-1", userID)

	// the new access token resolves to the same subject
	got, err := svc.VerifyAccess(next.Access)
	require.NoError(t, err)
	require.Equal(t, "user-1", got)
}

func TestRefresh_InvalidSignature(t *testing.T) {
	t.Parallel()

	foreign := token.NewIssuer([]byte("other-secret"), time.Hour, time.Hour)
	forged, err := foreign.IssuePair("user-1")
	require.NoError(t, err)

	svc := NewSessionService(token.NewIssuer([]byte("secret"), time.Hour, time.Hour))

	_, _, err = svc.Refresh(forged.Refresh)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestRefresh_AccessTokenRejected(t *testing.T) {
	t.Parallel()

	issuer := token.NewIssuer([]byte("secret"), time.Hour, time.Hour)
	svc := NewSessionService(issuer)

	pair, err := svc.IssueSession("user-1")
	require.NoError(t, err)

	_, _, err = svc.Refresh(pair.Access)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestRefresh_Expired(t *testing.T) {
	t.Parallel()

	issuer := token.NewIssuer([]byte("secret"), time.Minute, time.Hour)
	svc := NewSessionService(issuer)

	pair, err := svc.IssueSession("user-1")
	require.NoError(t, err)

	issuer.Now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	_, _, err = svc.Refresh(pair.Refresh)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestVerifyAccess_Garbage(t *testing.T) {
	t.Parallel()

	svc := NewSessionService(token.NewIssuer([]byte("secret"), time.Hour, time.Hour))

	_, err := svc.VerifyAccess("garbage")
	require.ErrorIs(t, err, ErrUnauthorized)
}
