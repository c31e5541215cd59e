package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/finbuddy/finance-advisor/pkg/errors"
)

func newTestService(ttl time.Duration) Service {
	return NewService(Config{Secret: "test-secret", TokenTTL: ttl},
		slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestIssueAndValidateRoundTrip(t *testing.T) {
	t.Parallel()

	svc := newTestService(time.Hour)
	ctx := context.Background()

	session, err := svc.IssueToken(ctx, "user-42")
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)

	claims, err := svc.ValidateToken(ctx, session.Token)
	require.NoError(t, err)
	require.Equal(t, "user-42", claims.UserID)
	require.WithinDuration(t, session.ExpiresAt, claims.ExpiresAt, time.Second)
}

func TestIssueTokenRejectsEmptyUser(t *testing.T) {
	t.Parallel()

	svc := newTestService(time.Hour)
	_, err := svc.IssueToken(context.Background(), "   ")
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	t.Parallel()

	svc := newTestService(time.Hour)
	ctx := context.Background()

	_, err := svc.ValidateToken(ctx, "")
	require.True(t, apperrors.IsCode(err, "invalid_token"))

	_, err = svc.ValidateToken(ctx, "not.a.token")
	require.True(t, apperrors.IsCode(err, "invalid_token"))
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	issuer := newTestService(time.Hour)
	session, err := issuer.IssueToken(context.Background(), "user-1")
	require.NoError(t, err)

	verifier := NewService(Config{Secret: "other-secret", TokenTTL: time.Hour},
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, err = verifier.ValidateToken(context.Background(), session.Token)
	require.True(t, apperrors.IsCode(err, "invalid_token"))
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	t.Parallel()

	svc := newTestService(-time.Minute)
	session, err := svc.IssueToken(context.Background(), "user-2")
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), session.Token)
	require.True(t, apperrors.IsCode(err, "invalid_token"))
}
