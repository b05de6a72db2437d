package service

import (
	"errors"
	"testing"
	"time"

	"library-catalog/internal/apperror"
	"library-catalog/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *TokenManager {
	t.Helper()
	m, err := NewTokenManager(TokenConfig{Secret: "test-secret", TTL: time.Hour})
	require.NoError(t, err)
	return m
}

func TestNewTokenManager(t *testing.T) {
	_, err := NewTokenManager(TokenConfig{})
	require.ErrorIs(t, err, ErrEmptySecret)

	_, err = NewTokenManager(TokenConfig{Secret: "s", TTL: -time.Second})
	require.Error(t, err)

	m, err := NewTokenManager(TokenConfig{Secret: "s"})
	require.NoError(t, err)
	require.Equal(t, DefaultTokenTTL, m.TTL())
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	t.Cleanup(restoreGlobals)
	m := newTestManager(t)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return now }
	newTokenID = func() string { return "token-id" }

	claims := TokenClaims{Role: model.RoleAdmin}
	claims.Subject = "alice"
	tok, exp, err := m.Issue(claims, 0)
	require.NoError(t, err)
	require.True(t, now.Add(time.Hour).Equal(exp))

	got, err := m.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, "alice", got.Subject)
	require.Equal(t, model.RoleAdmin, got.Role)
	require.Equal(t, "token-id", got.ID)
	require.True(t, now.Equal(got.IssuedAt.Time))
	require.True(t, exp.Equal(got.ExpiresAt.Time))

	_, exp, err = m.Issue(claims, 5*time.Minute)
	require.NoError(t, err)
	require.True(t, now.Add(5*time.Minute).Equal(exp))
}

func TestIssueRequiresSubject(t *testing.T) {
	m := newTestManager(t)
	_, _, err := m.Issue(TokenClaims{}, 0)
	require.ErrorIs(t, err, ErrEmptySubject)
}

func TestVerifyExpired(t *testing.T) {
	m := newTestManager(t)
	claims := TokenClaims{}
	claims.Subject = "alice"
	tok, exp, err := m.Issue(claims, -time.Minute)
	require.NoError(t, err)
	require.True(t, exp.Before(time.Now()))

	_, err = m.Verify(tok)
	require.ErrorIs(t, err, apperror.ErrInvalidToken)
	require.Equal(t, 401, apperror.HTTPStatus(err))
}

func TestVerifyRejects(t *testing.T) {
	t.Cleanup(restoreGlobals)
	m := newTestManager(t)
	future := jwt.NewNumericDate(time.Now().Add(time.Hour))

	wrongKey, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "a", ExpiresAt: future}).
		SignedString([]byte("other-secret"))
	require.NoError(t, err)

	otherAlg, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{Subject: "a", ExpiresAt: future}).
		SignedString([]byte("test-secret"))
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "a", ExpiresAt: future}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "a"}).
		SignedString([]byte("test-secret"))
	require.NoError(t, err)

	for name, tok := range map[string]string{
		"malformed": "not.a.token",
		"empty":     "",
		"wrong key": wrongKey,
		"other alg": otherAlg,
		"alg none":  none,
		"no expiry": noExp,
	} {
		_, err := m.Verify(tok)
		require.ErrorIs(t, err, apperror.ErrInvalidToken, name)
	}

	parseWithClaims = func(string, jwt.Claims, jwt.Keyfunc, ...jwt.ParserOption) (*jwt.Token, error) {
		return &jwt.Token{Valid: false}, nil
	}
	_, err = m.Verify("whatever")
	require.ErrorIs(t, err, apperror.ErrInvalidToken)

	parseWithClaims = func(string, jwt.Claims, jwt.Keyfunc, ...jwt.ParserOption) (*jwt.Token, error) {
		return nil, errors.New("boom")
	}
	_, err = m.Verify("whatever")
	require.ErrorIs(t, err, apperror.ErrInvalidToken)
}
