package auth

import (
	"context"
	"testing"
	"time"

	apperrors "github.com/lk2023060901/ai-learning-backend/internal/pkg/errors"
	"github.com/lk2023060901/ai-learning-backend/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testJWTSecret     = "jwt-secret"
	testSessionSecret = "session-secret"
)

func bearer(t *testing.T, userID string, ttl time.Duration) string {
	t.Helper()
	token, err := NewJWTManager(testJWTSecret, "").GenerateAccessToken(userID, userID+"@example.com", ttl)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestResolve(t *testing.T) {
	valid := bearer(t, "user-1", time.Hour)
	expired := bearer(t, "user-1", -time.Minute)
	signed := SignUserID([]byte(testSessionSecret), "abc")

	tests := []struct {
		name       string
		policy     HeaderPolicy
		creds      Credentials
		wantUser   string
		wantSource string
		wantCode   int
	}{
		{
			name:       "trusted header alone",
			policy:     HeaderPolicyTrusted,
			creds:      Credentials{UserID: "abc"},
			wantUser:   "abc",
			wantSource: SourceHeader,
		},
		{
			name:       "trusted header wins over bearer",
			policy:     HeaderPolicyTrusted,
			creds:      Credentials{UserID: "abc", Authorization: valid},
			wantUser:   "abc",
			wantSource: SourceHeader,
		},
		{
			name:     "nothing at all",
			policy:   HeaderPolicyTrusted,
			creds:    Credentials{},
			wantCode: apperrors.ErrUnauthorized,
		},
		{
			name:       "bearer only",
			policy:     HeaderPolicyBound,
			creds:      Credentials{Authorization: valid},
			wantUser:   "user-1",
			wantSource: SourceBearer,
		},
		{
			name:       "bound header matching bearer",
			policy:     HeaderPolicyBound,
			creds:      Credentials{UserID: "user-1", Authorization: valid},
			wantUser:   "user-1",
			wantSource: SourceBearer,
		},
		{
			name:     "bound header contradicting bearer",
			policy:   HeaderPolicyBound,
			creds:    Credentials{UserID: "someone-else", Authorization: valid},
			wantCode: apperrors.ErrIdentityMismatch,
		},
		{
			name:     "bound unsigned header",
			policy:   HeaderPolicyBound,
			creds:    Credentials{UserID: "abc"},
			wantCode: apperrors.ErrUnauthorized,
		},
		{
			name:     "bound header with forged signature",
			policy:   HeaderPolicyBound,
			creds:    Credentials{UserID: "abc", Signature: SignUserID([]byte("wrong"), "abc")},
			wantCode: apperrors.ErrUnauthorized,
		},
		{
			name:       "bound header with session signature",
			policy:     HeaderPolicyBound,
			creds:      Credentials{UserID: "abc", Signature: signed},
			wantUser:   "abc",
			wantSource: SourceSignedHeader,
		},
		{
			name:     "expired bearer",
			policy:   HeaderPolicyBound,
			creds:    Credentials{Authorization: expired},
			wantCode: apperrors.ErrInvalidToken,
		},
		{
			name:     "malformed authorization header",
			policy:   HeaderPolicyBound,
			creds:    Credentials{Authorization: "Token abc"},
			wantCode: apperrors.ErrInvalidToken,
		},
		{
			name:     "ignored header",
			policy:   HeaderPolicyIgnore,
			creds:    Credentials{UserID: "abc", Signature: signed},
			wantCode: apperrors.ErrUnauthorized,
		},
		{
			name:       "ignored header with bearer",
			policy:     HeaderPolicyIgnore,
			creds:      Credentials{UserID: "abc", Authorization: valid},
			wantUser:   "user-1",
			wantSource: SourceBearer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(NewJWTManager(testJWTSecret, ""), tt.policy, testSessionSecret, logger.NewNop())

			id, err := r.Resolve(context.Background(), tt.creds)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.True(t, apperrors.Is(err, tt.wantCode), "got %v", err)
				assert.True(t, apperrors.IsKind(err, apperrors.KindAuth))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantUser, id.UserID)
			assert.Equal(t, tt.wantSource, id.Source)
		})
	}
}

func TestParseHeaderPolicy(t *testing.T) {
	p, err := ParseHeaderPolicy("bound")
	require.NoError(t, err)
	assert.Equal(t, HeaderPolicyBound, p)

	_, err = ParseHeaderPolicy("open")
	assert.Error(t, err)
}
