package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/typewell/typewell/shared/domain"
	internal_errors "github.com/typewell/typewell/shared/errors"
)

func TestNewToken_DecodeToken(t *testing.T) {
	svc := New("secret", time.Hour)

	token, err := svc.NewToken(domain.User{Id: "u-1"})
	require.NoError(t, err)

	uid, err := svc.DecodeToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", uid)
	assert.Equal(t, time.Hour, svc.TTL())
}

func TestDecodeToken_Rejects(t *testing.T) {
	good := New("secret", time.Hour)
	token, err := good.NewToken(domain.User{Id: "u-1"})
	require.NoError(t, err)

	expired, err := New("secret", -time.Minute).NewToken(domain.User{Id: "u-1"})
	require.NoError(t, err)

	noUid, err := good.NewToken(domain.User{})
	require.NoError(t, err)

	tests := []struct {
		name  string
		svc   JwtService
		token string
	}{
		{"wrong key", New("other", time.Hour), token},
		{"expired", good, expired},
		{"garbage", good, "not.a.jwt"},
		{"empty uid", good, noUid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.svc.DecodeToken(tt.token)
			require.Error(t, err)
			e, ok := err.(*internal_errors.ErrorWithStatusCode)
			require.True(t, ok)
			assert.Equal(t, 401, e.StatusCode)
		})
	}
}
