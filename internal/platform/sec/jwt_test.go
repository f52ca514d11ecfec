// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/dishly/internal/platform/sec"
)

func newKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func TestTokenService_RoundTrip(t *testing.T) {
	service := sec.NewTokenServiceFromKeys(newKey(t), nil, "dishly.test")

	token, err := service.GenerateAccessToken("cook-1", sec.RoleAdmin, time.Minute)
	require.NoError(t, err)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "cook-1", claims.UserID)
	assert.Equal(t, string(sec.RoleAdmin), claims.Role)
}

func TestTokenService_RejectsForeignSignature(t *testing.T) {
	issuer := sec.NewTokenServiceFromKeys(newKey(t), nil, "dishly.test")
	verifier := sec.NewTokenServiceFromKeys(nil, &newKey(t).PublicKey, "dishly.test")

	token, err := issuer.GenerateAccessToken("cook-1", sec.RoleMember, time.Minute)
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.Error(t, err)
}

func TestTokenService_RejectsExpiredAndWrongIssuer(t *testing.T) {
	key := newKey(t)
	service := sec.NewTokenServiceFromKeys(key, nil, "dishly.test")

	expired, err := service.GenerateAccessToken("cook-1", sec.RoleMember, -time.Minute)
	require.NoError(t, err)
	_, err = service.VerifyToken(expired)
	assert.Error(t, err)

	other := sec.NewTokenServiceFromKeys(key, nil, "someone.else")
	foreign, err := other.GenerateAccessToken("cook-1", sec.RoleMember, time.Minute)
	require.NoError(t, err)
	_, err = service.VerifyToken(foreign)
	assert.Error(t, err)
}

func TestTokenService_VerifyOnly(t *testing.T) {
	service := sec.NewTokenServiceFromKeys(nil, &newKey(t).PublicKey, "dishly.test")

	_, err := service.GenerateAccessToken("cook-1", sec.RoleMember, time.Minute)
	assert.ErrorIs(t, err, sec.ErrSigningDisabled)
}

func TestUserRole_AtLeast(t *testing.T) {
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleMember))
	assert.True(t, sec.RoleMember.AtLeast(sec.RoleMember))
	assert.False(t, sec.RoleMember.AtLeast(sec.RoleAdmin))
	assert.False(t, sec.UserRole("guest").AtLeast(sec.RoleMember))
}
