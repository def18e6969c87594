package security

import (
	"math/rand"
	"testing"

	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/db"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestToken(t *testing.T) {
	// Create test data
	id := uuid.New()
	tokenType := []TokenType{AccessToken, RefreshToken}[rand.Intn(2)]
	version := rand.Intn(10)

	// Create token
	token, err := service.CreateToken(id, db.Promoter, tokenType, version)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// Verify token
	result, err := service.VerifyToken(token)
	require.NoError(t, err)
	require.NotEmpty(t, result)

	// Compare the test data with the extract claims
	require.Equal(t, id, result.ID)
	require.Equal(t, tokenType, result.TokenType)
	require.Equal(t, version, result.Version)
}

func TestTokenRejectsUnknownRole(t *testing.T) {
	token, err := service.CreateToken(uuid.New(), db.Role("customer"), AccessToken, 0)
	require.NoError(t, err)

	_, err = service.VerifyToken(token)
	require.Error(t, err)
}
