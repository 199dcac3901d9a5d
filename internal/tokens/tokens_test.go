package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/farmnet/farmledger/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:         "testsecret123456789012345678901234",
			AccessTokenTTL: time.Hour,
		},
	}
}

func TestGenerateAndParse(t *testing.T) {
	cfg := testConfig()

	raw, err := Generate(cfg, "nva", "appUser", "staff")
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := Parse(cfg, raw)
	require.NoError(t, err)
	require.Equal(t, "nva", claims["sub"])
	require.Equal(t, "appUser", claims["identity"])
	require.Equal(t, "staff", claims["role"])
}

func TestParseRejectsWrongSecret(t *testing.T) {
	cfg := testConfig()
	raw, err := Generate(cfg, "nva", "appUser", "staff")
	require.NoError(t, err)

	other := testConfig()
	other.JWT.Secret = "completely-different-secret-value"
	_, err = Parse(other, raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse(testConfig(), "not.a.token")
	require.ErrorIs(t, err, ErrInvalidToken)
}
