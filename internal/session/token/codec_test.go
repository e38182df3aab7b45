package token

import (
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/impactlink/engage/internal/config"
	"github.com/impactlink/engage/internal/session/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCodec(secret string) *Codec {
	return NewCodec(config.Config{SigningSecret: secret})
}

func TestIssueParseRoundTrip(t *testing.T) {
	codec := newTestCodec("test-secret")
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	sessionID := node.Generate()
	userID := node.Generate()

	raw, err := codec.Issue(sessionID, userID, domain.RoleNGO, "ngo@example.com", time.Now().Add(time.Hour))
	require.NoError(t, err)

	claims, err := codec.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, sessionID, claims.SessionID)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, domain.RoleNGO, claims.Role)
	assert.Equal(t, "ngo@example.com", claims.Email)
}

func TestParseRejectsCorruption(t *testing.T) {
	codec := newTestCodec("test-secret")
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	raw, err := codec.Issue(node.Generate(), node.Generate(), domain.RoleIndividual, "a@example.com", time.Now().Add(time.Hour))
	require.NoError(t, err)

	cases := map[string]string{
		"truncated":    raw[:len(raw)-10],
		"flipped byte": raw[:len(raw)-1] + flip(raw[len(raw)-1:]),
		"garbage":      "not.a.token",
		"empty":        "",
	}
	for name, tampered := range cases {
		_, err := codec.Parse(tampered)
		assert.ErrorIs(t, err, domain.ErrInvalidToken, name)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	raw, err := newTestCodec("secret-a").Issue(node.Generate(), node.Generate(), domain.RoleCompany, "c@example.com", time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = newTestCodec("secret-b").Parse(raw)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestParseRejectsExpiredClaim(t *testing.T) {
	codec := newTestCodec("test-secret")
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	raw, err := codec.Issue(node.Generate(), node.Generate(), domain.RoleIndividual, "a@example.com", time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = codec.Parse(raw)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func flip(s string) string {
	if strings.HasSuffix(s, "A") {
		return "B"
	}
	return "A"
}
