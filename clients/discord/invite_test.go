package discord

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBotPermissions(t *testing.T) {
	assert.Equal(t, int64(326417845312), BotPermissions)
}

func TestInviteURL(t *testing.T) {
	parsed, err := url.Parse(InviteURL("1234567890"))
	require.NoError(t, err)

	assert.Equal(t, "discord.com", parsed.Host)
	assert.Equal(t, "/api/oauth2/authorize", parsed.Path)
	assert.Equal(t, "1234567890", parsed.Query().Get("client_id"))
	assert.Equal(t, "326417845312", parsed.Query().Get("permissions"))
	assert.Equal(t, "bot", parsed.Query().Get("scope"))
}
