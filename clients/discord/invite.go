package discord

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/bwmarrin/discordgo"
)

// BotPermissions is the permission set the bot needs in every channel it translates in
const BotPermissions int64 = discordgo.PermissionViewChannel |
	discordgo.PermissionSendMessages |
	discordgo.PermissionCreatePublicThreads |
	discordgo.PermissionSendMessagesInThreads |
	discordgo.PermissionManageThreads |
	discordgo.PermissionReadMessageHistory |
	discordgo.PermissionAddReactions |
	discordgo.PermissionUseExternalEmojis

// InviteURL builds the OAuth2 link that adds the bot to a server with BotPermissions
func InviteURL(applicationID string) string {
	query := url.Values{}
	query.Set("client_id", applicationID)
	query.Set("permissions", strconv.FormatInt(BotPermissions, 10))
	query.Set("scope", "bot")
	return fmt.Sprintf("https://discord.com/api/oauth2/authorize?%s", query.Encode())
}
