package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/samber/mo"

	"github.com/mythicavalon/EchoLang/clients"
	"github.com/mythicavalon/EchoLang/models"
)

// DiscordClient implements the clients.DiscordClient interface on top of a discordgo session
type DiscordClient struct {
	// session is shared with the gateway handler so that its state cache is reused
	session *discordgo.Session
}

// NewDiscordClient creates a new Discord client backed by the given session
func NewDiscordClient(session *discordgo.Session) clients.DiscordClient {
	return &DiscordClient{session: session}
}

// GetBotUser returns the user the session is authenticated as
func (c *DiscordClient) GetBotUser() (*clients.DiscordBotUser, error) {
	if c.session.State != nil && c.session.State.User != nil {
		return toBotUser(c.session.State.User), nil
	}

	user, err := c.session.User("@me")
	if err != nil {
		return nil, mapRESTError("get bot user", err)
	}
	return toBotUser(user), nil
}

func (c *DiscordClient) FetchMessage(ctx context.Context, channelID, messageID string) (*models.DiscordMessage, error) {
	message, err := c.session.ChannelMessage(channelID, messageID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, mapRESTError("fetch message", err)
	}
	if message == nil {
		return nil, fmt.Errorf("fetch message: message %s returned empty", messageID)
	}
	return toDomainMessage(message), nil
}

func (c *DiscordClient) SendMessage(
	ctx context.Context,
	channelID, content string,
) (*clients.DiscordPostMessageResponse, error) {
	message, err := c.session.ChannelMessageSend(channelID, content, discordgo.WithContext(ctx))
	if err != nil {
		return nil, mapRESTError("send message", err)
	}
	return &clients.DiscordPostMessageResponse{ChannelID: message.ChannelID, MessageID: message.ID}, nil
}

func (c *DiscordClient) SendEmbed(
	ctx context.Context,
	channelID string,
	embed clients.DiscordEmbed,
) (*clients.DiscordPostMessageResponse, error) {
	message, err := c.session.ChannelMessageSendEmbed(channelID, toDiscordEmbed(embed), discordgo.WithContext(ctx))
	if err != nil {
		return nil, mapRESTError("send embed", err)
	}
	return &clients.DiscordPostMessageResponse{ChannelID: message.ChannelID, MessageID: message.ID}, nil
}

func (c *DiscordClient) AddReaction(ctx context.Context, channelID, messageID, emoji string) error {
	if err := c.session.MessageReactionAdd(channelID, messageID, emoji, discordgo.WithContext(ctx)); err != nil {
		return mapRESTError("add reaction", err)
	}
	return nil
}

// CreateThread starts a public thread attached to the given message
func (c *DiscordClient) CreateThread(
	ctx context.Context,
	channelID, messageID, name string,
	autoArchiveMinutes int,
) (*clients.DiscordThreadResponse, error) {
	thread, err := c.session.MessageThreadStart(
		channelID,
		messageID,
		name,
		autoArchiveMinutes,
		discordgo.WithContext(ctx),
	)
	if err != nil {
		return nil, mapRESTError("create thread", err)
	}

	return &clients.DiscordThreadResponse{
		ThreadID:   thread.ID,
		ThreadName: thread.Name,
	}, nil
}

// DeleteThread deletes a thread channel. A thread that no longer exists yields core.ErrNotFound.
func (c *DiscordClient) DeleteThread(ctx context.Context, threadID string) error {
	if _, err := c.session.ChannelDelete(threadID, discordgo.WithContext(ctx)); err != nil {
		return mapRESTError("delete thread", err)
	}
	return nil
}

// GetGuildMember looks the member up in the state cache first and falls back to the REST API.
// A member that is not part of the guild is reported as None.
func (c *DiscordClient) GetGuildMember(ctx context.Context, guildID, userID string) (mo.Option[*clients.DiscordUser], error) {
	if guildID == "" {
		return mo.None[*clients.DiscordUser](), nil
	}

	if c.session.State != nil {
		if member, err := c.session.State.Member(guildID, userID); err == nil && member != nil && member.User != nil {
			return mo.Some(toMemberUser(member)), nil
		}
	}

	member, err := c.session.GuildMember(guildID, userID, discordgo.WithContext(ctx))
	if err != nil {
		mapped := mapRESTError("get guild member", err)
		if isNotFound(mapped) {
			return mo.None[*clients.DiscordUser](), nil
		}
		return mo.None[*clients.DiscordUser](), mapped
	}
	if member == nil || member.User == nil {
		return mo.None[*clients.DiscordUser](), nil
	}
	return mo.Some(toMemberUser(member)), nil
}

// GetCachedUser searches the members cached for every guild the bot is in
func (c *DiscordClient) GetCachedUser(userID string) mo.Option[*clients.DiscordUser] {
	if c.session.State == nil {
		return mo.None[*clients.DiscordUser]()
	}

	c.session.State.RLock()
	guildIDs := make([]string, 0, len(c.session.State.Guilds))
	for _, guild := range c.session.State.Guilds {
		guildIDs = append(guildIDs, guild.ID)
	}
	c.session.State.RUnlock()

	for _, guildID := range guildIDs {
		member, err := c.session.State.Member(guildID, userID)
		if err == nil && member != nil && member.User != nil {
			user := toDiscordUser(member.User)
			return mo.Some(user)
		}
	}
	return mo.None[*clients.DiscordUser]()
}

func (c *DiscordClient) FetchUser(ctx context.Context, userID string) (*clients.DiscordUser, error) {
	user, err := c.session.User(userID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, mapRESTError("fetch user", err)
	}
	if user == nil {
		return nil, fmt.Errorf("fetch user: user %s returned empty", userID)
	}
	return toDiscordUser(user), nil
}
