package models

type DiscordReactionEvent struct {
	GuildID   string
	ChannelID string
	MessageID string
	UserID    string
	EmojiName string
	// IsOwnReaction is true when the reacting user is the bot itself
	IsOwnReaction bool
}

type DiscordAuthor struct {
	ID       string
	Username string
	Bot      bool
}

// DiscordMessage is the source message a translation is requested for
type DiscordMessage struct {
	ID        string
	ChannelID string
	GuildID   string
	Content   string
	Author    DiscordAuthor
}

// ThreadHandle identifies the discussion thread owned by a translation session
type ThreadHandle struct {
	ID              string
	Name            string
	ParentChannelID string
}
