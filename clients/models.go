package clients

// DiscordBotUser represents Discord bot user information
type DiscordBotUser struct {
	ID       string
	Username string
	Bot      bool
}

// DiscordUser represents a Discord user or guild member
type DiscordUser struct {
	ID         string
	Username   string
	GlobalName string
	Nickname   string
	Bot        bool
}

// DisplayName returns the most specific name Discord shows for the user
func (u DiscordUser) DisplayName() string {
	switch {
	case u.Nickname != "":
		return u.Nickname
	case u.GlobalName != "":
		return u.GlobalName
	default:
		return u.Username
	}
}

// DiscordPostMessageResponse represents the response from posting a message to Discord
type DiscordPostMessageResponse struct {
	ChannelID string
	MessageID string
}

// DiscordThreadResponse represents the response from creating a Discord thread
type DiscordThreadResponse struct {
	ThreadID   string
	ThreadName string
}

// DiscordEmbed holds the subset of embed fields the bot renders
type DiscordEmbed struct {
	Title       string
	Description string
	Color       int
	Footer      string
}

// TranslationResult is the output of a successful translator call
type TranslationResult struct {
	Text string
	// SourceLanguage is the language the backend detected, empty when unknown
	SourceLanguage string
}
