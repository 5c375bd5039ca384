package discord

import (
	"github.com/bwmarrin/discordgo"

	"github.com/mythicavalon/EchoLang/clients"
	"github.com/mythicavalon/EchoLang/models"
)

func toBotUser(user *discordgo.User) *clients.DiscordBotUser {
	return &clients.DiscordBotUser{
		ID:       user.ID,
		Username: user.Username,
		Bot:      user.Bot,
	}
}

func toDiscordUser(user *discordgo.User) *clients.DiscordUser {
	return &clients.DiscordUser{
		ID:         user.ID,
		Username:   user.Username,
		GlobalName: user.GlobalName,
		Bot:        user.Bot,
	}
}

func toMemberUser(member *discordgo.Member) *clients.DiscordUser {
	user := toDiscordUser(member.User)
	user.Nickname = member.Nick
	return user
}

func toDomainMessage(message *discordgo.Message) *models.DiscordMessage {
	result := &models.DiscordMessage{
		ID:        message.ID,
		ChannelID: message.ChannelID,
		GuildID:   message.GuildID,
		Content:   message.Content,
	}
	if message.Author != nil {
		result.Author = models.DiscordAuthor{
			ID:       message.Author.ID,
			Username: message.Author.Username,
			Bot:      message.Author.Bot,
		}
	}
	return result
}

func toDiscordEmbed(embed clients.DiscordEmbed) *discordgo.MessageEmbed {
	result := &discordgo.MessageEmbed{
		Title:       embed.Title,
		Description: embed.Description,
		Color:       embed.Color,
	}
	if embed.Footer != "" {
		result.Footer = &discordgo.MessageEmbedFooter{Text: embed.Footer}
	}
	return result
}
