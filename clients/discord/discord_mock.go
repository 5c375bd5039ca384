package discord

import (
	"context"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"github.com/mythicavalon/EchoLang/clients"
	"github.com/mythicavalon/EchoLang/models"
)

// MockDiscordClient implements the clients.DiscordClient interface for testing
type MockDiscordClient struct {
	mock.Mock
}

func (m *MockDiscordClient) GetBotUser() (*clients.DiscordBotUser, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.DiscordBotUser), args.Error(1)
}

func (m *MockDiscordClient) FetchMessage(ctx context.Context, channelID, messageID string) (*models.DiscordMessage, error) {
	args := m.Called(ctx, channelID, messageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DiscordMessage), args.Error(1)
}

func (m *MockDiscordClient) SendMessage(
	ctx context.Context,
	channelID, content string,
) (*clients.DiscordPostMessageResponse, error) {
	args := m.Called(ctx, channelID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.DiscordPostMessageResponse), args.Error(1)
}

func (m *MockDiscordClient) SendEmbed(
	ctx context.Context,
	channelID string,
	embed clients.DiscordEmbed,
) (*clients.DiscordPostMessageResponse, error) {
	args := m.Called(ctx, channelID, embed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.DiscordPostMessageResponse), args.Error(1)
}

func (m *MockDiscordClient) AddReaction(ctx context.Context, channelID, messageID, emoji string) error {
	args := m.Called(ctx, channelID, messageID, emoji)
	return args.Error(0)
}

func (m *MockDiscordClient) CreateThread(
	ctx context.Context,
	channelID, messageID, name string,
	autoArchiveMinutes int,
) (*clients.DiscordThreadResponse, error) {
	args := m.Called(ctx, channelID, messageID, name, autoArchiveMinutes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.DiscordThreadResponse), args.Error(1)
}

func (m *MockDiscordClient) DeleteThread(ctx context.Context, threadID string) error {
	args := m.Called(ctx, threadID)
	return args.Error(0)
}

func (m *MockDiscordClient) GetGuildMember(
	ctx context.Context,
	guildID, userID string,
) (mo.Option[*clients.DiscordUser], error) {
	args := m.Called(ctx, guildID, userID)
	return args.Get(0).(mo.Option[*clients.DiscordUser]), args.Error(1)
}

func (m *MockDiscordClient) GetCachedUser(userID string) mo.Option[*clients.DiscordUser] {
	args := m.Called(userID)
	return args.Get(0).(mo.Option[*clients.DiscordUser])
}

func (m *MockDiscordClient) FetchUser(ctx context.Context, userID string) (*clients.DiscordUser, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.DiscordUser), args.Error(1)
}
