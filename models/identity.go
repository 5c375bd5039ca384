package models

import "fmt"

// Identity is the reacting user as seen by the translation pipeline.
// It is either a ResolvedIdentity looked up on the platform or a SyntheticIdentity
// built when every lookup failed.
type Identity interface {
	GetID() string
	GetDisplayName() string
	IsBot() bool
}

type IdentitySource string

const (
	IdentitySourceGuildMember IdentitySource = "guild_member"
	IdentitySourceCache       IdentitySource = "cache"
	IdentitySourceFetch       IdentitySource = "fetch"
)

type ResolvedIdentity struct {
	ID          string
	Username    string
	DisplayName string
	Bot         bool
	Source      IdentitySource
}

func (i ResolvedIdentity) GetID() string { return i.ID }

func (i ResolvedIdentity) GetDisplayName() string {
	if i.DisplayName != "" {
		return i.DisplayName
	}
	return i.Username
}

func (i ResolvedIdentity) IsBot() bool { return i.Bot }

type SyntheticIdentity struct {
	ID          string
	DisplayName string
}

func NewSyntheticIdentity(userID string) SyntheticIdentity {
	return SyntheticIdentity{
		ID:          userID,
		DisplayName: fmt.Sprintf("User_%s", userID),
	}
}

func (i SyntheticIdentity) GetID() string { return i.ID }

func (i SyntheticIdentity) GetDisplayName() string { return i.DisplayName }

// IsBot is always false: a synthetic identity stands in for a human reactor.
func (i SyntheticIdentity) IsBot() bool { return false }
