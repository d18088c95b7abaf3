package enrichment

import (
	"context"
)

//go:generate mockgen -source=public.go -destination=mock_enricher.go -package=enrichment

// Profile is the subset of the bot metadata API response the directory uses.
type Profile struct {
	Bot         *BotInfo         `json:"bot"`
	Application *ApplicationInfo `json:"application"`
}

type BotInfo struct {
	Id                    string `json:"id"`
	Username              string `json:"username"`
	Discriminator         string `json:"discriminator"`
	Avatar                string `json:"avatar"`
	Bot                   bool   `json:"bot"`
	ApproximateGuildCount int64  `json:"approximate_guild_count"`
}

type ApplicationInfo struct {
	Id         string `json:"id"`
	Name       string `json:"name"`
	Icon       string `json:"icon"`
	IsVerified bool   `json:"is_verified"`
	BotPublic  *bool  `json:"bot_public"`
}

type Enricher interface {
	// Fetch returns nil whenever the metadata cannot be obtained.
	Fetch(ctx context.Context, clientId string) *Profile
}
