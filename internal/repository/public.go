package repository

import (
	"botlist-service/internal/repository/model"
	"context"
)

//go:generate mockgen -source=public.go -destination=mock_repository.go -package=repository

type Repository interface {
	// GetUser returns mongo.ErrNoDocuments if the user has never signed in.
	GetUser(ctx context.Context, discordId string) (*model.User, error)

	// CreateBot returns a duplicate key write exception if the client id is taken.
	CreateBot(ctx context.Context, bot *model.Bot) error
	GetBot(ctx context.Context, clientId string) (*model.Bot, error)
	UpdateBot(ctx context.Context, clientId string, update model.BotUpdate) error
	SetBotStatus(ctx context.Context, clientId string, status model.BotStatus) error
	SetBotFeatured(ctx context.Context, clientId string, featured bool) error
	DeleteBot(ctx context.Context, clientId string) error
	ListBots(ctx context.Context, filter model.BotFilter, sort model.SortOrder, skip int64, limit int64) ([]*model.Bot, error)
	CountBots(ctx context.Context, filter model.BotFilter) (int64, error)

	CreatePartner(ctx context.Context, partner *model.Partner) error
	GetPartners(ctx context.Context) ([]*model.Partner, error)
}
