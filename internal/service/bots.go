package service

import (
	"botlist-service/internal/access"
	"botlist-service/internal/apperr"
	"botlist-service/internal/enrichment"
	"botlist-service/internal/identity"
	"botlist-service/internal/metrics"
	"botlist-service/internal/notifier"
	"botlist-service/internal/repository"
	"botlist-service/internal/repository/model"
	"context"
	"errors"
	"fmt"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"strings"
	"time"
)

const (
	defaultBotName  = "Unnamed Bot"
	defaultUsername = "Unknown"

	avatarUrlFormat = "https://cdn.discordapp.com/avatars/%s/%s.png"
	inviteUrlFormat = "https://discord.com/oauth2/authorize?client_id=%s&scope=bot%%20applications.commands&permissions=0"
)

var errBotNotFound = apperr.New(apperr.NotFound, "bot not found")

type SubmitBotRequest struct {
	ClientId        string   `json:"clientId" form:"clientId"`
	Name            string   `json:"name" form:"name"`
	Description     string   `json:"description" form:"description"`
	LongDescription string   `json:"longDescription" form:"longDescription"`
	Prefix          string   `json:"prefix" form:"prefix"`
	Tags            []string `json:"tags" form:"tags"`
	Website         string   `json:"website" form:"website"`
	SupportServer   string   `json:"supportServer" form:"supportServer"`
	GithubRepo      string   `json:"githubRepo" form:"githubRepo"`
	InviteUrl       string   `json:"inviteUrl" form:"inviteUrl"`
}

func (r *SubmitBotRequest) validate() error {
	for _, value := range []string{r.ClientId, r.Description, r.LongDescription, r.Prefix} {
		if strings.TrimSpace(value) == "" {
			return apperr.New(apperr.InvalidArgument, "missing required fields")
		}
	}
	return nil
}

// UpdateBotRequest only holds the fields an owner may change. Anything else
// in the request body is dropped when it is decoded.
type UpdateBotRequest struct {
	Prefix          *string  `json:"prefix"`
	Description     *string  `json:"description"`
	LongDescription *string  `json:"longDescription"`
	Tags            []string `json:"tags"`
	Website         *string  `json:"website"`
	SupportServer   *string  `json:"supportServer"`
	GithubRepo      *string  `json:"githubRepo"`
}

type RejectBotRequest struct {
	Reason string `json:"reason" form:"reason"`
	// DeleteBot is accepted for compatibility. Rejected bots are always deleted.
	DeleteBot *bool `json:"deleteBot" form:"deleteBot"`
}

type BotStats struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
}

// BotManager owns the listing lifecycle: (none) -> pending -> {approved | deleted}.
// Every operation issues at most one mutating store call.
type BotManager struct {
	logger     *zap.SugaredLogger
	repo       repository.Repository
	gate       *access.Gate
	enricher   enrichment.Enricher
	dispatcher Dispatcher

	now func() time.Time
}

func NewBotManager(logger *zap.SugaredLogger, repo repository.Repository, gate *access.Gate,
	enricher enrichment.Enricher, dispatcher Dispatcher) *BotManager {

	return &BotManager{
		logger:     logger,
		repo:       repo,
		gate:       gate,
		enricher:   enricher,
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

func (s *BotManager) Get(ctx context.Context, clientId string) (*model.Bot, error) {
	bot, err := s.repo.GetBot(ctx, clientId)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errBotNotFound
		}
		s.logger.Errorw("error getting bot", "clientId", clientId, "error", err)
		return nil, fmt.Errorf("failed to get bot: %w", err)
	}

	return bot, nil
}

func (s *BotManager) Submit(ctx context.Context, caller *identity.Caller, req *SubmitBotRequest) (*model.Bot, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	if err := req.validate(); err != nil {
		return nil, err
	}

	bot := s.newBot(caller, req, s.enricher.Fetch(ctx, req.ClientId))

	if err := s.repo.CreateBot(ctx, bot); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperr.New(apperr.AlreadyExists, "bot already exists")
		}
		s.logger.Errorw("error creating bot", "clientId", bot.ClientId, "error", err)
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	metrics.BotTransitions.WithLabelValues(metrics.TransitionSubmitted).Inc()

	s.dispatcher.Dispatch(&notifier.Event{
		Type:     notifier.EventBotSubmit,
		BotId:    bot.ClientId,
		BotName:  bot.Name,
		UserId:   bot.OwnerId,
		Username: bot.OwnerUsername,
	})

	return bot, nil
}

// newBot merges the owner's payload with best-effort metadata. A nil profile
// falls back to the payload and defaults.
func (s *BotManager) newBot(caller *identity.Caller, req *SubmitBotRequest, profile *enrichment.Profile) *model.Bot {
	botInfo := &enrichment.BotInfo{}
	appInfo := &enrichment.ApplicationInfo{}
	if profile != nil {
		if profile.Bot != nil {
			botInfo = profile.Bot
		}
		if profile.Application != nil {
			appInfo = profile.Application
		}
	}

	name := firstNonEmpty(botInfo.Username, appInfo.Name, req.Name, defaultBotName)

	var avatar *string
	if hash := firstNonEmpty(botInfo.Avatar, appInfo.Icon); hash != "" {
		url := fmt.Sprintf(avatarUrlFormat, req.ClientId, hash)
		avatar = &url
	}

	botPublic := true
	if appInfo.BotPublic != nil {
		botPublic = *appInfo.BotPublic
	}

	tags := req.Tags
	if tags == nil {
		tags = make([]string, 0)
	}

	now := s.now()
	return &model.Bot{
		Id:              req.ClientId,
		ClientId:        req.ClientId,
		Name:            name,
		Discriminator:   botInfo.Discriminator,
		Avatar:          avatar,
		Description:     req.Description,
		LongDescription: req.LongDescription,
		Prefix:          req.Prefix,
		Tags:            tags,
		Website:         optional(req.Website),
		SupportServer:   optional(req.SupportServer),
		GithubRepo:      optional(req.GithubRepo),
		InviteUrl:       firstNonEmpty(req.InviteUrl, fmt.Sprintf(inviteUrlFormat, req.ClientId)),
		Votes:           0,
		Servers:         botInfo.ApproximateGuildCount,
		Status:          model.BotStatusPending,
		OwnerId:         caller.DiscordId,
		OwnerUsername:   firstNonEmpty(caller.Name, defaultUsername),
		IsVerified:      appInfo.IsVerified,
		BotPublic:       botPublic,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Update is owner only. Moderators and admins cannot edit someone else's bot.
func (s *BotManager) Update(ctx context.Context, caller *identity.Caller, clientId string, req *UpdateBotRequest) error {
	if err := requireCaller(caller); err != nil {
		return err
	}

	bot, err := s.Get(ctx, clientId)
	if err != nil {
		return err
	}

	if bot.OwnerId != caller.DiscordId {
		return apperr.New(apperr.Forbidden, "you don't have permission to update this bot")
	}

	err = s.repo.UpdateBot(ctx, clientId, model.BotUpdate{
		Prefix:          req.Prefix,
		Description:     req.Description,
		LongDescription: req.LongDescription,
		Tags:            req.Tags,
		Website:         req.Website,
		SupportServer:   req.SupportServer,
		GithubRepo:      req.GithubRepo,
		UpdatedAt:       s.now(),
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return errBotNotFound
		}
		s.logger.Errorw("error updating bot", "clientId", clientId, "error", err)
		return fmt.Errorf("failed to update bot: %w", err)
	}

	return nil
}

// Delete lets the owner, or a caller whose session carries the admin flag,
// remove a bot. It does not consult store roles, unlike Reject.
func (s *BotManager) Delete(ctx context.Context, caller *identity.Caller, clientId string) error {
	if err := requireCaller(caller); err != nil {
		return err
	}

	bot, err := s.Get(ctx, clientId)
	if err != nil {
		return err
	}

	if bot.OwnerId != caller.DiscordId && !caller.IsAdmin {
		return apperr.New(apperr.Forbidden, "you don't have permission to delete this bot")
	}

	if err := s.deleteBot(ctx, clientId); err != nil {
		return err
	}
	metrics.BotTransitions.WithLabelValues(metrics.TransitionDeleted).Inc()

	s.logger.Infow("bot deleted", "clientId", clientId, "by", caller.DiscordId, "asAdmin", bot.OwnerId != caller.DiscordId)
	return nil
}

// Reject removes the bot. Rejected listings are never retained.
func (s *BotManager) Reject(ctx context.Context, caller *identity.Caller, clientId string, req *RejectBotRequest) error {
	if err := requireModerator(ctx, s.gate, caller); err != nil {
		return err
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return apperr.New(apperr.InvalidArgument, "rejection reason is required")
	}

	bot, err := s.Get(ctx, clientId)
	if err != nil {
		return err
	}

	if req.DeleteBot != nil && !*req.DeleteBot {
		s.logger.Warnw("deleteBot=false is not supported, rejected bot will be deleted", "clientId", clientId)
	}

	if err := s.deleteBot(ctx, clientId); err != nil {
		return err
	}
	metrics.BotTransitions.WithLabelValues(metrics.TransitionRejected).Inc()

	s.dispatcher.Dispatch(&notifier.Event{
		Type:     notifier.EventBotRejected,
		BotId:    bot.ClientId,
		BotName:  bot.Name,
		UserId:   bot.OwnerId,
		Username: moderatorName(caller),
		Reason:   req.Reason,
	})

	return nil
}

// Approve is idempotent: approving an approved bot changes nothing and sends no notification.
func (s *BotManager) Approve(ctx context.Context, caller *identity.Caller, clientId string) (*model.Bot, error) {
	if err := requireModerator(ctx, s.gate, caller); err != nil {
		return nil, err
	}

	bot, err := s.Get(ctx, clientId)
	if err != nil {
		return nil, err
	}

	if bot.Status == model.BotStatusApproved {
		return bot, nil
	}

	if err := s.repo.SetBotStatus(ctx, clientId, model.BotStatusApproved); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errBotNotFound
		}
		s.logger.Errorw("error approving bot", "clientId", clientId, "error", err)
		return nil, fmt.Errorf("failed to approve bot: %w", err)
	}
	bot.Status = model.BotStatusApproved
	metrics.BotTransitions.WithLabelValues(metrics.TransitionApproved).Inc()

	s.dispatcher.Dispatch(&notifier.Event{
		Type:     notifier.EventBotApproved,
		BotId:    bot.ClientId,
		BotName:  bot.Name,
		UserId:   bot.OwnerId,
		Username: moderatorName(caller),
	})

	return bot, nil
}

// ToggleFeature flips the featured flag independently of status.
func (s *BotManager) ToggleFeature(ctx context.Context, caller *identity.Caller, clientId string) (*model.Bot, error) {
	if err := requireModerator(ctx, s.gate, caller); err != nil {
		return nil, err
	}

	bot, err := s.Get(ctx, clientId)
	if err != nil {
		return nil, err
	}

	featured := !bot.Featured
	if err := s.repo.SetBotFeatured(ctx, clientId, featured); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errBotNotFound
		}
		s.logger.Errorw("error featuring bot", "clientId", clientId, "error", err)
		return nil, fmt.Errorf("failed to feature bot: %w", err)
	}
	bot.Featured = featured

	if !featured {
		metrics.BotTransitions.WithLabelValues(metrics.TransitionUnfeatured).Inc()
		return bot, nil
	}
	metrics.BotTransitions.WithLabelValues(metrics.TransitionFeatured).Inc()

	s.dispatcher.Dispatch(&notifier.Event{
		Type:     notifier.EventBotFeatured,
		BotId:    bot.ClientId,
		BotName:  bot.Name,
		UserId:   bot.OwnerId,
		Username: moderatorName(caller),
	})

	return bot, nil
}

func (s *BotManager) ListPending(ctx context.Context, caller *identity.Caller) ([]*model.Bot, error) {
	return s.listForModerator(ctx, caller, model.BotFilter{Status: model.BotStatusPending})
}

func (s *BotManager) ListAll(ctx context.Context, caller *identity.Caller) ([]*model.Bot, error) {
	return s.listForModerator(ctx, caller, model.BotFilter{})
}

func (s *BotManager) listForModerator(ctx context.Context, caller *identity.Caller, filter model.BotFilter) ([]*model.Bot, error) {
	if err := requireModerator(ctx, s.gate, caller); err != nil {
		return nil, err
	}

	bots, err := s.repo.ListBots(ctx, filter, model.SortNewest, 0, 0)
	if err != nil {
		s.logger.Errorw("error listing bots", "status", filter.Status, "error", err)
		return nil, fmt.Errorf("failed to list bots: %w", err)
	}

	if bots == nil {
		bots = make([]*model.Bot, 0)
	}
	return bots, nil
}

func (s *BotManager) Stats(ctx context.Context, caller *identity.Caller) (*BotStats, error) {
	if err := requireModerator(ctx, s.gate, caller); err != nil {
		return nil, err
	}

	stats := &BotStats{}
	for _, c := range []struct {
		filter model.BotFilter
		dst    *int64
	}{
		{model.BotFilter{}, &stats.Total},
		{model.BotFilter{Status: model.BotStatusPending}, &stats.Pending},
		{model.BotFilter{Status: model.BotStatusApproved}, &stats.Approved},
	} {
		count, err := s.repo.CountBots(ctx, c.filter)
		if err != nil {
			s.logger.Errorw("error counting bots", "status", c.filter.Status, "error", err)
			return nil, fmt.Errorf("failed to count bots: %w", err)
		}
		*c.dst = count
	}

	return stats, nil
}

func (s *BotManager) deleteBot(ctx context.Context, clientId string) error {
	if err := s.repo.DeleteBot(ctx, clientId); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return errBotNotFound
		}
		s.logger.Errorw("error deleting bot", "clientId", clientId, "error", err)
		return fmt.Errorf("failed to delete bot: %w", err)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
