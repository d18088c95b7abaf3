package service

import (
	"botlist-service/internal/access"
	"botlist-service/internal/apperr"
	"botlist-service/internal/enrichment"
	"botlist-service/internal/identity"
	"botlist-service/internal/notifier"
	"botlist-service/internal/repository"
	"botlist-service/internal/repository/model"
	"botlist-service/internal/utils"
	"context"
	"errors"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"testing"
	"time"
)

var (
	testNow = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	ownerCaller     = &identity.Caller{DiscordId: "owner-1", Name: "owner"}
	strangerCaller  = &identity.Caller{DiscordId: "stranger-1", Name: "stranger"}
	moderatorCaller = &identity.Caller{DiscordId: "mod-1", Name: "reviewer"}
	adminFlagCaller = &identity.Caller{DiscordId: "admin-1", Name: "site admin", IsAdmin: true}
)

type botManagerDeps struct {
	repo       *repository.MockRepository
	enricher   *enrichment.MockEnricher
	notif      *notifier.MockNotifier
	dispatcher *notifier.Dispatcher

	svc *BotManager
}

func newTestBotManager(t *testing.T) *botManagerDeps {
	mockCntrl := gomock.NewController(t)

	deps := &botManagerDeps{
		repo:     repository.NewMockRepository(mockCntrl),
		enricher: enrichment.NewMockEnricher(mockCntrl),
		notif:    notifier.NewMockNotifier(mockCntrl),
	}
	logger := zap.NewNop().Sugar()
	deps.dispatcher = notifier.NewDispatcher(logger, deps.notif, time.Second)

	deps.svc = NewBotManager(logger, deps.repo, access.NewGate(deps.repo), deps.enricher, deps.dispatcher)
	deps.svc.now = func() time.Time { return testNow }

	// Notifications must have completed before gomock verifies expectations
	t.Cleanup(deps.dispatcher.Wait)

	return deps
}

func (d *botManagerDeps) expectRoles(discordId string, roles ...model.Role) {
	d.repo.EXPECT().GetUser(gomock.Any(), discordId).Return(&model.User{DiscordId: discordId, Roles: roles}, nil)
}

func validSubmitRequest() *SubmitBotRequest {
	return &SubmitBotRequest{
		ClientId:        "123",
		Description:     "A helpful bot",
		LongDescription: "A very helpful bot that does many things",
		Prefix:          "!",
		Tags:            []string{"utility", "fun"},
		Website:         "https://example.com",
	}
}

func storedBot(status model.BotStatus) *model.Bot {
	return &model.Bot{
		Id:              "123",
		ClientId:        "123",
		Name:            "Galaxy",
		Description:     "A helpful bot",
		LongDescription: "A very helpful bot that does many things",
		Prefix:          "!",
		Tags:            []string{"utility"},
		Votes:           7,
		Status:          status,
		OwnerId:         ownerCaller.DiscordId,
		OwnerUsername:   ownerCaller.Name,
		CreatedAt:       testNow.Add(-time.Hour),
		UpdatedAt:       testNow.Add(-time.Hour),
	}
}

func duplicateKeyError() error {
	return mongo.WriteException{
		WriteErrors: []mongo.WriteError{
			{
				Index:   0,
				Code:    11000,
				Message: "duplicate key error",
			},
		},
	}
}

func TestBotManager_Submit(t *testing.T) {
	deps := newTestBotManager(t)

	deps.enricher.EXPECT().Fetch(gomock.Any(), "123").Return(&enrichment.Profile{
		Bot: &enrichment.BotInfo{
			Id:                    "123",
			Username:              "Galaxy",
			Discriminator:         "0001",
			Avatar:                "avatarhash",
			ApproximateGuildCount: 1500,
		},
		Application: &enrichment.ApplicationInfo{
			Name:       "Galaxy App",
			IsVerified: true,
			BotPublic:  utils.PointerOf(false),
		},
	})

	var created *model.Bot
	deps.repo.EXPECT().CreateBot(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, bot *model.Bot) error {
		created = bot
		return nil
	})
	deps.notif.EXPECT().Notify(gomock.Any(), &notifier.Event{
		Type:     notifier.EventBotSubmit,
		BotId:    "123",
		BotName:  "Galaxy",
		UserId:   ownerCaller.DiscordId,
		Username: ownerCaller.Name,
	}).Return(nil)

	bot, err := deps.svc.Submit(context.Background(), ownerCaller, validSubmitRequest())
	require.NoError(t, err)
	assert.Same(t, created, bot)

	assert.Equal(t, &model.Bot{
		Id:              "123",
		ClientId:        "123",
		Name:            "Galaxy",
		Discriminator:   "0001",
		Avatar:          utils.PointerOf("https://cdn.discordapp.com/avatars/123/avatarhash.png"),
		Description:     "A helpful bot",
		LongDescription: "A very helpful bot that does many things",
		Prefix:          "!",
		Tags:            []string{"utility", "fun"},
		Website:         utils.PointerOf("https://example.com"),
		InviteUrl:       "https://discord.com/oauth2/authorize?client_id=123&scope=bot%20applications.commands&permissions=0",
		Votes:           0,
		Servers:         1500,
		Status:          model.BotStatusPending,
		OwnerId:         ownerCaller.DiscordId,
		OwnerUsername:   ownerCaller.Name,
		IsVerified:      true,
		BotPublic:       false,
		CreatedAt:       testNow,
		UpdatedAt:       testNow,
	}, bot)
}

func TestBotManager_SubmitWithoutEnrichment(t *testing.T) {
	tests := map[string]struct {
		name     string
		wantName string
	}{
		"caller supplied name": {name: "My Bot", wantName: "My Bot"},
		"default name":         {name: "", wantName: "Unnamed Bot"},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			deps := newTestBotManager(t)

			req := validSubmitRequest()
			req.Name = test.name

			// Simulated fetch failure
			deps.enricher.EXPECT().Fetch(gomock.Any(), "123").Return(nil)
			deps.repo.EXPECT().CreateBot(gomock.Any(), gomock.Any()).Return(nil)
			deps.notif.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(errors.New("webhook down"))

			bot, err := deps.svc.Submit(context.Background(), ownerCaller, req)
			require.NoError(t, err)

			assert.Equal(t, test.wantName, bot.Name)
			assert.Equal(t, int64(0), bot.Servers)
			assert.False(t, bot.IsVerified)
			assert.True(t, bot.BotPublic)
			assert.Nil(t, bot.Avatar)
			assert.Equal(t, model.BotStatusPending, bot.Status)
			assert.Equal(t, int64(0), bot.Votes)
			assert.Equal(t, ownerCaller.DiscordId, bot.OwnerId)
		})
	}
}

func TestBotManager_SubmitInvalid(t *testing.T) {
	tests := map[string]func(r *SubmitBotRequest){
		"missing clientId":        func(r *SubmitBotRequest) { r.ClientId = "" },
		"missing description":     func(r *SubmitBotRequest) { r.Description = "" },
		"missing longDescription": func(r *SubmitBotRequest) { r.LongDescription = "" },
		"missing prefix":          func(r *SubmitBotRequest) { r.Prefix = "" },
		"blank prefix":            func(r *SubmitBotRequest) { r.Prefix = "   " },
	}

	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			// No enrichment or store expectations: any call fails the test
			deps := newTestBotManager(t)

			req := validSubmitRequest()
			mutate(req)

			bot, err := deps.svc.Submit(context.Background(), ownerCaller, req)
			assert.Equal(t, apperr.InvalidArgument, apperr.CodeOf(err))
			assert.Nil(t, bot)
		})
	}
}

func TestBotManager_SubmitUnauthenticated(t *testing.T) {
	deps := newTestBotManager(t)

	bot, err := deps.svc.Submit(context.Background(), nil, validSubmitRequest())
	assert.Equal(t, apperr.Unauthenticated, apperr.CodeOf(err))
	assert.Nil(t, bot)
}

func TestBotManager_SubmitDuplicate(t *testing.T) {
	deps := newTestBotManager(t)

	deps.enricher.EXPECT().Fetch(gomock.Any(), "123").Return(nil)
	deps.repo.EXPECT().CreateBot(gomock.Any(), gomock.Any()).Return(duplicateKeyError())

	bot, err := deps.svc.Submit(context.Background(), ownerCaller, validSubmitRequest())
	assert.Equal(t, apperr.AlreadyExists, apperr.CodeOf(err))
	assert.Nil(t, bot)
}

func TestBotManager_SubmitStoreFailure(t *testing.T) {
	deps := newTestBotManager(t)

	deps.enricher.EXPECT().Fetch(gomock.Any(), "123").Return(nil)
	deps.repo.EXPECT().CreateBot(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))

	bot, err := deps.svc.Submit(context.Background(), ownerCaller, validSubmitRequest())
	assert.Error(t, err)
	assert.Equal(t, apperr.Internal, apperr.CodeOf(err))
	assert.Nil(t, bot)
}

func TestBotManager_Get(t *testing.T) {
	deps := newTestBotManager(t)

	deps.repo.EXPECT().GetBot(gomock.Any(), "123").Return(storedBot(model.BotStatusApproved), nil)
	deps.repo.EXPECT().GetBot(gomock.Any(), "404").Return(nil, mongo.ErrNoDocuments)

	bot, err := deps.svc.Get(context.Background(), "123")
	assert.NoError(t, err)
	assert.Equal(t, storedBot(model.BotStatusApproved), bot)

	bot, err = deps.svc.Get(context.Background(), "404")
	assert.Equal(t, apperr.NotFound, apperr.CodeOf(err))
	assert.Nil(t, bot)
}

func TestBotManager_Update(t *testing.T) {
	deps := newTestBotManager(t)

	deps.repo.EXPECT().GetBot(gomock.Any(), "123").Return(storedBot(model.BotStatusApproved), nil)
	deps.repo.EXPECT().UpdateBot(gomock.Any(), "123", model.BotUpdate{
		Prefix:    utils.PointerOf("?"),
		Tags:      []string{"music"},
		Website:   utils.PointerOf(""),
		UpdatedAt: testNow,
	}).Return(nil)

	err := deps.svc.Update(context.Background(), ownerCaller, "123", &UpdateBotRequest{
		Prefix:  utils.PointerOf("?"),
		Tags:    []string{"music"},
		Website: utils.PointerOf(""),
	})
	assert.NoError(t, err)
}

func TestBotManager_UpdateRejected(t *testing.T) {
	tests := map[string]struct {
		caller *identity.Caller
		bot    *model.Bot
		getErr error

		wantCode apperr.Code
	}{
		"unauthenticated": {
			caller:   nil,
			wantCode: apperr.Unauthenticated,
		},
		"not found": {
			caller:   ownerCaller,
			getErr:   mongo.ErrNoDocuments,
			wantCode: apperr.NotFound,
		},
		"not the owner": {
			caller:   strangerCaller,
			bot:      storedBot(model.BotStatusApproved),
			wantCode: apperr.Forbidden,
		},
		"admin flag does not grant update": {
			caller:   adminFlagCaller,
			bot:      storedBot(model.BotStatusApproved),
			wantCode: apperr.Forbidden,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			deps := newTestBotManager(t)

			if test.caller != nil {
				deps.repo.EXPECT().GetBot(gomock.Any(), "123").Return(test.bot, test.getErr)
			}

			// UpdateBot is never expected: the record stays unchanged
			err := deps.svc.Update(context.Background(), test.caller, "123", &UpdateBotRequest{
				Description: utils.PointerOf("hijacked"),
			})
			assert.Equal(t, test.wantCode, apperr.CodeOf(err))
		})
	}
}

func TestBotManager_Delete(t *testing.T) {
	tests := map[string]struct {
		caller *identity.Caller
		bot    *model.Bot
		getErr error

		expectDelete bool
		wantCode     *apperr.Code
	}{
		"owner": {
			caller:       ownerCaller,
			bot:          storedBot(model.BotStatusApproved),
			expectDelete: true,
		},
		"session admin": {
			caller:       adminFlagCaller,
			bot:          storedBot(model.BotStatusPending),
			expectDelete: true,
		},
		"stranger": {
			caller:   strangerCaller,
			bot:      storedBot(model.BotStatusApproved),
			wantCode: utils.PointerOf(apperr.Forbidden),
		},
		"not found": {
			caller:   ownerCaller,
			getErr:   mongo.ErrNoDocuments,
			wantCode: utils.PointerOf(apperr.NotFound),
		},
		"unauthenticated": {
			wantCode: utils.PointerOf(apperr.Unauthenticated),
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			deps := newTestBotManager(t)

			if test.caller != nil {
				deps.repo.EXPECT().GetBot(gomock.Any(), "123").Return(test.bot, test.getErr)
			}
			if test.expectDelete {
				deps.repo.EXPECT().DeleteBot(gomock.Any(), "123").Return(nil)
			}

			err := deps.svc.Delete(context.Background(), test.caller, "123")
			if test.wantCode != nil {
				assert.Equal(t, *test.wantCode, apperr.CodeOf(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

type rejectTest struct {
	caller *identity.Caller
	req    *RejectBotRequest

	roles []model.Role
	// noRecord simulates a caller without a user record
	noRecord bool
	getBot   bool
	getErr   error

	expectDelete bool
	notifyErr    error

	wantCode *apperr.Code
}

var rejectTests = map[string]rejectTest{
	"success": {
		caller:       moderatorCaller,
		req:          &RejectBotRequest{Reason: "Offline during review"},
		roles:        []model.Role{model.RoleBotReviewer},
		getBot:       true,
		expectDelete: true,
	},
	"notification failure is not fatal": {
		caller:       moderatorCaller,
		req:          &RejectBotRequest{Reason: "Offline during review"},
		roles:        []model.Role{model.RoleAdmin},
		getBot:       true,
		expectDelete: true,
		notifyErr:    errors.New("webhook down"),
	},
	"deleteBot=false still deletes": {
		caller:       moderatorCaller,
		req:          &RejectBotRequest{Reason: "Offline during review", DeleteBot: utils.PointerOf(false)},
		roles:        []model.Role{model.RoleBotFounder},
		getBot:       true,
		expectDelete: true,
	},
	"unauthenticated": {
		req:      &RejectBotRequest{Reason: "Offline during review"},
		wantCode: utils.PointerOf(apperr.Unauthenticated),
	},
	"no moderator role": {
		caller:   strangerCaller,
		req:      &RejectBotRequest{Reason: "Offline during review"},
		roles:    []model.Role{},
		wantCode: utils.PointerOf(apperr.Forbidden),
	},
	"session admin flag is not a role": {
		caller:   adminFlagCaller,
		req:      &RejectBotRequest{Reason: "Offline during review"},
		roles:    []model.Role{},
		wantCode: utils.PointerOf(apperr.Forbidden),
	},
	"user record missing": {
		caller:   moderatorCaller,
		req:      &RejectBotRequest{Reason: "Offline during review"},
		noRecord: true,
		wantCode: utils.PointerOf(apperr.Forbidden),
	},
	"empty reason": {
		caller:   moderatorCaller,
		req:      &RejectBotRequest{Reason: ""},
		roles:    []model.Role{model.RoleBotReviewer},
		wantCode: utils.PointerOf(apperr.InvalidArgument),
	},
	"whitespace reason": {
		caller:   moderatorCaller,
		req:      &RejectBotRequest{Reason: " \t\n"},
		roles:    []model.Role{model.RoleBotReviewer},
		wantCode: utils.PointerOf(apperr.InvalidArgument),
	},
	"bot not found": {
		caller:   moderatorCaller,
		req:      &RejectBotRequest{Reason: "Offline during review"},
		roles:    []model.Role{model.RoleBotReviewer},
		getBot:   true,
		getErr:   mongo.ErrNoDocuments,
		wantCode: utils.PointerOf(apperr.NotFound),
	},
}

func TestBotManager_Reject(t *testing.T) {
	for name, test := range rejectTests {
		t.Run(name, func(t *testing.T) {
			deps := newTestBotManager(t)

			if test.caller != nil {
				if test.noRecord {
					deps.repo.EXPECT().GetUser(gomock.Any(), test.caller.DiscordId).Return(nil, mongo.ErrNoDocuments)
				} else {
					deps.expectRoles(test.caller.DiscordId, test.roles...)
				}
			}
			if test.getBot {
				if test.getErr != nil {
					deps.repo.EXPECT().GetBot(gomock.Any(), "123").Return(nil, test.getErr)
				} else {
					deps.repo.EXPECT().GetBot(gomock.Any(), "123").Return(storedBot(model.BotStatusPending), nil)
				}
			}
			if test.expectDelete {
				deps.repo.EXPECT().DeleteBot(gomock.Any(), "123").Return(nil)
				deps.notif.EXPECT().Notify(gomock.Any(), &notifier.Event{
					Type:     notifier.EventBotRejected,
					BotId:    "123",
					BotName:  "Galaxy",
					UserId:   ownerCaller.DiscordId,
					Username: test.caller.Name,
					Reason:   test.req.Reason,
				}).Return(test.notifyErr)
			}

			err := deps.svc.Reject(context.Background(), test.caller, "123", test.req)
			if test.wantCode != nil {
				assert.Equal(t, *test.wantCode, apperr.CodeOf(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBotManager_RejectThenGet(t *testing.T) {
	deps := newTestBotManager(t)
	caller := &identity.Caller{DiscordId: "mod-1"}

	deps.expectRoles(caller.DiscordId, model.RoleAdmin)
	gomock.InOrder(
		deps.repo.EXPECT().GetBot(gomock.Any(), "123").Return(storedBot(model.BotStatusPending), nil),
		deps.repo.EXPECT().DeleteBot(gomock.Any(), "123").Return(nil),
		deps.repo.EXPECT().GetBot(gomock.Any(), "123").Return(nil, mongo.ErrNoDocuments),
	)
	deps.notif.EXPECT().Notify(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, event *notifier.Event) error {
		// Falls back when the moderator has no display name
		assert.Equal(t, "Admin", event.Username)
		return nil
	})

	err := deps.svc.Reject(context.Background(), caller, "123", &RejectBotRequest{Reason: "spam"})
	require.NoError(t, err)

	_, err = deps.svc.Get(context.Background(), "123")
	assert.Equal(t, apperr.NotFound, apperr.CodeOf(err))
}

func TestBotManager_Approve(t *testing.T) {
	deps := newTestBotManager(t)

	deps.expectRoles(moderatorCaller.DiscordId, model.RoleBotReviewer)
	deps.repo.EXPECT().GetBot(gomock.Any(), "123").Return(storedBot(model.BotStatusPending), nil)
	deps.repo.EXPECT().SetBotStatus(gomock.Any(), "123", model.BotStatusApproved).Return(nil)
	deps.notif.EXPECT().Notify(gomock.Any(), &notifier.Event{
		Type:     notifier.EventBotApproved,
		BotId:    "123",
		BotName:  "Galaxy",
		UserId:   ownerCaller.DiscordId,
		Username: moderatorCaller.Name,
	}).Return(nil)

	bot, err := deps.svc.Approve(context.Background(), moderatorCaller, "123")
	assert.NoError(t, err)
	assert.Equal(t, model.BotStatusApproved, bot.Status)
}

func TestBotManager_ApproveIdempotent(t *testing.T) {
	deps := newTestBotManager(t)

	// No SetBotStatus and no notification for an approved bot
	deps.expectRoles(moderatorCaller.DiscordId, model.RoleBotReviewer)
	deps.repo.EXPECT().GetBot(gomock.Any(), "123").Return(storedBot(model.BotStatusApproved), nil)

	bot, err := deps.svc.Approve(context.Background(), moderatorCaller, "123")
	assert.NoError(t, err)
	assert.Equal(t, model.BotStatusApproved, bot.Status)
}

func TestBotManager_ApproveForbidden(t *testing.T) {
	deps := newTestBotManager(t)

	deps.expectRoles(ownerCaller.DiscordId)

	bot, err := deps.svc.Approve(context.Background(), ownerCaller, "123")
	assert.Equal(t, apperr.Forbidden, apperr.CodeOf(err))
	assert.Nil(t, bot)
}

func TestBotManager_ToggleFeature(t *testing.T) {
	t.Run("feature", func(t *testing.T) {
		deps := newTestBotManager(t)

		deps.expectRoles(moderatorCaller.DiscordId, model.RoleAdmin)
		deps.repo.EXPECT().GetBot(gomock.Any(), "123").Return(storedBot(model.BotStatusApproved), nil)
		deps.repo.EXPECT().SetBotFeatured(gomock.Any(), "123", true).Return(nil)
		deps.notif.EXPECT().Notify(gomock.Any(), &notifier.Event{
			Type:     notifier.EventBotFeatured,
			BotId:    "123",
			BotName:  "Galaxy",
			UserId:   ownerCaller.DiscordId,
			Username: moderatorCaller.Name,
		}).Return(nil)

		bot, err := deps.svc.ToggleFeature(context.Background(), moderatorCaller, "123")
		assert.NoError(t, err)
		assert.True(t, bot.Featured)
		assert.Equal(t, model.BotStatusApproved, bot.Status)
	})

	t.Run("unfeature", func(t *testing.T) {
		deps := newTestBotManager(t)

		featured := storedBot(model.BotStatusApproved)
		featured.Featured = true

		deps.expectRoles(moderatorCaller.DiscordId, model.RoleAdmin)
		deps.repo.EXPECT().GetBot(gomock.Any(), "123").Return(featured, nil)
		deps.repo.EXPECT().SetBotFeatured(gomock.Any(), "123", false).Return(nil)

		bot, err := deps.svc.ToggleFeature(context.Background(), moderatorCaller, "123")
		assert.NoError(t, err)
		assert.False(t, bot.Featured)
	})
}

func TestBotManager_ListPending(t *testing.T) {
	deps := newTestBotManager(t)

	deps.expectRoles(moderatorCaller.DiscordId, model.RoleBotReviewer)
	deps.repo.EXPECT().ListBots(gomock.Any(), model.BotFilter{Status: model.BotStatusPending}, model.SortNewest, int64(0), int64(0)).
		Return(nil, nil)

	bots, err := deps.svc.ListPending(context.Background(), moderatorCaller)
	assert.NoError(t, err)
	assert.NotNil(t, bots)
	assert.Len(t, bots, 0)
}

func TestBotManager_ListAllForbidden(t *testing.T) {
	deps := newTestBotManager(t)

	deps.repo.EXPECT().GetUser(gomock.Any(), strangerCaller.DiscordId).Return(nil, mongo.ErrNoDocuments)

	bots, err := deps.svc.ListAll(context.Background(), strangerCaller)
	assert.Equal(t, apperr.Forbidden, apperr.CodeOf(err))
	assert.Nil(t, bots)
}

func TestBotManager_Stats(t *testing.T) {
	deps := newTestBotManager(t)

	deps.expectRoles(moderatorCaller.DiscordId, model.RoleBotFounder)
	deps.repo.EXPECT().CountBots(gomock.Any(), model.BotFilter{}).Return(int64(12), nil)
	deps.repo.EXPECT().CountBots(gomock.Any(), model.BotFilter{Status: model.BotStatusPending}).Return(int64(4), nil)
	deps.repo.EXPECT().CountBots(gomock.Any(), model.BotFilter{Status: model.BotStatusApproved}).Return(int64(8), nil)

	stats, err := deps.svc.Stats(context.Background(), moderatorCaller)
	assert.NoError(t, err)
	assert.Equal(t, &BotStats{Total: 12, Pending: 4, Approved: 8}, stats)
}
