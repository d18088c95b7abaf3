package service

import (
	"botlist-service/internal/access"
	"botlist-service/internal/apperr"
	"botlist-service/internal/identity"
	"botlist-service/internal/notifier"
	"context"
)

var (
	errUnauthenticated = apperr.New(apperr.Unauthenticated, "unauthorized")
	errForbidden       = apperr.New(apperr.Forbidden, "insufficient permissions")
)

// Dispatcher is satisfied by *notifier.Dispatcher.
type Dispatcher interface {
	Dispatch(event *notifier.Event)
}

func requireCaller(caller *identity.Caller) error {
	if caller == nil || caller.DiscordId == "" {
		return errUnauthenticated
	}
	return nil
}

func requireModerator(ctx context.Context, gate *access.Gate, caller *identity.Caller) error {
	if err := requireCaller(caller); err != nil {
		return err
	}

	ok, err := gate.CanModerate(ctx, caller.DiscordId)
	if err != nil {
		return err
	}
	if !ok {
		return errForbidden
	}
	return nil
}

func requirePartnerManager(ctx context.Context, gate *access.Gate, caller *identity.Caller) error {
	if err := requireCaller(caller); err != nil {
		return err
	}

	ok, err := gate.CanManagePartners(ctx, caller.DiscordId)
	if err != nil {
		return err
	}
	if !ok {
		return errForbidden
	}
	return nil
}

func moderatorName(caller *identity.Caller) string {
	if caller.Name != "" {
		return caller.Name
	}
	return "Admin"
}
