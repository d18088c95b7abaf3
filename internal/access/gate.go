package access

import (
	"botlist-service/internal/repository/model"
	"context"
	"errors"
	"fmt"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	moderatorRoles      = []model.Role{model.RoleAdmin, model.RoleBotReviewer, model.RoleBotFounder}
	partnerManagerRoles = []model.Role{model.RoleAdmin, model.RoleBotFounder}
)

type UserGetter interface {
	GetUser(ctx context.Context, discordId string) (*model.User, error)
}

// Gate resolves roles from the store on every call. It never trusts roles
// carried by the caller's session.
type Gate struct {
	users UserGetter
}

func NewGate(users UserGetter) *Gate {
	return &Gate{users: users}
}

func CanModerate(user *model.User) bool {
	return user.HasAnyRole(moderatorRoles...)
}

func CanManagePartners(user *model.User) bool {
	return user.HasAnyRole(partnerManagerRoles...)
}

func (g *Gate) CanModerate(ctx context.Context, discordId string) (bool, error) {
	user, err := g.resolve(ctx, discordId)
	if err != nil {
		return false, err
	}
	return CanModerate(user), nil
}

func (g *Gate) CanManagePartners(ctx context.Context, discordId string) (bool, error) {
	user, err := g.resolve(ctx, discordId)
	if err != nil {
		return false, err
	}
	return CanManagePartners(user), nil
}

// resolve returns a nil user, not an error, when the record is absent.
func (g *Gate) resolve(ctx context.Context, discordId string) (*model.User, error) {
	if discordId == "" {
		return nil, nil
	}

	user, err := g.users.GetUser(ctx, discordId)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve user roles: %w", err)
	}

	return user, nil
}
