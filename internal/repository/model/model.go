package model

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"regexp"
	"time"
)

type Role string

const (
	RoleAdmin       Role = "ADMIN"
	RoleBotReviewer Role = "BOT_REVIEWER"
	RoleBotFounder  Role = "BOT_FOUNDER"
)

// User is created at first sign-in by the website, this service only reads it.
// A user with no roles is a regular member.
type User struct {
	Id        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DiscordId string             `bson:"discordId" json:"discordId"`
	Username  string             `bson:"username,omitempty" json:"username,omitempty"`
	Roles     []Role             `bson:"roles" json:"roles"`
}

// HasAnyRole reports whether the user holds at least one of roles.
// Roles are not hierarchical, each caller enumerates what it accepts.
func (u *User) HasAnyRole(roles ...Role) bool {
	if u == nil {
		return false
	}
	for _, held := range u.Roles {
		for _, accepted := range roles {
			if held == accepted {
				return true
			}
		}
	}
	return false
}

type BotStatus string

const (
	BotStatusPending  BotStatus = "pending"
	BotStatusApproved BotStatus = "approved"
)

type Bot struct {
	// Id is always the ClientId
	Id       string `bson:"_id" json:"_id"`
	ClientId string `bson:"clientId" json:"clientId"`

	Name            string   `bson:"name" json:"name"`
	Discriminator   string   `bson:"discriminator" json:"discriminator"`
	Avatar          *string  `bson:"avatar" json:"avatar"`
	Description     string   `bson:"description" json:"description"`
	LongDescription string   `bson:"longDescription" json:"longDescription"`
	Prefix          string   `bson:"prefix" json:"prefix"`
	Tags            []string `bson:"tags" json:"tags"`
	Website         *string  `bson:"website" json:"website"`
	SupportServer   *string  `bson:"supportServer" json:"supportServer"`
	GithubRepo      *string  `bson:"githubRepo" json:"githubRepo"`
	InviteUrl       string   `bson:"inviteUrl" json:"inviteUrl"`

	Votes      int64     `bson:"votes" json:"votes"`
	Servers    int64     `bson:"servers" json:"servers"`
	Status     BotStatus `bson:"status" json:"status"`
	Featured   bool      `bson:"featured" json:"featured"`
	IsVerified bool      `bson:"isVerified" json:"isVerified"`
	BotPublic  bool      `bson:"botPublic" json:"botPublic"`

	OwnerId       string `bson:"ownerId" json:"ownerId"`
	OwnerUsername string `bson:"ownerUsername" json:"ownerUsername"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// BotUpdate is the set of fields an owner may change. Nil fields are left untouched.
type BotUpdate struct {
	Prefix          *string
	Description     *string
	LongDescription *string
	Tags            []string
	Website         *string
	SupportServer   *string
	GithubRepo      *string

	UpdatedAt time.Time
}

func (u BotUpdate) Bson() bson.D {
	set := bson.D{}
	if u.Prefix != nil {
		set = append(set, bson.E{Key: "prefix", Value: *u.Prefix})
	}
	if u.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *u.Description})
	}
	if u.LongDescription != nil {
		set = append(set, bson.E{Key: "longDescription", Value: *u.LongDescription})
	}
	if u.Tags != nil {
		set = append(set, bson.E{Key: "tags", Value: u.Tags})
	}
	if u.Website != nil {
		set = append(set, bson.E{Key: "website", Value: *u.Website})
	}
	if u.SupportServer != nil {
		set = append(set, bson.E{Key: "supportServer", Value: *u.SupportServer})
	}
	if u.GithubRepo != nil {
		set = append(set, bson.E{Key: "githubRepo", Value: *u.GithubRepo})
	}
	set = append(set, bson.E{Key: "updatedAt", Value: u.UpdatedAt})

	return bson.D{{Key: "$set", Value: set}}
}

// BotFilter selects bots. Empty fields do not constrain the result.
type BotFilter struct {
	Status BotStatus
	// Query is matched case-insensitively as a substring of name or description.
	Query string
	// Tag must be contained in the bot's tag set.
	Tag string
}

func (f BotFilter) Bson() bson.D {
	filter := bson.D{}
	if f.Status != "" {
		filter = append(filter, bson.E{Key: "status", Value: f.Status})
	}
	if f.Query != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(f.Query), Options: "i"}
		filter = append(filter, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "name", Value: pattern}},
			bson.D{{Key: "description", Value: pattern}},
		}})
	}
	if f.Tag != "" {
		filter = append(filter, bson.E{Key: "tags", Value: f.Tag})
	}
	return filter
}

type SortOrder string

const (
	SortNewest  SortOrder = "newest"
	SortPopular SortOrder = "popular"
	SortServers SortOrder = "servers"
)

// ParseSortOrder falls back to SortNewest for unknown values.
func ParseSortOrder(s string) SortOrder {
	switch SortOrder(s) {
	case SortPopular:
		return SortPopular
	case SortServers:
		return SortServers
	default:
		return SortNewest
	}
}

func (s SortOrder) Bson() bson.D {
	switch s {
	case SortPopular:
		return bson.D{{Key: "votes", Value: -1}}
	case SortServers:
		return bson.D{{Key: "servers", Value: -1}}
	default:
		return bson.D{{Key: "createdAt", Value: -1}}
	}
}

type Partner struct {
	Id          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Website     *string            `bson:"website" json:"website"`
	Logo        *string            `bson:"logo" json:"logo"`
	InviteUrl   *string            `bson:"inviteUrl" json:"inviteUrl"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
