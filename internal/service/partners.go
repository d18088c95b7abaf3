package service

import (
	"botlist-service/internal/access"
	"botlist-service/internal/apperr"
	"botlist-service/internal/identity"
	"botlist-service/internal/repository"
	"botlist-service/internal/repository/model"
	"context"
	"fmt"
	"go.uber.org/zap"
	"strings"
	"time"
)

type CreatePartnerRequest struct {
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
	Website     string `json:"website" form:"website"`
	Logo        string `json:"logo" form:"logo"`
	InviteUrl   string `json:"inviteUrl" form:"inviteUrl"`
}

type PartnerDirectory struct {
	logger *zap.SugaredLogger
	repo   repository.Repository
	gate   *access.Gate

	now func() time.Time
}

func NewPartnerDirectory(logger *zap.SugaredLogger, repo repository.Repository, gate *access.Gate) *PartnerDirectory {
	return &PartnerDirectory{
		logger: logger,
		repo:   repo,
		gate:   gate,
		now:    time.Now,
	}
}

// Create is limited to admins and founders. Only the name is required.
func (s *PartnerDirectory) Create(ctx context.Context, caller *identity.Caller, req *CreatePartnerRequest) (*model.Partner, error) {
	if err := requirePartnerManager(ctx, s.gate, caller); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperr.New(apperr.InvalidArgument, "partner name is required")
	}

	partner := &model.Partner{
		Name:        req.Name,
		Description: req.Description,
		Website:     optional(req.Website),
		Logo:        optional(req.Logo),
		InviteUrl:   optional(req.InviteUrl),
		CreatedAt:   s.now(),
	}

	if err := s.repo.CreatePartner(ctx, partner); err != nil {
		s.logger.Errorw("error creating partner", "name", req.Name, "error", err)
		return nil, fmt.Errorf("failed to create partner: %w", err)
	}

	return partner, nil
}

func (s *PartnerDirectory) List(ctx context.Context) ([]*model.Partner, error) {
	partners, err := s.repo.GetPartners(ctx)
	if err != nil {
		s.logger.Errorw("error listing partners", "error", err)
		return nil, fmt.Errorf("failed to list partners: %w", err)
	}

	if partners == nil {
		partners = make([]*model.Partner, 0)
	}
	return partners, nil
}
