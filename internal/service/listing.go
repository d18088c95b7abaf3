package service

import (
	"botlist-service/internal/repository"
	"botlist-service/internal/repository/model"
	"context"
	"fmt"
	"go.uber.org/zap"
	"math"
)

const (
	defaultPage  = 1
	defaultLimit = 20
)

type ListQuery struct {
	Query string
	Tag   string
	Sort  string
	Page  int
	Limit int
}

type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int64 `json:"pages"`
}

type ListResult struct {
	Bots       []*model.Bot `json:"bots"`
	Pagination Pagination   `json:"pagination"`
}

// ListingService is the public, read only view of approved bots.
type ListingService struct {
	logger *zap.SugaredLogger
	repo   repository.Repository

	// maxLimit caps page size, zero means unbounded
	maxLimit int
}

func NewListingService(logger *zap.SugaredLogger, repo repository.Repository, maxLimit int) *ListingService {
	return &ListingService{
		logger:   logger,
		repo:     repo,
		maxLimit: maxLimit,
	}
}

func (s *ListingService) ListApproved(ctx context.Context, q ListQuery) (*ListResult, error) {
	page := q.Page
	if page < 1 {
		page = defaultPage
	}
	limit := q.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if s.maxLimit > 0 && limit > s.maxLimit {
		limit = s.maxLimit
	}
	// skip must not overflow, past this page every result is empty anyway
	if maxPage := math.MaxInt64 / int64(limit); int64(page) > maxPage {
		page = int(maxPage)
	}

	// Never widened by other parameters
	filter := model.BotFilter{
		Status: model.BotStatusApproved,
		Query:  q.Query,
		Tag:    q.Tag,
	}

	skip := int64(page-1) * int64(limit)
	bots, err := s.repo.ListBots(ctx, filter, model.ParseSortOrder(q.Sort), skip, int64(limit))
	if err != nil {
		s.logger.Errorw("error listing approved bots", "error", err)
		return nil, fmt.Errorf("failed to list bots: %w", err)
	}

	total, err := s.repo.CountBots(ctx, filter)
	if err != nil {
		s.logger.Errorw("error counting approved bots", "error", err)
		return nil, fmt.Errorf("failed to count bots: %w", err)
	}

	if bots == nil {
		bots = make([]*model.Bot, 0)
	}

	return &ListResult{
		Bots: bots,
		Pagination: Pagination{
			Total: total,
			Page:  page,
			Limit: limit,
			Pages: (total + int64(limit) - 1) / int64(limit),
		},
	}, nil
}
