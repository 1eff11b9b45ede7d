package service

import (
	"context"

	"github.com/Atharva-Dhavale/FarmConnect-sub000/internal/entity"
	"github.com/Atharva-Dhavale/FarmConnect-sub000/internal/repository"
	"github.com/Atharva-Dhavale/FarmConnect-sub000/internal/session"
)

// AnalyticsService serves the dashboard summary for the caller's role.
type AnalyticsService struct {
	analytics repository.AnalyticsRepository
	users     repository.UserRepository
}

func NewAnalyticsService(analytics repository.AnalyticsRepository, users repository.UserRepository) *AnalyticsService {
	return &AnalyticsService{analytics: analytics, users: users}
}

func (s *AnalyticsService) Summarize(ctx context.Context, caller *session.Session) (*entity.Analytics, error) {
	u, err := s.users.FindByID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	return s.analytics.Summarize(ctx, u)
}
