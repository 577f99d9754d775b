package services

import (
	"context"
	"fmt"

	"github.com/edusphere/eduadmin/internal/app/models/dto"
)

// registrationWindowDays is the lookback used by the dashboard registration chart
const registrationWindowDays = 30

// StatsService handles read-only dashboard aggregations over the directory
type StatsService struct {
	studentStore StudentStore
}

// NewStatsService creates a new stats service instance
func NewStatsService(studentStore StudentStore) *StatsService {
	return &StatsService{studentStore: studentStore}
}

// SubscriptionStats tallies paid vs unpaid directory records
func (s *StatsService) SubscriptionStats(ctx context.Context) (dto.SubscriptionStats, error) {
	stats, err := s.studentStore.SubscriptionStats(ctx)
	if err != nil {
		return stats, fmt.Errorf("error computing subscription stats: %w", err)
	}
	return stats, nil
}

// ChartStats assembles the dashboard aggregations
func (s *StatsService) ChartStats(ctx context.Context) (*dto.ChartStatsResponse, error) {
	subscription, err := s.studentStore.SubscriptionStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("error computing subscription stats: %w", err)
	}

	byClass, err := s.studentStore.ClassDistribution(ctx)
	if err != nil {
		return nil, fmt.Errorf("error computing class distribution: %w", err)
	}

	registrations, err := s.studentStore.RegistrationsByDay(ctx, registrationWindowDays)
	if err != nil {
		return nil, fmt.Errorf("error computing registrations: %w", err)
	}

	return &dto.ChartStatsResponse{
		Message:       "chart stats retrieved",
		Subscription:  subscription,
		ByClass:       byClass,
		Registrations: registrations,
	}, nil
}
