package application

import (
	"context"

	"github.com/rabnifoundation/rabni-api/internal/domain/entity"
	repo "github.com/rabnifoundation/rabni-api/internal/domain/repository"
)

const dashboardRecent = 5

type Dashboard struct {
	Stats            entity.DashboardStats         `json:"stats"`
	RecentVolunteers []entity.VolunteerApplication `json:"recent_volunteers"`
	RecentMessages   []entity.ContactMessage       `json:"recent_messages"`
}

type DashboardService struct {
	Stats      repo.StatsRepository
	Volunteers repo.VolunteerRepository
	Contacts   repo.ContactRepository
}

func NewDashboardService(stats repo.StatsRepository, volunteers repo.VolunteerRepository, contacts repo.ContactRepository) *DashboardService {
	return &DashboardService{Stats: stats, Volunteers: volunteers, Contacts: contacts}
}

func (s *DashboardService) Overview(ctx context.Context) (*Dashboard, error) {
	stats, err := s.Stats.Counts(ctx)
	if err != nil {
		return nil, err
	}
	vols, err := s.Volunteers.List(ctx, dashboardRecent)
	if err != nil {
		return nil, err
	}
	msgs, err := s.Contacts.List(ctx, dashboardRecent)
	if err != nil {
		return nil, err
	}
	return &Dashboard{Stats: stats, RecentVolunteers: vols, RecentMessages: msgs}, nil
}
