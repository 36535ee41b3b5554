package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Astemirdum/smart-library/library/internal/loan"
	"github.com/Astemirdum/smart-library/library/internal/repository"
	"github.com/Astemirdum/smart-library/pkg/kafka"
)

const (
	userActivityPageSize  = 10
	adminActivityPageSize = 20
	userBooksPageSize     = 12
	adminBooksPageSize    = 15
	adminUsersPageSize    = 15
	userDetailsActivities = 20
	defaultDueSoonDays    = 2
	defaultEventsLimit    = 50
)

type EventPublisher interface {
	Publish(ctx context.Context, ev kafka.LoanEvent) error
}

type Service struct {
	log       *zap.Logger
	repo      repository.Repository
	policy    loan.Policy
	now       func() time.Time
	publisher EventPublisher
}

type Option func(*Service)

func WithPolicy(p loan.Policy) Option {
	return func(s *Service) { s.policy = p }
}

// WithClock replaces time.Now; seeding and tests use it to move through loan periods.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithPublisher(p EventPublisher) Option {
	return func(s *Service) { s.publisher = p }
}

func NewService(repo repository.Repository, log *zap.Logger, opts ...Option) *Service {
	s := &Service{
		log:       log.Named("service"),
		repo:      repo,
		policy:    loan.DefaultPolicy(),
		now:       time.Now,
		publisher: kafka.NopPublisher{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) clock() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// publish is best effort: the operation has already committed.
func (s *Service) publish(ctx context.Context, ev kafka.LoanEvent) {
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.log.Warn("publish loan event",
			zap.String("type", string(ev.EventType)),
			zap.String("activity", ev.ActivityUid),
			zap.Error(err))
	}
}
