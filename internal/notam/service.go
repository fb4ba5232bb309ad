package notam

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/yegors/notamify/internal/observability"
	"github.com/yegors/notamify/pkg/logger"
)

// timestampLayout matches the provider's ISO-8601 second-resolution format
const timestampLayout = "2006-01-02T15:04:05Z"

// DefaultLookaheadHours is the query window used when neither an end time
// nor an explicit lookahead is supplied.
const DefaultLookaheadHours = 24

// ServiceConfig contains the NOTAM service configuration
type ServiceConfig struct {
	BaseURL               string
	APIKey                string
	RequestTimeoutSecs    int
	DefaultLookaheadHours int
}

// Service owns the single long-lived Notamify client and exposes the two
// retrieval operations: the raw combined aggregate and the affected-elements
// summary. It holds no state between calls beyond the client itself.
type Service struct {
	config ServiceConfig
	client *Client
	clock  clockwork.Clock
	logger *logger.Logger

	mu      sync.Mutex
	started bool
}

// NewService creates a new NOTAM service
func NewService(config ServiceConfig, metrics *observability.Metrics, clock clockwork.Clock, logger *logger.Logger) *Service {
	if config.DefaultLookaheadHours <= 0 {
		config.DefaultLookaheadHours = DefaultLookaheadHours
	}
	return &Service{
		config: config,
		client: NewClient(ClientConfig{
			BaseURL:            config.BaseURL,
			APIKey:             config.APIKey,
			RequestTimeoutSecs: config.RequestTimeoutSecs,
		}, metrics, logger),
		clock:  clock,
		logger: logger.Named("notam-service"),
	}
}

// Start marks the service as running
func (s *Service) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	s.logger.Info("Starting NOTAM service",
		logger.String("base_url", s.config.BaseURL),
		logger.Int("default_lookahead_hours", s.config.DefaultLookaheadHours))
	s.started = true
	return nil
}

// Stop releases the service's transport resources. Safe to call on any
// shutdown path, including after a failed start.
func (s *Service) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return nil
	}

	s.client.Close()
	s.started = false
	s.logger.Info("NOTAM service stopped")
	return nil
}

// GetNOTAMs retrieves the complete combined NOTAM set for a comma-separated
// list of ICAO codes. Missing window bounds are synthesized: starts_at
// defaults to now and ends_at to now plus the lookahead.
func (s *Service) GetNOTAMs(ctx context.Context, locations, startsAt, endsAt string, hoursFromNow int) (*AggregateResult, error) {
	result, _, _, err := s.fetch(ctx, locations, startsAt, endsAt, hoursFromNow)
	return result, err
}

// GetAffectedElements retrieves the same combined NOTAM set and renders the
// priority-ordered affected-elements summary.
func (s *Service) GetAffectedElements(ctx context.Context, locations, startsAt, endsAt string, hoursFromNow int) (string, error) {
	result, query, period, err := s.fetch(ctx, locations, startsAt, endsAt, hoursFromNow)
	if err != nil {
		return "", err
	}

	report := BuildReport(result, period)
	return FormatSummary(report, query.Locations), nil
}

func (s *Service) fetch(ctx context.Context, locations, startsAt, endsAt string, hoursFromNow int) (*AggregateResult, Query, string, error) {
	startsAt, endsAt = s.resolveWindow(startsAt, endsAt, hoursFromNow)

	query := Query{
		Locations: ParseLocations(locations),
		StartsAt:  startsAt,
		EndsAt:    endsAt,
		PerPage:   DefaultPerPage,
		Page:      1,
	}

	result, err := s.client.GetNOTAMs(ctx, query)
	if err != nil {
		return nil, query, "", err
	}

	period := fmt.Sprintf("%s to %s", startsAt, endsAt)
	return result, query, period, nil
}

// resolveWindow fills in missing window bounds from the clock: starts_at
// becomes now and ends_at now plus the lookahead, both UTC at second
// resolution.
func (s *Service) resolveWindow(startsAt, endsAt string, hoursFromNow int) (string, string) {
	if startsAt != "" && endsAt != "" {
		return startsAt, endsAt
	}

	if hoursFromNow <= 0 {
		hoursFromNow = s.config.DefaultLookaheadHours
	}

	now := s.clock.Now().UTC()
	if startsAt == "" {
		startsAt = now.Format(timestampLayout)
	}
	if endsAt == "" {
		endsAt = now.Add(time.Duration(hoursFromNow) * time.Hour).Format(timestampLayout)
	}
	return startsAt, endsAt
}
