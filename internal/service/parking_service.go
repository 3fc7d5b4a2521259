package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"restconnect-service/internal/domain/parking"
	"restconnect-service/internal/domain/sign"
	"restconnect-service/internal/observability"
	"restconnect-service/internal/repository"
	"restconnect-service/internal/utils"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrUpstream     = errors.New("upstream failure")
)

// SignRecognizer is the external recognition endpoint.
type SignRecognizer interface {
	RecognizeSign(ctx context.Context, imageDataURL string) ([]sign.SignItem, error)
}

// CheckStore persists completed checks.
type CheckStore interface {
	CreateCheck(ctx context.Context, check *repository.ParkingCheck) error
	FindChecks(ctx context.Context, canPark *bool, from, to *time.Time, limit, offset int) ([]repository.ParkingCheck, error)
	DeleteOldChecks(ctx context.Context, days int) (int64, error)
}

type ParkingService struct {
	recognizer SignRecognizer
	store      CheckStore
	metrics    *observability.Metrics
	log        zerolog.Logger
}

func NewParkingService(recognizer SignRecognizer, store CheckStore, metrics *observability.Metrics, log zerolog.Logger) *ParkingService {
	return &ParkingService{
		recognizer: recognizer,
		store:      store,
		metrics:    metrics,
		log:        log,
	}
}

// CheckSign runs one full check: validates the upload, sends the image to
// the recognizer, evaluates the returned items against the user's declared
// attributes, and records the outcome.
func (s *ParkingService) CheckSign(ctx context.Context, req parking.CheckRequest) (*parking.CheckResult, error) {
	direction, err := normalizeDirection(req.Direction)
	if err != nil {
		return nil, err
	}

	image, err := utils.NormalizeImageDataURL(req.Image)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	items, err := s.recognizer.RecognizeSign(ctx, image)
	if err != nil {
		s.log.Error().Err(err).Msg("sign recognition failed")
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	user := sign.UserContext{
		Direction:      direction,
		Commercial:     req.Commercial,
		DisabledPermit: req.DisabledPermit,
	}
	verdict := sign.Evaluate(items, user)

	s.metrics.ChecksTotal.Inc()
	s.metrics.VerdictOutcomes.WithLabelValues(outcomeLabel(verdict.CanPark)).Inc()

	rawItems, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("marshal sign items: %w", err)
	}

	check := &repository.ParkingCheck{
		ID:             uuid.New(),
		Direction:      string(direction),
		Commercial:     req.Commercial,
		DisabledPermit: req.DisabledPermit,
		CanPark:        verdict.CanPark,
		Heading:        verdict.Heading,
		SignCount:      len(items),
		RawItems:       datatypes.JSON(rawItems),
	}
	if err := s.store.CreateCheck(ctx, check); err != nil {
		s.log.Error().
			Err(err).
			Str("direction", string(direction)).
			Msg("failed to save parking check")
		return nil, fmt.Errorf("failed to save parking check: %w", err)
	}

	s.log.Info().
		Str("check_id", check.ID.String()).
		Str("direction", string(direction)).
		Bool("commercial", req.Commercial).
		Bool("disabled_permit", req.DisabledPermit).
		Bool("can_park", verdict.CanPark).
		Int("sign_count", len(items)).
		Msg("completed parking check")

	return &parking.CheckResult{
		CheckID:   check.ID.String(),
		SignCount: len(items),
		Verdict:   verdict,
	}, nil
}

// EvaluateItems runs the decision table over caller-supplied items without
// touching the recognizer or the store.
func (s *ParkingService) EvaluateItems(req parking.EvaluateRequest) (*sign.Verdict, error) {
	direction, err := normalizeDirection(req.Direction)
	if err != nil {
		return nil, err
	}

	user := sign.UserContext{
		Direction:      direction,
		Commercial:     req.Commercial,
		DisabledPermit: req.DisabledPermit,
	}
	verdict := sign.Evaluate(req.Items, user)
	s.metrics.VerdictOutcomes.WithLabelValues(outcomeLabel(verdict.CanPark)).Inc()
	return &verdict, nil
}

func (s *ParkingService) FindChecks(ctx context.Context, canPark *bool, from, to *string, limit, offset int) ([]CheckInfo, error) {
	var fromTime, toTime *time.Time
	if from != nil && *from != "" {
		t, err := time.Parse(time.RFC3339, *from)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid from time format", ErrInvalidInput)
		}
		fromTime = &t
	}
	if to != nil && *to != "" {
		t, err := time.Parse(time.RFC3339, *to)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid to time format", ErrInvalidInput)
		}
		toTime = &t
	}

	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	checks, err := s.store.FindChecks(ctx, canPark, fromTime, toTime, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to find checks: %w", err)
	}

	result := make([]CheckInfo, 0, len(checks))
	for _, c := range checks {
		result = append(result, CheckInfo{
			ID:             c.ID.String(),
			Direction:      c.Direction,
			Commercial:     c.Commercial,
			DisabledPermit: c.DisabledPermit,
			CanPark:        c.CanPark,
			Heading:        c.Heading,
			SignCount:      c.SignCount,
			CreatedAt:      c.CreatedAt,
		})
	}
	return result, nil
}

// CleanupOldChecks removes checks older than the given number of days.
func (s *ParkingService) CleanupOldChecks(ctx context.Context, days int) (int64, error) {
	if days <= 0 {
		return 0, fmt.Errorf("%w: days must be positive", ErrInvalidInput)
	}
	deleted, err := s.store.DeleteOldChecks(ctx, days)
	if err != nil {
		s.log.Error().Err(err).Int("days", days).Msg("failed to cleanup old checks")
		return 0, err
	}
	if deleted > 0 {
		s.metrics.ChecksPurged.Add(float64(deleted))
		s.log.Info().Int64("deleted_count", deleted).Int("days", days).Msg("cleaned up old checks")
	}
	return deleted, nil
}

func normalizeDirection(d sign.Direction) (sign.Direction, error) {
	switch sign.Direction(strings.ToUpper(strings.TrimSpace(string(d)))) {
	case sign.DirectionLeft:
		return sign.DirectionLeft, nil
	case sign.DirectionRight:
		return sign.DirectionRight, nil
	}
	return "", fmt.Errorf("%w: direction must be LEFT or RIGHT", ErrInvalidInput)
}

func outcomeLabel(canPark bool) string {
	if canPark {
		return "allowed"
	}
	return "denied"
}

type CheckInfo struct {
	ID             string    `json:"id"`
	Direction      string    `json:"direction"`
	Commercial     bool      `json:"commercial"`
	DisabledPermit bool      `json:"disabled_permit"`
	CanPark        bool      `json:"can_park"`
	Heading        string    `json:"heading"`
	SignCount      int       `json:"sign_count"`
	CreatedAt      time.Time `json:"created_at"`
}
