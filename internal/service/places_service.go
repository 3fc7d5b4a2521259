package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"restconnect-service/internal/citydata"
)

// PlacesService serves the datasets behind the amenities map and the safety
// statistics page.
type PlacesService struct {
	source citydata.Source
	log    zerolog.Logger
}

func NewPlacesService(source citydata.Source, log zerolog.Logger) *PlacesService {
	return &PlacesService{source: source, log: log}
}

func (s *PlacesService) Toilets(ctx context.Context) ([]citydata.Toilet, error) {
	toilets, err := s.source.Toilets(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to fetch public toilets")
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return toilets, nil
}

func (s *PlacesService) OpenSpaces(ctx context.Context) ([]citydata.OpenSpace, error) {
	spaces, err := s.source.OpenSpaces(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to fetch open spaces")
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return spaces, nil
}

func (s *PlacesService) CrimeStats(ctx context.Context) ([]citydata.CrimeStat, error) {
	stats, err := s.source.CrimeStats(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to fetch crime statistics")
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return stats, nil
}
