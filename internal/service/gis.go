package service

import (
	"context"
	"sort"

	"rutilahu/pkg/types"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// heatmapPlaces gives ~100m grid cells; changing it changes every cell
// key, so clients depend on the exact value.
const heatmapPlaces = 3

type GISStore interface {
	MapPoints(ctx context.Context, filter types.MapFilter) ([]*types.MapPoint, error)
}

// BoundaryProvider supplies polygon geometry for districts and villages.
// The built-in implementation is synthetic; a real GIS source slots in
// here without touching the rest of the layer.
type BoundaryProvider interface {
	DistrictBoundary(ctx context.Context, districtID string) (*types.Boundary, error)
	VillageBoundary(ctx context.Context, villageID string) (*types.Boundary, error)
}

// GISService is the spatial view over housing-record coordinates.
type GISService struct {
	gis        GISStore
	records    HousingStore
	boundaries BoundaryProvider
	audit      Recorder
	logger     *logrus.Logger
}

func NewGISService(gis GISStore, records HousingStore, boundaries BoundaryProvider, audit Recorder, logger *logrus.Logger) *GISService {
	return &GISService{gis: gis, records: records, boundaries: boundaries, audit: audit, logger: logger}
}

func (s *GISService) MapData(ctx context.Context, filter types.MapFilter) ([]*types.MapPoint, error) {
	if filter.HousingStatus != "" && !filter.HousingStatus.Valid() {
		return nil, types.NewValidationError("housing_status", "unknown housing status")
	}
	return s.gis.MapPoints(ctx, filter)
}

// HeatmapData bins every coordinate-bearing record into a 3-decimal-place
// grid cell and reports the occupancy of each cell.
func (s *GISService) HeatmapData(ctx context.Context) ([]*types.HeatmapCell, error) {
	points, err := s.gis.MapPoints(ctx, types.MapFilter{})
	if err != nil {
		return nil, err
	}

	return binHeatmapCells(points), nil
}

func binHeatmapCells(points []*types.MapPoint) []*types.HeatmapCell {
	type cellKey struct {
		lat string
		lon string
	}

	cells := make(map[cellKey]*types.HeatmapCell)
	for _, p := range points {
		lat := p.Latitude.Round(heatmapPlaces)
		lon := p.Longitude.Round(heatmapPlaces)
		key := cellKey{lat: lat.String(), lon: lon.String()}

		if cell, ok := cells[key]; ok {
			cell.Intensity++
			continue
		}
		cells[key] = &types.HeatmapCell{Latitude: lat, Longitude: lon, Intensity: 1}
	}

	out := make([]*types.HeatmapCell, 0, len(cells))
	for _, cell := range cells {
		out = append(out, cell)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Latitude.Equal(out[j].Latitude) {
			return out[i].Latitude.LessThan(out[j].Latitude)
		}
		return out[i].Longitude.LessThan(out[j].Longitude)
	})

	return out
}

func (s *GISService) DistrictBoundary(ctx context.Context, districtID string) (*types.Boundary, error) {
	return s.boundaries.DistrictBoundary(ctx, districtID)
}

func (s *GISService) VillageBoundary(ctx context.Context, villageID string) (*types.Boundary, error) {
	return s.boundaries.VillageBoundary(ctx, villageID)
}

// UpdateCoordinates overwrites a record's position and bumps updated_at.
func (s *GISService) UpdateCoordinates(ctx context.Context, recordID string, lat, lon decimal.Decimal, actor types.Actor) error {
	if err := s.records.UpdateCoordinates(ctx, recordID, lat.Round(coordinatePlaces), lon.Round(coordinatePlaces)); err != nil {
		return err
	}

	s.audit.Record(ctx, types.AuditEvent{
		UserID:       actor.UserID,
		Action:       types.AuditActionUpdate,
		ResourceType: "housing_record",
		ResourceID:   recordID,
		Details:      "coordinates",
		IPAddress:    actor.IPAddress,
	})

	return nil
}
