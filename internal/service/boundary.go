package service

import (
	"context"
	"hash/fnv"

	"rutilahu/pkg/types"
)

// SyntheticBoundaryProvider derives placeholder polygons from a hash of
// the entity id. It exists so the map UI has something to draw until real
// boundary data is wired in; the geometry means nothing.
type SyntheticBoundaryProvider struct {
	districts DistrictStore
	villages  VillageStore
}

func NewSyntheticBoundaryProvider(districts DistrictStore, villages VillageStore) *SyntheticBoundaryProvider {
	return &SyntheticBoundaryProvider{districts: districts, villages: villages}
}

func (p *SyntheticBoundaryProvider) DistrictBoundary(ctx context.Context, districtID string) (*types.Boundary, error) {
	district, err := p.districts.District(ctx, districtID)
	if err != nil {
		return nil, err
	}

	return &types.Boundary{
		LocationID:   district.ID,
		LocationName: district.Name,
		Coordinates:  syntheticPolygon(district.ID, 0.15),
	}, nil
}

func (p *SyntheticBoundaryProvider) VillageBoundary(ctx context.Context, villageID string) (*types.Boundary, error) {
	village, err := p.villages.Village(ctx, villageID)
	if err != nil {
		return nil, err
	}

	return &types.Boundary{
		LocationID:   village.ID,
		LocationName: village.Name,
		Coordinates:  syntheticPolygon(village.ID, 0.04),
	}, nil
}

// syntheticPolygon plants a closed square of the given half-width at a
// deterministic point inside the Indonesian bounding box.
func syntheticPolygon(id string, halfWidth float64) [][2]float64 {
	h := fnv.New64a()
	h.Write([]byte(id))
	seed := h.Sum64()

	centerLat := -11.0 + float64(seed%1000)/100.0        // -11 .. -1
	centerLon := 95.0 + float64((seed/1000)%4500)/100.0  // 95 .. 140

	return [][2]float64{
		{centerLat - halfWidth, centerLon - halfWidth},
		{centerLat - halfWidth, centerLon + halfWidth},
		{centerLat + halfWidth, centerLon + halfWidth},
		{centerLat + halfWidth, centerLon - halfWidth},
		{centerLat - halfWidth, centerLon - halfWidth},
	}
}
