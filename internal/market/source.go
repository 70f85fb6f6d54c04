package market

import (
	"context"
	"log"

	"github.com/i474232898/crop-dashboard/internal/fetch"
	"github.com/i474232898/crop-dashboard/internal/geo"
)

const marketPath = "get_market"

// HTTPSource fetches snapshots from the market service.
type HTTPSource struct {
	client *fetch.Client
}

func NewHTTPSource(client *fetch.Client) *HTTPSource {
	return &HTTPSource{client: client}
}

// Fetch issues GET {market-service}/get_market?lat=..&lon=...
func (s *HTTPSource) Fetch(ctx context.Context, coord geo.Coordinate) (Snapshot, error) {
	var snap Snapshot
	if err := s.client.GetJSON(ctx, marketPath, coord, &snap); err != nil {
		log.Printf("market: fetch failed for %s: %v", coord, err)
		return Snapshot{}, err
	}
	log.Printf("DEBUG: market: %d crops for %s", len(snap.CropSummaries), coord)
	return snap, nil
}
