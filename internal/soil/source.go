package soil

import (
	"context"
	"log"

	"github.com/i474232898/crop-dashboard/internal/fetch"
	"github.com/i474232898/crop-dashboard/internal/geo"
)

const dataPath = "get_data"

// HTTPSource fetches snapshots from the soil service.
type HTTPSource struct {
	client *fetch.Client
}

func NewHTTPSource(client *fetch.Client) *HTTPSource {
	return &HTTPSource{client: client}
}

// Fetch issues GET {soil-service}/get_data?lat=..&lon=...
func (s *HTTPSource) Fetch(ctx context.Context, coord geo.Coordinate) (Snapshot, error) {
	var snap Snapshot
	if err := s.client.GetJSON(ctx, dataPath, coord, &snap); err != nil {
		log.Printf("soil: fetch failed for %s: %v", coord, err)
		return Snapshot{}, err
	}
	return snap, nil
}

// BaseURL is the soil service root, used to resolve the weather graph asset.
func (s *HTTPSource) BaseURL() string {
	return s.client.BaseURL()
}
