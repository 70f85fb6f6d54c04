package geo

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
)

// Fallback location used when no coordinate is configured (Karjat, Maharashtra).
const (
	DefaultLat = 18.8306
	DefaultLon = 73.2846
)

// ErrNotNumeric is returned when a latitude or longitude does not parse as a float.
var ErrNotNumeric = errors.New("coordinate must be numeric")

// Coordinate is a latitude/longitude pair. No geographic bounds are enforced;
// out-of-range values are passed to the backends verbatim.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Default returns the fallback coordinate.
func Default() Coordinate {
	return Coordinate{Lat: DefaultLat, Lon: DefaultLon}
}

// QueryValue formats a single axis for use as a query parameter.
func QueryValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (c Coordinate) String() string {
	return QueryValue(c.Lat) + "," + QueryValue(c.Lon)
}

// ParseCoordinate parses a latitude/longitude pair from text input.
func ParseCoordinate(lat, lon string) (Coordinate, error) {
	la, err := parseAxis("lat", lat)
	if err != nil {
		return Coordinate{}, err
	}
	lo, err := parseAxis("lon", lon)
	if err != nil {
		return Coordinate{}, err
	}
	return Coordinate{Lat: la, Lon: lo}, nil
}

func parseAxis(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s %q: %w", name, s, ErrNotNumeric)
	}
	return v, nil
}

// Collector holds the pending (being edited) and active (last submitted)
// coordinates for one dashboard instance.
type Collector struct {
	mu      sync.Mutex
	pending Coordinate
	active  Coordinate
}

// NewCollector creates a Collector with both coordinates set to start.
func NewCollector(start Coordinate) *Collector {
	return &Collector{pending: start, active: start}
}

// SetPending replaces the pending input. It does not trigger a fetch.
func (c *Collector) SetPending(coord Coordinate) {
	c.mu.Lock()
	c.pending = coord
	c.mu.Unlock()
}

// Submit copies the pending coordinate into the active one, both axes
// together, and returns the new active coordinate.
func (c *Collector) Submit() Coordinate {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = c.pending
	return c.active
}

// Pending returns the coordinate currently being edited.
func (c *Collector) Pending() Coordinate {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// Active returns the last submitted coordinate.
func (c *Collector) Active() Coordinate {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}
