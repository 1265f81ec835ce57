package service

import (
	"context"

	"croptech/entities"
	"croptech/pkg/fieldapi"
	"croptech/pkg/geocode"
)

// BackendAPI is the slice of the fields/crops backend the drawing
// workflow consumes. Implemented by fieldapi.Client; faked in tests.
type BackendAPI interface {
	CreateField(ctx context.Context, sess fieldapi.Session, location string) (string, error)
	CreateCrop(ctx context.Context, sess fieldapi.Session, name, fieldID, plantingDate string) error
	ListFields(ctx context.Context, sess fieldapi.Session) ([]fieldapi.RemoteField, error)
	ListCrops(ctx context.Context, sess fieldapi.Session) ([]fieldapi.RemoteCrop, error)
}

type Geocoder interface {
	Search(ctx context.Context, q string) (*geocode.Result, error)
}

// MapSnapshot is the render state the map surface draws from: one
// marker per buffered point in click order, an open polyline at two
// points, a closed ring (first point repeated) at three or more, and
// an optional highlighted marker for the last address search.
type MapSnapshot struct {
	Drawing      bool                  `json:"drawing"`
	Cursor       string                `json:"cursor,omitempty"`
	Markers      []entities.Coordinate `json:"markers"`
	Polygon      []entities.Coordinate `json:"polygon,omitempty"`
	Closed       bool                  `json:"closed"`
	SearchMarker *entities.Coordinate  `json:"search_marker,omitempty"`
}

// MapFocus is a fit-to-bounds instruction for a coordinate list.
type MapFocus struct {
	SouthWest entities.Coordinate `json:"south_west"`
	NorthEast entities.Coordinate `json:"north_east"`
	Center    entities.Coordinate `json:"center"`
}

type TrackerService interface {
	Start(uid string)
	Click(uid string, lat, lon float64) []entities.Coordinate
	Reset(uid string)
	Cancel(uid string)
	Commit(ctx context.Context, sess fieldapi.Session, crop string) (*entities.Field, error)
	Fields(uid string) []entities.Field
	LoadSaved(ctx context.Context, sess fieldapi.Session)
	Snapshot(uid string) MapSnapshot
	Search(ctx context.Context, uid, q string) (*geocode.Result, error)
	Focus(uid, fieldID string) (*MapFocus, bool)
}

// Bounds computes the fit-to-bounds rectangle for a coordinate list.
func Bounds(coords []entities.Coordinate) (MapFocus, bool) {
	if len(coords) == 0 {
		return MapFocus{}, false
	}
	sw, ne := coords[0], coords[0]
	for _, c := range coords[1:] {
		if c.Lat < sw.Lat {
			sw.Lat = c.Lat
		}
		if c.Lon < sw.Lon {
			sw.Lon = c.Lon
		}
		if c.Lat > ne.Lat {
			ne.Lat = c.Lat
		}
		if c.Lon > ne.Lon {
			ne.Lon = c.Lon
		}
	}
	return MapFocus{
		SouthWest: sw,
		NorthEast: ne,
		Center:    entities.Coordinate{Lat: (sw.Lat + ne.Lat) / 2, Lon: (sw.Lon + ne.Lon) / 2},
	}, true
}
