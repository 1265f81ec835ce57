package entities

import "fmt"

// Coordinate is a geographic point in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (c Coordinate) String() string { return fmt.Sprintf("%f,%f", c.Lat, c.Lon) }

// Field is a user-delineated land parcel. IDs are opaque strings: a
// timestamp-based temporary id at creation time, replaced by the
// backend-assigned id once the create call succeeds. Synced reports
// whether that replacement happened.
type Field struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Crop        string       `json:"crop"`
	Coordinates []Coordinate `json:"coordinates"`
	Center      Coordinate   `json:"center"`
	Synced      bool         `json:"synced"`
}
