package serviceImp

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"croptech/entities"
	"croptech/pkg/fieldapi"
	"croptech/pkg/geocode"
	"croptech/pkg/tracker/service"
)

const maxPoints = 4

var (
	// ErrNoCrop rejects a commit without a crop selection; the
	// drawing state is left untouched.
	ErrNoCrop = errors.New("select a crop before saving the field")
	// ErrIncomplete rejects a commit before 4 points are placed.
	ErrIncomplete = errors.New("field boundary needs 4 points")
)

// session is one user's drawing state. points is the single mutable
// buffer every click reads and appends through, so rapid sequential
// clicks always see the latest value.
type session struct {
	drawing bool
	points  []entities.Coordinate
	fields  []entities.Field
	search  *entities.Coordinate
}

type trackerSvc struct {
	mu       sync.Mutex
	api      service.BackendAPI
	geo      service.Geocoder
	sessions map[string]*session
}

func New(api service.BackendAPI, geo service.Geocoder) service.TrackerService {
	return &trackerSvc{api: api, geo: geo, sessions: map[string]*session{}}
}

func (t *trackerSvc) session(uid string) *session {
	s, ok := t.sessions[uid]
	if !ok {
		s = &session{}
		t.sessions[uid] = s
	}
	return s
}

// Start enters drawing mode with an empty buffer. The map view is not
// touched, so a preceding address search keeps its position.
func (t *trackerSvc) Start(uid string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.session(uid)
	s.drawing = true
	s.points = nil
}

// Click appends a vertex while drawing. The fifth and later clicks are
// no-ops. Returns the buffer after the click.
func (t *trackerSvc) Click(uid string, lat, lon float64) []entities.Coordinate {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.session(uid)
	if s.drawing && len(s.points) < maxPoints {
		s.points = append(s.points, entities.Coordinate{Lat: lat, Lon: lon})
	}
	return append([]entities.Coordinate(nil), s.points...)
}

// Reset discards the buffer but stays in drawing mode.
func (t *trackerSvc) Reset(uid string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.session(uid).points = nil
}

// Cancel exits drawing mode and discards the buffer. Nothing is
// persisted.
func (t *trackerSvc) Cancel(uid string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.session(uid)
	s.drawing = false
	s.points = nil
}

// Commit turns a completed 4-point polygon into a Field. The field is
// appended to the local list whatever the backend does: a successful
// create swaps in the durable id, a failed one keeps the temporary id
// with Synced left false. Drawing mode is exited before the network
// calls are made, so their responses can only ever touch the field
// list, never the drawing state.
func (t *trackerSvc) Commit(ctx context.Context, sess fieldapi.Session, crop string) (*entities.Field, error) {
	t.mu.Lock()
	s := t.session(sess.UserID)
	if crop == "" {
		t.mu.Unlock()
		return nil, ErrNoCrop
	}
	if !s.drawing || len(s.points) != maxPoints {
		t.mu.Unlock()
		return nil, ErrIncomplete
	}

	points := s.points
	center := centroid(points)
	f := entities.Field{
		ID:          strconv.FormatInt(time.Now().UnixMilli(), 10),
		Name:        crop + " Field " + strconv.Itoa(len(s.fields)+1),
		Crop:        crop,
		Coordinates: points,
		Center:      center,
	}
	s.drawing = false
	s.points = nil
	t.mu.Unlock()

	// Best-effort persistence: field first, crop only once a durable
	// field id exists. No rollback, no retry.
	loc := formatLocation(center)
	if id, err := t.api.CreateField(ctx, sess, loc); err != nil {
		log.Printf("WARN: field creation failed: %v", err)
	} else {
		f.ID = id
		f.Synced = true
		today := time.Now().Format("2006-01-02")
		if err := t.api.CreateCrop(ctx, sess, crop, id, today); err != nil {
			log.Printf("WARN: crop creation failed: %v", err)
		}
	}

	t.mu.Lock()
	s.fields = append(s.fields, f)
	t.mu.Unlock()
	return &f, nil
}

func (t *trackerSvc) Fields(uid string) []entities.Field {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]entities.Field(nil), t.session(uid).fields...)
}

// LoadSaved replaces the in-memory list with the user's saved fields,
// joining the first crop per field. Any failure degrades to a warning:
// a dead backend means an empty list, a dead crops endpoint means
// fields without crop labels.
func (t *trackerSvc) LoadSaved(ctx context.Context, sess fieldapi.Session) {
	remote, err := t.api.ListFields(ctx, sess)
	if err != nil {
		log.Printf("WARN: failed to load fields: %v", err)
		return
	}

	loaded := make([]entities.Field, 0, len(remote))
	for _, rf := range remote {
		id := strconv.FormatInt(rf.ID, 10)
		name := rf.Name
		if name == "" {
			name = "Field " + id
		}
		loaded = append(loaded, entities.Field{
			ID:     id,
			Name:   name,
			Center: parseLocation(rf.Location),
			Synced: true,
		})
	}

	if crops, err := t.api.ListCrops(ctx, sess); err != nil {
		log.Printf("WARN: failed to load crops: %v", err)
	} else {
		firstByField := map[string]string{}
		for _, c := range crops {
			fid := strconv.FormatInt(c.FieldID, 10)
			if _, seen := firstByField[fid]; !seen && c.Name != "" {
				firstByField[fid] = c.Name
			}
		}
		for i := range loaded {
			loaded[i].Crop = firstByField[loaded[i].ID]
		}
	}

	if len(loaded) == 0 {
		return
	}
	t.mu.Lock()
	t.session(sess.UserID).fields = loaded
	t.mu.Unlock()
}

func (t *trackerSvc) Snapshot(uid string) service.MapSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.session(uid)

	snap := service.MapSnapshot{
		Drawing: s.drawing,
		Markers: append([]entities.Coordinate(nil), s.points...),
	}
	if s.drawing {
		snap.Cursor = "crosshair"
	}
	switch {
	case len(s.points) >= 3:
		ring := append([]entities.Coordinate(nil), s.points...)
		snap.Polygon = append(ring, s.points[0])
		snap.Closed = true
	case len(s.points) == 2:
		snap.Polygon = append([]entities.Coordinate(nil), s.points...)
	}
	if s.search != nil {
		c := *s.search
		snap.SearchMarker = &c
	}
	return snap
}

// Search resolves an address to its best match. The result re-centers
// the map only outside drawing mode; drawing state is never affected.
func (t *trackerSvc) Search(ctx context.Context, uid, q string) (*geocode.Result, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, geocode.ErrNotFound
	}
	res, err := t.geo.Search(ctx, q)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	s := t.session(uid)
	if !s.drawing {
		s.search = &entities.Coordinate{Lat: res.Lat, Lon: res.Lon}
	}
	t.mu.Unlock()
	return res, nil
}

// Focus returns the fit-to-bounds view for one saved field, falling
// back to its center when no boundary coordinates are known.
func (t *trackerSvc) Focus(uid, fieldID string) (*service.MapFocus, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, f := range t.session(uid).fields {
		if f.ID != fieldID {
			continue
		}
		if focus, ok := service.Bounds(f.Coordinates); ok {
			return &focus, true
		}
		return &service.MapFocus{SouthWest: f.Center, NorthEast: f.Center, Center: f.Center}, true
	}
	return nil, false
}

// centroid is the arithmetic mean of the vertices, always recomputed
// from the coordinate list.
func centroid(points []entities.Coordinate) entities.Coordinate {
	var c entities.Coordinate
	if len(points) == 0 {
		return c
	}
	for _, p := range points {
		c.Lat += p.Lat
		c.Lon += p.Lon
	}
	c.Lat /= float64(len(points))
	c.Lon /= float64(len(points))
	return c
}

func formatLocation(c entities.Coordinate) string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lon, 'f', -1, 64)
}

// parseLocation reads a "lat,lon" string; anything unparsable defaults
// to (0,0).
func parseLocation(loc string) entities.Coordinate {
	parts := strings.SplitN(loc, ",", 2)
	if len(parts) != 2 {
		return entities.Coordinate{}
	}
	lat, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lon, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil {
		return entities.Coordinate{}
	}
	return entities.Coordinate{Lat: lat, Lon: lon}
}
