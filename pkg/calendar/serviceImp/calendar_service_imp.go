package serviceImp

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"croptech/entities"
	"croptech/pkg/calendar/service"
	"croptech/pkg/store/repository"
)

// fieldState caches one field's calendar between requests. The store
// stays the source of truth: every change is written through
// immediately, and store failures degrade to in-memory-only operation.
type fieldState struct {
	pair         entities.DatePair
	events       entities.EventMap
	idx          int
	datesLoaded  bool
	eventsLoaded bool
}

type calSvc struct {
	mu     sync.Mutex
	store  repository.StoreRepository
	states map[string]*fieldState
}

func New(store repository.StoreRepository) service.CalendarService {
	return &calSvc{store: store, states: map[string]*fieldState{}}
}

func datesKey(fieldID string) string  { return "field-" + fieldID + "-dates" }
func eventsKey(fieldID string) string { return "field-" + fieldID + "-events" }

func (s *calSvc) state(fieldID string) *fieldState {
	st, ok := s.states[fieldID]
	if !ok {
		st = &fieldState{events: entities.EventMap{}}
		s.states[fieldID] = st
	}
	return st
}

// Dates loads the saved date pair for a field, falling back to the
// caller-supplied initial dates when nothing is stored.
func (s *calSvc) Dates(fieldID, initialPlanting, initialHarvest string) entities.DatePair {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state(fieldID)
	if st.datesLoaded {
		return st.pair
	}
	st.datesLoaded = true
	st.pair = entities.DatePair{Planting: initialPlanting, Harvest: initialHarvest}

	raw, ok, err := s.store.Get(datesKey(fieldID))
	if err != nil {
		log.Printf("WARN: load dates %s: %v", fieldID, err)
	} else if ok {
		var saved entities.DatePair
		if err := json.Unmarshal([]byte(raw), &saved); err == nil {
			st.pair = saved
		}
	}
	s.persistDates(fieldID, st.pair)
	return st.pair
}

func (s *calSvc) SetDates(fieldID string, pair entities.DatePair) entities.DatePair {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state(fieldID)
	st.datesLoaded = true

	oldLen := len(service.RangeFor(st.pair))
	plantingChanged := st.pair.Planting != pair.Planting
	st.pair = pair
	if plantingChanged || len(service.RangeFor(pair)) != oldLen {
		st.idx = 0
	}
	s.persistDates(fieldID, pair)
	return pair
}

// ClearDates unsets both dates and removes the stored pair. The event
// log is untouched.
func (s *calSvc) ClearDates(fieldID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state(fieldID)
	st.pair = entities.DatePair{}
	st.datesLoaded = true
	st.idx = 0
	if err := s.store.Delete(datesKey(fieldID)); err != nil {
		log.Printf("WARN: clear dates %s: %v", fieldID, err)
	}
}

func (s *calSvc) MonthRange(fieldID string) []service.YearMonth {
	s.mu.Lock()
	defer s.mu.Unlock()
	return service.RangeFor(s.state(fieldID).pair)
}

// Navigate moves the visible month index by delta, clamped to the
// range, and returns the resulting index.
func (s *calSvc) Navigate(fieldID string, delta int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state(fieldID)
	n := len(service.RangeFor(st.pair))
	if n == 0 {
		st.idx = 0
		return 0
	}
	st.idx = clamp(st.idx+delta, 0, n-1)
	return st.idx
}

// Grid renders one month of the range. A selected date is flagged
// independently of the planting/harvest flags.
func (s *calSvc) Grid(fieldID string, index int, selected string) (*service.MonthGrid, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state(fieldID)
	months := service.RangeFor(st.pair)
	if len(months) == 0 {
		return nil, false
	}
	idx := clamp(index, 0, len(months)-1)
	st.idx = idx
	ym := months[idx]
	days, offset := service.DaysIn(ym.Year, ym.Month)
	events := s.loadEvents(fieldID)

	grid := &service.MonthGrid{
		Year:        ym.Year,
		Month:       ym.Month,
		MonthName:   ym.Month.String(),
		Days:        days,
		StartOffset: offset,
		Index:       idx,
		RangeLength: len(months),
		Cells:       make([]service.DayCell, 0, days),
	}
	for day := 1; day <= days; day++ {
		key := service.FormatDateKey(time.Date(ym.Year, ym.Month, day, 0, 0, 0, 0, time.UTC))
		e := events[key]
		grid.Cells = append(grid.Cells, service.DayCell{
			Day:        day,
			Date:       key,
			Planting:   st.pair.Planting == key,
			Harvest:    st.pair.Harvest == key,
			Selected:   selected == key,
			Watered:    e.Watered,
			Fertilizer: e.Fertilizer,
			Pesticide:  e.Pesticide,
			HasNote:    e.Note != "",
		})
	}
	return grid, true
}

func (s *calSvc) Events(fieldID string) entities.EventMap {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.loadEvents(fieldID)
	out := make(entities.EventMap, len(events))
	for k, v := range events {
		out[k] = v
	}
	return out
}

// Toggle flips one activity flag for a date and persists the full
// event map. Flags are independent; all three may be set at once.
func (s *calSvc) Toggle(fieldID, date, flag string) (entities.DayEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.loadEvents(fieldID)
	e := events[date]
	switch flag {
	case "watered":
		e.Watered = !e.Watered
	case "fertilizer":
		e.Fertilizer = !e.Fertilizer
	case "pesticide":
		e.Pesticide = !e.Pesticide
	default:
		return e, fmt.Errorf("unknown event flag %q", flag)
	}
	events[date] = e
	s.persistEvents(fieldID, events)
	return e, nil
}

func (s *calSvc) SetNote(fieldID, date, note string) entities.DayEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.loadEvents(fieldID)
	e := events[date]
	e.Note = note
	events[date] = e
	s.persistEvents(fieldID, events)
	return e
}

// ClearEvents empties the event map and removes the stored entry.
// Planting/harvest dates are unaffected. Irreversible; callers must
// confirm before invoking.
func (s *calSvc) ClearEvents(fieldID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state(fieldID)
	st.events = entities.EventMap{}
	st.eventsLoaded = true
	if err := s.store.Delete(eventsKey(fieldID)); err != nil {
		log.Printf("WARN: clear events %s: %v", fieldID, err)
	}
}

func (s *calSvc) Duration(fieldID string) *int {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state(fieldID)
	return service.DaysBetween(st.pair.Planting, st.pair.Harvest)
}

// loadEvents returns the live event map for a field, reading it from
// the store once. Callers hold the mutex.
func (s *calSvc) loadEvents(fieldID string) entities.EventMap {
	st := s.state(fieldID)
	if st.eventsLoaded {
		return st.events
	}
	st.eventsLoaded = true
	raw, ok, err := s.store.Get(eventsKey(fieldID))
	if err != nil {
		log.Printf("WARN: load events %s: %v", fieldID, err)
		return st.events
	}
	if ok {
		var saved entities.EventMap
		if err := json.Unmarshal([]byte(raw), &saved); err == nil && saved != nil {
			st.events = saved
		}
	}
	return st.events
}

func (s *calSvc) persistDates(fieldID string, pair entities.DatePair) {
	b, _ := json.Marshal(pair)
	if err := s.store.Put(datesKey(fieldID), string(b)); err != nil {
		log.Printf("WARN: save dates %s: %v", fieldID, err)
	}
}

func (s *calSvc) persistEvents(fieldID string, events entities.EventMap) {
	b, _ := json.Marshal(events)
	if err := s.store.Put(eventsKey(fieldID), string(b)); err != nil {
		log.Printf("WARN: save events %s: %v", fieldID, err)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
