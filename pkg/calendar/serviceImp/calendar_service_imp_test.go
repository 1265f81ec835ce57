package serviceImp

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"croptech/entities"
)

// fakeStore is an in-memory StoreRepository with optional fault
// injection.
type fakeStore struct {
	data    map[string]string
	failAll bool
}

func newFakeStore() *fakeStore { return &fakeStore{data: map[string]string{}} }

func (f *fakeStore) Get(key string) (string, bool, error) {
	if f.failAll {
		return "", false, errors.New("store unavailable")
	}
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *fakeStore) Put(key, value string) error {
	if f.failAll {
		return errors.New("store unavailable")
	}
	f.data[key] = value
	return nil
}

func (f *fakeStore) Delete(key string) error {
	if f.failAll {
		return errors.New("store unavailable")
	}
	delete(f.data, key)
	return nil
}

func TestDates(t *testing.T) {
	t.Run("falls back to initial dates when nothing saved", func(t *testing.T) {
		svc := New(newFakeStore())
		pair := svc.Dates("f1", "2025-10-01", "")
		assert.Equal(t, "2025-10-01", pair.Planting)
		assert.Empty(t, pair.Harvest)
	})

	t.Run("saved dates win over initial dates", func(t *testing.T) {
		store := newFakeStore()
		store.data["field-f1-dates"] = `{"planting":"2025-09-15","harvest":"2026-01-20"}`
		svc := New(store)
		pair := svc.Dates("f1", "2025-10-01", "")
		assert.Equal(t, "2025-09-15", pair.Planting)
		assert.Equal(t, "2026-01-20", pair.Harvest)
	})

	t.Run("changes write through immediately", func(t *testing.T) {
		store := newFakeStore()
		svc := New(store)
		svc.SetDates("f1", entities.DatePair{Planting: "2025-10-01"})
		assert.JSONEq(t, `{"planting":"2025-10-01","harvest":""}`, store.data["field-f1-dates"])
	})

	t.Run("keys are field-scoped", func(t *testing.T) {
		store := newFakeStore()
		svc := New(store)
		svc.SetDates("f1", entities.DatePair{Planting: "2025-10-01"})
		svc.SetDates("f2", entities.DatePair{Planting: "2026-01-01"})
		assert.NotEqual(t, store.data["field-f1-dates"], store.data["field-f2-dates"])
	})

	t.Run("clear removes the pair but not the events", func(t *testing.T) {
		store := newFakeStore()
		svc := New(store)
		svc.SetDates("f1", entities.DatePair{Planting: "2025-10-01", Harvest: "2026-02-01"})
		_, err := svc.Toggle("f1", "2025-10-05", "watered")
		require.NoError(t, err)

		svc.ClearDates("f1")
		assert.NotContains(t, store.data, "field-f1-dates")
		assert.Contains(t, store.data, "field-f1-events")
		assert.Nil(t, svc.Duration("f1"))
	})

	t.Run("store failure degrades to in-memory state", func(t *testing.T) {
		store := newFakeStore()
		store.failAll = true
		svc := New(store)
		pair := svc.SetDates("f1", entities.DatePair{Planting: "2025-10-01"})
		assert.Equal(t, "2025-10-01", pair.Planting)
		assert.Equal(t, "2025-10-01", svc.Dates("f1", "", "").Planting)
	})
}

func TestNavigation(t *testing.T) {
	svc := New(newFakeStore())
	svc.SetDates("f1", entities.DatePair{Planting: "2025-10-01"}) // 3-month range

	assert.Equal(t, 0, svc.Navigate("f1", -1), "clamped at the start")
	assert.Equal(t, 1, svc.Navigate("f1", 1))
	assert.Equal(t, 2, svc.Navigate("f1", 1))
	assert.Equal(t, 2, svc.Navigate("f1", 1), "clamped at the end")

	t.Run("planting change resets the index", func(t *testing.T) {
		svc.SetDates("f1", entities.DatePair{Planting: "2025-11-01"})
		assert.Equal(t, 0, svc.Navigate("f1", 0))
	})

	t.Run("range length change resets the index", func(t *testing.T) {
		svc.Navigate("f1", 2)
		svc.SetDates("f1", entities.DatePair{Planting: "2025-11-01", Harvest: "2026-04-01"})
		assert.Equal(t, 0, svc.Navigate("f1", 0))
	})

	t.Run("empty range pins the index to zero", func(t *testing.T) {
		svc.ClearDates("f1")
		assert.Equal(t, 0, svc.Navigate("f1", 5))
	})
}

func TestGrid(t *testing.T) {
	svc := New(newFakeStore())

	t.Run("no planting date means no grid", func(t *testing.T) {
		_, ok := svc.Grid("f1", 0, "")
		assert.False(t, ok)
	})

	svc.SetDates("f1", entities.DatePair{Planting: "2025-10-01", Harvest: "2025-12-25"})
	_, err := svc.Toggle("f1", "2025-10-05", "watered")
	require.NoError(t, err)

	grid, ok := svc.Grid("f1", 0, "2025-10-07")
	require.True(t, ok)
	assert.Equal(t, 2025, grid.Year)
	assert.Equal(t, time.October, grid.Month)
	assert.Equal(t, 31, grid.Days)
	assert.Equal(t, 3, grid.StartOffset)
	assert.Equal(t, 3, grid.RangeLength)

	byDate := map[string]int{}
	for i, cell := range grid.Cells {
		byDate[cell.Date] = i
	}
	assert.True(t, grid.Cells[byDate["2025-10-01"]].Planting)
	assert.True(t, grid.Cells[byDate["2025-10-05"]].Watered)
	assert.True(t, grid.Cells[byDate["2025-10-07"]].Selected)
	assert.False(t, grid.Cells[byDate["2025-10-07"]].Planting, "selection independent of planting flag")

	t.Run("out-of-range index clamps", func(t *testing.T) {
		grid, ok := svc.Grid("f1", 99, "")
		require.True(t, ok)
		assert.Equal(t, time.December, grid.Month)
		assert.Equal(t, 2, grid.Index)
	})
}

func TestEvents(t *testing.T) {
	t.Run("double toggle restores the persisted bytes", func(t *testing.T) {
		store := newFakeStore()
		svc := New(store)
		svc.SetNote("f1", "2025-10-05", "irrigated east side")
		before := store.data["field-f1-events"]

		_, err := svc.Toggle("f1", "2025-10-05", "watered")
		require.NoError(t, err)
		_, err = svc.Toggle("f1", "2025-10-05", "watered")
		require.NoError(t, err)

		assert.Equal(t, before, store.data["field-f1-events"])
	})

	t.Run("flags are independent", func(t *testing.T) {
		svc := New(newFakeStore())
		for _, flag := range []string{"watered", "fertilizer", "pesticide"} {
			_, err := svc.Toggle("f1", "2025-10-05", flag)
			require.NoError(t, err)
		}
		e := svc.Events("f1")["2025-10-05"]
		assert.True(t, e.Watered)
		assert.True(t, e.Fertilizer)
		assert.True(t, e.Pesticide)
	})

	t.Run("unknown flag is rejected", func(t *testing.T) {
		svc := New(newFakeStore())
		_, err := svc.Toggle("f1", "2025-10-05", "weeded")
		assert.Error(t, err)
	})

	t.Run("empty entries are kept, not pruned", func(t *testing.T) {
		svc := New(newFakeStore())
		_, err := svc.Toggle("f1", "2025-10-05", "watered")
		require.NoError(t, err)
		_, err = svc.Toggle("f1", "2025-10-05", "watered")
		require.NoError(t, err)
		assert.Contains(t, svc.Events("f1"), "2025-10-05")
	})

	t.Run("clear all events removes the entry and keeps dates", func(t *testing.T) {
		store := newFakeStore()
		svc := New(store)
		svc.SetDates("f1", entities.DatePair{Planting: "2025-10-01"})
		svc.SetNote("f1", "2025-10-05", "note")

		svc.ClearEvents("f1")
		assert.Empty(t, svc.Events("f1"))
		assert.NotContains(t, store.data, "field-f1-events")
		assert.Equal(t, "2025-10-01", svc.Dates("f1", "", "").Planting)
	})

	t.Run("events survive a service restart via the store", func(t *testing.T) {
		store := newFakeStore()
		svc := New(store)
		_, err := svc.Toggle("f1", "2025-10-05", "fertilizer")
		require.NoError(t, err)

		reloaded := New(store)
		assert.True(t, reloaded.Events("f1")["2025-10-05"].Fertilizer)
	})
}
