package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"croptech/entities"
)

func TestEventsCSV(t *testing.T) {
	t.Run("quotes and escapes every cell", func(t *testing.T) {
		events := entities.EventMap{
			"2025-01-05": {Watered: true, Note: `a,"b"`},
		}
		got := EventsCSV(events)
		lines := strings.Split(got, "\r\n")
		require.Len(t, lines, 2)
		assert.Equal(t, `"date","watered","fertilizer","pesticide","note"`, lines[0])
		assert.Equal(t, `"2025-01-05","1","0","0","a,""b"""`, lines[1])
	})

	t.Run("rows sort by date string ascending", func(t *testing.T) {
		events := entities.EventMap{
			"2025-03-01": {Fertilizer: true},
			"2025-01-15": {Watered: true},
			"2025-02-20": {Pesticide: true, Note: "spot treatment"},
		}
		lines := strings.Split(EventsCSV(events), "\r\n")
		require.Len(t, lines, 4)
		assert.True(t, strings.HasPrefix(lines[1], `"2025-01-15"`))
		assert.True(t, strings.HasPrefix(lines[2], `"2025-02-20"`))
		assert.True(t, strings.HasPrefix(lines[3], `"2025-03-01"`))
	})

	t.Run("empty map exports only the header", func(t *testing.T) {
		assert.Equal(t, `"date","watered","fertilizer","pesticide","note"`, EventsCSV(entities.EventMap{}))
	})
}

func TestFilenames(t *testing.T) {
	assert.Equal(t, "field-42-events.csv", CSVFilename("42"))
	assert.Equal(t, "field-42-events.xlsx", XLSXFilename("42"))
}

func TestEventsXLSX(t *testing.T) {
	events := entities.EventMap{
		"2025-01-05": {Watered: true, Note: "first watering"},
		"2025-01-08": {Fertilizer: true},
	}
	b, err := EventsXLSX(events)
	require.NoError(t, err)
	assert.NotEmpty(t, b)
	// xlsx files are zip archives
	assert.Equal(t, "PK", string(b[:2]))
}
