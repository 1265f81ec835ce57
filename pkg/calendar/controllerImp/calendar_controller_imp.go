package controllerImp

import (
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"croptech/entities"
	"croptech/pkg/calendar/service"
	"croptech/pkg/export"
)

type CalendarCtrl struct{ svc service.CalendarService }

func New(svc service.CalendarService) *CalendarCtrl { return &CalendarCtrl{svc} }

// Get returns the whole calendar view for a field: dates, derived
// duration, month range, the visible month grid and the event map.
// Query params planting/harvest seed the dates when nothing is saved.
func (h *CalendarCtrl) Get(c echo.Context) error {
	id := c.Param("id")
	pair := h.svc.Dates(id, c.QueryParam("planting"), c.QueryParam("harvest"))
	months := h.svc.MonthRange(id)
	idx := h.svc.Navigate(id, 0)

	resp := map[string]any{
		"dates":    pair,
		"months":   months,
		"index":    idx,
		"duration": h.svc.Duration(id),
		"events":   h.svc.Events(id),
	}
	if grid, ok := h.svc.Grid(id, idx, c.QueryParam("selected")); ok {
		resp["grid"] = grid
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *CalendarCtrl) SetDates(c echo.Context) error {
	var pair entities.DatePair
	if err := c.Bind(&pair); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	id := c.Param("id")
	saved := h.svc.SetDates(id, pair)
	return c.JSON(http.StatusOK, map[string]any{
		"dates":    saved,
		"duration": h.svc.Duration(id),
		"months":   h.svc.MonthRange(id),
	})
}

func (h *CalendarCtrl) ClearDates(c echo.Context) error {
	h.svc.ClearDates(c.Param("id"))
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *CalendarCtrl) Months(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"months": h.svc.MonthRange(c.Param("id"))})
}

func (h *CalendarCtrl) Month(c echo.Context) error {
	idx, _ := strconv.Atoi(c.Param("index"))
	grid, ok := h.svc.Grid(c.Param("id"), idx, c.QueryParam("selected"))
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{
			"message": "Set a planting date to view the calendar.",
		})
	}
	return c.JSON(http.StatusOK, grid)
}

type navReq struct {
	Delta int `json:"delta"`
}

func (h *CalendarCtrl) Navigate(c echo.Context) error {
	var req navReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	idx := h.svc.Navigate(c.Param("id"), req.Delta)
	return c.JSON(http.StatusOK, map[string]int{"index": idx})
}

type toggleReq struct {
	Flag string `json:"flag"`
}

func (h *CalendarCtrl) Toggle(c echo.Context) error {
	var req toggleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	e, err := h.svc.Toggle(c.Param("id"), c.Param("date"), req.Flag)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, e)
}

type noteReq struct {
	Note string `json:"note"`
}

func (h *CalendarCtrl) Note(c echo.Context) error {
	var req noteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	e := h.svc.SetNote(c.Param("id"), c.Param("date"), req.Note)
	return c.JSON(http.StatusOK, e)
}

// ClearEvents is destructive and irreversible, so it demands an
// explicit confirm=true from the caller.
func (h *CalendarCtrl) ClearEvents(c echo.Context) error {
	if c.QueryParam("confirm") != "true" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "confirmation required: pass confirm=true",
		})
	}
	h.svc.ClearEvents(c.Param("id"))
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *CalendarCtrl) ExportCSV(c echo.Context) error {
	id := c.Param("id")
	csv := export.EventsCSV(h.svc.Events(id))
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+export.CSVFilename(id)+`"`)
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", []byte(csv))
}

// ExportXLSX is best-effort like the CSV download; a render failure is
// logged and the response stays empty.
func (h *CalendarCtrl) ExportXLSX(c echo.Context) error {
	id := c.Param("id")
	b, err := export.EventsXLSX(h.svc.Events(id))
	if err != nil {
		log.Printf("WARN: xlsx export %s: %v", id, err)
		return c.NoContent(http.StatusNoContent)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+export.XLSXFilename(id)+`"`)
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", b)
}
