package controllerImp

import (
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"croptech/pkg/geocode"
	trackerSvc "croptech/pkg/tracker/service"
	"croptech/pkg/weather"
)

// LookupCtrl serves the decorative field-detail lookups: reverse
// geocoding and current weather. Both degrade to nulls instead of
// failing the page.
type LookupCtrl struct {
	geo     *geocode.Client
	wx      *weather.Client
	tracker trackerSvc.TrackerService
}

func New(geo *geocode.Client, wx *weather.Client, tracker trackerSvc.TrackerService) *LookupCtrl {
	return &LookupCtrl{geo: geo, wx: wx, tracker: tracker}
}

func (h *LookupCtrl) Reverse(c echo.Context) error {
	lat, err1 := strconv.ParseFloat(c.QueryParam("lat"), 64)
	lon, err2 := strconv.ParseFloat(c.QueryParam("lon"), 64)
	if err1 != nil || err2 != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "lat and lon required"})
	}
	name, err := h.geo.Reverse(c.Request().Context(), lat, lon)
	if err != nil {
		log.Printf("WARN: reverse geocode: %v", err)
		return c.JSON(http.StatusOK, map[string]any{"display_name": nil})
	}
	return c.JSON(http.StatusOK, map[string]any{"display_name": name})
}

// Weather reports current conditions at a field's center. Explicit
// lat/lon query params override the saved center.
func (h *LookupCtrl) Weather(c echo.Context) error {
	lat, err1 := strconv.ParseFloat(c.QueryParam("lat"), 64)
	lon, err2 := strconv.ParseFloat(c.QueryParam("lon"), 64)
	if err1 != nil || err2 != nil {
		uid, _ := c.Get("uid").(string)
		focus, ok := h.tracker.Focus(uid, c.Param("id"))
		if !ok {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
		}
		lat, lon = focus.Center.Lat, focus.Center.Lon
	}
	cur, err := h.wx.Current(c.Request().Context(), lat, lon)
	if err != nil {
		log.Printf("WARN: weather fetch: %v", err)
		return c.JSON(http.StatusOK, map[string]any{"weather": nil, "message": "weather unavailable"})
	}
	return c.JSON(http.StatusOK, map[string]any{"weather": cur})
}
