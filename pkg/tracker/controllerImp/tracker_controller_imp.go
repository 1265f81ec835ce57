package controllerImp

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"croptech/pkg/fieldapi"
	"croptech/pkg/geocode"
	"croptech/pkg/tracker/service"
)

type TrackerCtrl struct{ svc service.TrackerService }

func New(svc service.TrackerService) *TrackerCtrl { return &TrackerCtrl{svc} }

func sess(c echo.Context) fieldapi.Session {
	uid, _ := c.Get("uid").(string)
	token, _ := c.Get("token").(string)
	return fieldapi.Session{UserID: uid, Token: token}
}

func (h *TrackerCtrl) Start(c echo.Context) error {
	uid := c.Get("uid").(string)
	h.svc.Start(uid)
	return c.JSON(http.StatusOK, h.svc.Snapshot(uid))
}

type clickReq struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (h *TrackerCtrl) Click(c echo.Context) error {
	uid := c.Get("uid").(string)
	var req clickReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	points := h.svc.Click(uid, req.Lat, req.Lon)
	resp := map[string]any{"points": points, "count": len(points)}
	if len(points) < 4 {
		resp["prompt"] = fmt.Sprintf("Click on the map to place point %d of 4", len(points)+1)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *TrackerCtrl) Reset(c echo.Context) error {
	uid := c.Get("uid").(string)
	h.svc.Reset(uid)
	return c.JSON(http.StatusOK, h.svc.Snapshot(uid))
}

func (h *TrackerCtrl) Cancel(c echo.Context) error {
	uid := c.Get("uid").(string)
	h.svc.Cancel(uid)
	return c.JSON(http.StatusOK, h.svc.Snapshot(uid))
}

type commitReq struct {
	Crop string `json:"crop"`
}

func (h *TrackerCtrl) Commit(c echo.Context) error {
	var req commitReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	f, err := h.svc.Commit(c.Request().Context(), sess(c), req.Crop)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, f)
}

func (h *TrackerCtrl) Fields(c echo.Context) error {
	uid := c.Get("uid").(string)
	return c.JSON(http.StatusOK, map[string]any{"fields": h.svc.Fields(uid)})
}

func (h *TrackerCtrl) Load(c echo.Context) error {
	h.svc.LoadSaved(c.Request().Context(), sess(c))
	uid := c.Get("uid").(string)
	return c.JSON(http.StatusOK, map[string]any{"fields": h.svc.Fields(uid)})
}

func (h *TrackerCtrl) Snapshot(c echo.Context) error {
	uid := c.Get("uid").(string)
	return c.JSON(http.StatusOK, h.svc.Snapshot(uid))
}

func (h *TrackerCtrl) Search(c echo.Context) error {
	uid := c.Get("uid").(string)
	res, err := h.svc.Search(c.Request().Context(), uid, c.QueryParam("q"))
	if errors.Is(err, geocode.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{
			"message": "Address not found. Please try a different location.",
		})
	}
	if err != nil {
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "geocoding unavailable"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"lat":          res.Lat,
		"lon":          res.Lon,
		"display_name": res.DisplayName,
		"zoom":         13,
	})
}

func (h *TrackerCtrl) Focus(c echo.Context) error {
	uid := c.Get("uid").(string)
	focus, ok := h.svc.Focus(uid, c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	}
	return c.JSON(http.StatusOK, focus)
}
