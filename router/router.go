package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	calCtrl "croptech/pkg/calendar/controller"
	"croptech/pkg/middleware"
	trkCtrl "croptech/pkg/tracker/controller"
)

func New(
	e *echo.Echo,
	jwtSecret, defaultUID string,
	tracker trkCtrl.TrackerController,
	calendar calCtrl.CalendarController,
	lookup interface {
		Reverse(echo.Context) error
		Weather(echo.Context) error
	},
	healthCtrl interface{ Health(echo.Context) error },
) *echo.Echo {
	e.Use(middleware.Session(jwtSecret, defaultUID))
	api := e.Group("")

	e.GET("/health", healthCtrl.Health)
	api.GET("/whoami", func(c echo.Context) error {
		uid, _ := c.Get("uid").(string)
		return c.JSON(http.StatusOK, map[string]string{"uid": uid})
	})

	// Field drawing workflow
	t := e.Group("/tracker")
	t.POST("/start", tracker.Start)
	t.POST("/click", tracker.Click)
	t.POST("/reset", tracker.Reset)
	t.POST("/cancel", tracker.Cancel)
	t.POST("/commit", tracker.Commit)
	t.GET("/snapshot", tracker.Snapshot)
	t.GET("/fields", tracker.Fields)
	t.POST("/load", tracker.Load)
	t.GET("/fields/:id/focus", tracker.Focus)

	api.GET("/geocode", tracker.Search)
	api.GET("/geocode/reverse", lookup.Reverse)
	api.GET("/fields/:id/weather", lookup.Weather)

	// Calendar & event log
	g := e.Group("/fields/:id/calendar")
	g.GET("", calendar.Get)
	g.PUT("/dates", calendar.SetDates)
	g.DELETE("/dates", calendar.ClearDates)
	g.GET("/months", calendar.Months)
	g.GET("/months/:index", calendar.Month)
	g.POST("/navigate", calendar.Navigate)
	g.POST("/events/:date/toggle", calendar.Toggle)
	g.PUT("/events/:date/note", calendar.Note)
	g.DELETE("/events", calendar.ClearEvents)
	g.GET("/export.csv", calendar.ExportCSV)
	g.GET("/export.xlsx", calendar.ExportXLSX)

	return e
}
