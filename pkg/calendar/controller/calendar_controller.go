package controller

import "github.com/labstack/echo/v4"

type CalendarController interface {
	Get(c echo.Context) error
	SetDates(c echo.Context) error
	ClearDates(c echo.Context) error
	Months(c echo.Context) error
	Month(c echo.Context) error
	Navigate(c echo.Context) error
	Toggle(c echo.Context) error
	Note(c echo.Context) error
	ClearEvents(c echo.Context) error
	ExportCSV(c echo.Context) error
	ExportXLSX(c echo.Context) error
}
