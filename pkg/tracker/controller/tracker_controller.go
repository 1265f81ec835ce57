package controller

import "github.com/labstack/echo/v4"

type TrackerController interface {
	Start(c echo.Context) error
	Click(c echo.Context) error
	Reset(c echo.Context) error
	Cancel(c echo.Context) error
	Commit(c echo.Context) error
	Fields(c echo.Context) error
	Load(c echo.Context) error
	Snapshot(c echo.Context) error
	Search(c echo.Context) error
	Focus(c echo.Context) error
}
