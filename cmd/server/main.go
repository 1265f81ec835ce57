package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"croptech/config"
	"croptech/database"
	"croptech/router"

	// Calendar
	calCtrlImp "croptech/pkg/calendar/controllerImp"
	calSvcImp "croptech/pkg/calendar/serviceImp"

	// Tracker
	trkCtrlImp "croptech/pkg/tracker/controllerImp"
	trkSvcImp "croptech/pkg/tracker/serviceImp"

	// Store
	storeRepoImp "croptech/pkg/store/repositoryImp"

	// External services
	"croptech/pkg/fieldapi"
	"croptech/pkg/geocode"
	"croptech/pkg/weather"

	// Lookups + Health
	healthCtrlImp "croptech/pkg/health/controllerImp"
	lookupCtrlImp "croptech/pkg/lookup/controllerImp"
)

func main() {
	// 1) Config
	cfg := config.Load()

	// 2) DB (sqlite) + automigrate
	db := database.OpenSQLite(cfg.DBPath)

	// 3) Echo
	e := echo.New()
	e.Use(echoMiddleware.Recover())

	// 4) External clients
	api := fieldapi.New(cfg.APIBase)
	geo := geocode.New(cfg.GeocodeBase)
	wx := weather.New(cfg.WeatherBase)

	// 5) Services
	store := storeRepoImp.New(db)
	trackerSvc := trkSvcImp.New(api, geo)
	calendarSvc := calSvcImp.New(store)

	// 6) Controllers
	trackerCtrl := trkCtrlImp.New(trackerSvc)
	calendarCtrl := calCtrlImp.New(calendarSvc)
	lookupCtrl := lookupCtrlImp.New(geo, wx, trackerSvc)
	hCtrl := healthCtrlImp.NewHealthCtrl(db, store)

	// 7) Router
	r := router.New(
		e,
		cfg.JWTSecret,
		cfg.DefaultUID,
		trackerCtrl,
		calendarCtrl,
		lookupCtrl,
		hCtrl,
	)

	// 8) Start
	log.Printf("listening on :%s", cfg.Port)
	if err := r.Start(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
