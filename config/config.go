package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port        string
	Timezone    string
	DBPath      string
	APIBase     string
	GeocodeBase string
	WeatherBase string
	JWTSecret   string
	DefaultUID  string
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	cfg := AppConfig{
		Port:        get("PORT", "8080"),
		Timezone:    get("TZ", "Asia/Manila"),
		DBPath:      get("DB_PATH", "croptech.db"),
		APIBase:     get("API_BASE", "http://localhost:5001/api"),
		GeocodeBase: get("GEOCODE_BASE", "https://nominatim.openstreetmap.org"),
		WeatherBase: get("WEATHER_BASE", "https://api.open-meteo.com"),
		JWTSecret:   get("JWT_SECRET", ""),
		DefaultUID:  get("DEFAULT_UID", "U_DEV_DEFAULT"),
	}
	log.Printf("[cfg] port=%s db=%s api=%s", cfg.Port, cfg.DBPath, cfg.APIBase)
	return cfg
}
