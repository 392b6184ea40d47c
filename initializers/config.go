package initializers

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port                     string        `envconfig:"PORT" default:"8080"`
	DB_URL                   string        `envconfig:"DB_URL" default:"data/iprayust.db"`
	Secret                   string        `envconfig:"SECRET"`
	App_Version              string        `envconfig:"APP_VERSION" default:"1.0.0"`
	Cache_Expiry             time.Duration `envconfig:"CACHE_EXPIRY" default:"24h"`
	Remote_Timeout           time.Duration `envconfig:"REMOTE_TIMEOUT" default:"15s"`
	Firebase_Service_Account string        `envconfig:"FIREBASE_SERVICE_ACCOUNT_PATH"`
	Firestore_Project_ID     string        `envconfig:"FIRESTORE_PROJECT_ID"`
	Resend_API_Key           string        `envconfig:"RESEND_API_KEY"`
	Reminder_Check_Interval  time.Duration `envconfig:"REMINDER_CHECK_INTERVAL" default:"1m"`
	Evening_Reminder_Time    string        `envconfig:"EVENING_REMINDER_TIME" default:"20:00"`
}

var Cfg Config

// LoadEnv reads .env (if present) and parses the environment into Cfg.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	if err := envconfig.Process("", &Cfg); err != nil {
		log.Fatal("Failed to parse environment config: ", err)
	}

	if Cfg.Secret == "" {
		log.Fatal("SECRET must be set")
	}
}
