package config

import "github.com/kelseyhightower/envconfig"

type Config struct {
	Port string `envconfig:"PORT" default:"8080"`

	// Either a full mysql:// URL / DSN, or the discrete DB_* fields below.
	MySQLURL string `envconfig:"MYSQL_URL"`
	DBUser   string `envconfig:"DB_USER" default:"root"`
	DBPass   string `envconfig:"DB_PASS" default:""`
	DBHost   string `envconfig:"DB_HOST" default:"127.0.0.1"`
	DBPort   string `envconfig:"DB_PORT" default:"3306"`
	DBName   string `envconfig:"DB_NAME" default:"meetingroom_db"`

	CORSOrigins string `envconfig:"CORS_ORIGINS"`
	SeedDemo    bool   `envconfig:"SEED_DEMO_DATA" default:"true"`
}

func Load() (Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	return c, err
}
