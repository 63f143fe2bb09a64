package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Debug                    bool   `envconfig:"debug"`
	Port                     int    `envconfig:"port" default:"8080"`
	Env                      string `envconfig:"env"`
	BaseUrl                  string `envconfig:"base_url"`
	PostgresHost             string `envconfig:"postgres_host"`
	PostgresUser             string `envconfig:"postgres_user"`
	PostgresDB               string `envconfig:"postgres_db"`
	PostgresPort             int    `envconfig:"postgres_port"`
	PostgresPassword         string `envconfig:"postgres_password"`
	JWTSecret                string `envconfig:"jwt_secret"`
	RedisAddr                string `envconfig:"redis_addr"`
	RedisPassword            string `envconfig:"redis_password"`
	PageCacheTTLSeconds      int    `envconfig:"page_cache_ttl_seconds" default:"20"`
	MediaRoot                string `envconfig:"media_root" default:"./media"`
	AwsBucket                string `envconfig:"aws_bucket"`
	AwsRegion                string `envconfig:"aws_region"`
	AccessControlAllowOrigin string `envconfig:"access_control_allow_origin"`
}

func Load() (*Config, error) {
	env := os.Getenv("GIN_MODE")
	if env != "release" {
		if err := godotenv.Load("./.env"); err != nil {
			log.Printf("couldn't load env vars: %v", err)
		}
	}

	c := &Config{}
	err := envconfig.Process("blogx", c)
	if err != nil {
		return nil, err
	}
	return c, nil
}
