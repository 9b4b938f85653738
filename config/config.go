package config

import (
	"github.com/eventum-app/eventum/internal/util"
)

type Config struct {
	DatabaseDSN string
	Addr        string
	CacheURL    string
	MQURL       string
}

func LoadConfig() (*Config, error) {
	if err := util.LoadEnv(); err != nil {
		return nil, err
	}
	return &Config{
		DatabaseDSN: util.Getenv("DATABASE_DSN", ""),
		Addr:        util.Getenv("ADDR", ":8080"),
		CacheURL:    util.Getenv("CACHE_URL", ""),
		MQURL:       util.Getenv("RABBIT_MQ_URL", ""),
	}, nil
}
