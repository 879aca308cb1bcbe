package main

import (
	"time"

	"github.com/dmitrymomot/actionproxy/integration/redisaction"
)

type Config struct {
	AppName string `env:"APP_NAME" envDefault:"proxysample"`

	GithubBaseURL string `env:"GITHUB_BASE_URL" envDefault:"https://api.github.com"`
	GithubUser    string `env:"GITHUB_USER" envDefault:"techery"`
	XkcdBaseURL   string `env:"XKCD_BASE_URL" envDefault:"https://xkcd.com"`

	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"10s"`

	DispatchWorkers int `env:"DISPATCH_WORKERS" envDefault:"4"`
	DispatchBuffer  int `env:"DISPATCH_BUFFER" envDefault:"16"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	MetricsAddr string `env:"METRICS_ADDR"`

	Redis redisaction.Config
}
