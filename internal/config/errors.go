package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrUnknownGormEngine error if config db.gormEngine is none of mysql, postgres or sqlite.
	ErrUnknownGormEngine = errors.New("toml config db.gormEngine must be mysql, postgres or sqlite")

	// ErrEmptyMediaBaseURL error if config media.baseURL is empty.
	ErrEmptyMediaBaseURL = errors.New("toml config media.baseURL can not be empty")

	// ErrUnknownMediaDriver error if config media.driver is neither local nor s3.
	ErrUnknownMediaDriver = errors.New("toml config media.driver must be local or s3")
)
