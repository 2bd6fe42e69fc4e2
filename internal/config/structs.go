package config

import (
	"time"

	"github.com/signalfire/auto-featured/internal/logger"
)

// Session settings.
type Session struct {
	ExpiryTime time.Duration
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	Media     Media
	Content   Content
	Import    Import
}

// Webserver implement webserver settings.
type Webserver struct {
	BrowseStatic   bool    // enable static file browsing (for development purposes only)
	DisableRecover bool    // disable recover middleware
	Domain         string  // domain name of the default site
	Port           int     // listening port for the webserver
	ShutDownTime   int     // wait time for shutdown
	URL            string  // base url for the webserver
	Session        Session // session settings
	MetricsPath    string  // prometheus scrape path, empty disables it
}

// Media implements the media library settings.
type Media struct {
	// BaseURL is the public URL prefix every uploaded file lives under.
	// Image references below it are resolved back to media ids.
	BaseURL       string
	Driver        string // local or s3
	Path          string // root folder for the local driver
	MaxUploadSize int    // bytes
	AllowedTypes  []string
	S3            S3
}

// S3 holds the object storage settings for the s3 media driver.
type S3 struct {
	Endpoint     string
	Region       string
	Bucket       string
	AccessKey    string
	SecretKey    string
	UsePathStyle bool
}

// ContentType declares a custom content type next to the built-in post and page.
type ContentType struct {
	Name   string
	Label  string
	Public bool
}

// Content holds the content store settings.
type Content struct {
	Revisions bool // store a revision snapshot on every canonical save
	Types     []ContentType
}

// Import holds the feed importer settings.
type Import struct {
	UserAgent string
	Timeout   time.Duration
	PostType  string
}
