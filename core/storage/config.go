package storage

import (
	"strings"
	"time"
)

// Config holds configuration for the storage provider.
type Config struct {
	// Endpoint is the URL of the storage service.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket is the name of the bucket member photos are stored in.
	Bucket string `mapstructure:"bucket" default:"member-photos"`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// PhotoURLTemplate builds public photo URLs; <key> is replaced by the object key.
	PhotoURLTemplate string `mapstructure:"photo_url_template" default:"http://localhost:9000/member-photos/<key>"`
}

// PhotoURL renders the public URL of an uploaded object.
func (c Config) PhotoURL(key string) string {
	return strings.ReplaceAll(c.PhotoURLTemplate, "<key>", key)
}

// Timeout returns TimeoutSeconds as a duration, defaulting to 30s.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
