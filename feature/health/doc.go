// Package health serves GET /members/health.
//
// The check pings the database, compares the live schema against the GORM
// models (the same inspection as `migrate --verify`) and confirms the photo
// bucket exists. Any failing check turns the response into a 503.
package health
