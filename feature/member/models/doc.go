// Package models defines the GORM models of member profiles.
package models
