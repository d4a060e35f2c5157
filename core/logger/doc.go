// Package logger builds the service's zap logger.
//
// Level and encoding come from Config. Every entry carries the configured
// service name, and WithRayID adds the ray id that the rayid middleware
// stored on the request, so all entries of one request can be correlated.
//
//	log, _ := logger.New(&logger.Config{Level: "info", Service: "member-api"})
//	logger.WithRayID(log, c).Error("Statistics request failed", zap.Error(err))
package logger
