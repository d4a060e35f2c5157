// Package metrics provides Prometheus metrics for the member API.
//
// A Manager is constructed once at startup and passed to the components that
// record into it: the HTTP middleware and the statistics services, which
// count reconciliation actions per collection. Handler exposes the registry
// for scraping.
package metrics
