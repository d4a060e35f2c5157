// Package statistics serves member statistics, rating history and rating
// distributions.
//
// Writes run in a single transaction per request. Creation writes the record
// and every nested block; updates change blocks in place and reconcile item
// collections through core/reconcile: items with an id are updated, items
// without one are inserted, and stored items missing from the payload are
// deleted. Collections left out of a payload are not touched.
//
// Reads are scoped by group. The public record is reported under the
// configured public group id; private records are visible only to callers
// that manage the member.
package statistics
