// Package validation decodes and validates request payloads.
//
// Decoding is strict: unknown fields and mistyped values are rejected before
// struct validation runs. Struct rules use go-playground/validator tags plus a
// `date` tag accepting calendar dates and RFC3339 timestamps. Every failure is
// an apperror BadRequest whose details name the offending json field, e.g.
// "challengeId is required" or "newRating must be a number".
package validation
