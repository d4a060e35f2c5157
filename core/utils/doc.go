// Package utils provides shared helpers for the member API: loose type
// conversion of token claims, epoch-millisecond timestamps, date parsing and
// comma separated query parameter parsing.
package utils
