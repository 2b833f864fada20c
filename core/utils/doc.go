// Package utils provides strict conversions from loosely typed wire values
// (as decoded from vendor JSON) to Go types. Every conversion reports an error
// instead of silently falling back to a zero value.
package utils
