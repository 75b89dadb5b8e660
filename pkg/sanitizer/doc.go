// Package sanitizer normalizes user supplied text before it is validated or
// stored. Every function is pure and safe to apply more than once.
package sanitizer
