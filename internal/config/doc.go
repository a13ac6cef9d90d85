// Package config loads and validates the optional dcmsort configuration
// file and carries the immutable per-run options assembled from CLI flags.
package config
