// Package config provides configuration loading, merging, and validation
// facilities for the diary client and the record service.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// The entry points are [GetClientConfig] for the replicating client and
// [GetServerConfig] for the record service. Both fill in defaults for
// omitted tuning values and validate the result.
package config
