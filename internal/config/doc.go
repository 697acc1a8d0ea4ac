// Package config provides configuration loading, merging, and validation
// facilities for the replsync client and the replica server.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// The main entry points are [GetClientConfig] and [GetServerConfig]. Flags are
// registered on a pflag.FlagSet with [BindClientFlags] or [BindServerFlags]
// before the set is parsed.
package config
