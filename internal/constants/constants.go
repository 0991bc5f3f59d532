// Package constants centralizes shared tunables so they are not scattered
// as magic numbers.
package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files. The file
	// holds credentials, so it is owner-only.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations.
	ShortHTTPTimeout = 10 * time.Second
)

// Display limits.
const (
	// DefaultLogLimit is how many container log lines the CLI fetches when
	// no limit is given.
	DefaultLogLimit = 100

	// MaxStateDisplayLength truncates channel state in table output.
	MaxStateDisplayLength = 40
)
