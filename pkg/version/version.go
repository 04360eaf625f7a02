// Package version records build identification stamped at link time.
package version

// Number is the release version of the binary.
var Number = "dev"

// GitHash is the Git commit the binary was built from.
var GitHash = "<unknown>"

// BuildDate is the UTC timestamp of the build.
var BuildDate = "<unknown>"
