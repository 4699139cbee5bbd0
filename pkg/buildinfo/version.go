// Package buildinfo holds the version stamped into the qrsheet binary.
//
// The variables are overridden at link time:
//
//	go build -ldflags "-X github.com/matzehuels/qrsheet/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/qrsheet/pkg/buildinfo.Commit=$(git rev-parse --short HEAD)"
package buildinfo

import "fmt"

// Name is the application name used in generated documents.
const Name = "qrsheet"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Creator identifies the application in PDF metadata, e.g. "qrsheet v0.3.0".
func Creator() string {
	return Name + " " + Version
}

// String returns the multi-line build description.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s (%s, built %s)\n", Version, Commit, Date)
}
