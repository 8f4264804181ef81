package version

import (
	"fmt"
	"io"
)

// Version number set by the build
var Version = ""

// Commit id set by the build
var Commit = ""

// PrintVersion writes the build information to w
func PrintVersion(w io.Writer) {
	if len(Version) > 0 {
		fmt.Fprintf(w, "Version: %v\n", Version)

		if len(Commit) > 0 {
			fmt.Fprintf(w, "Commit: %v\n", Commit)
		}
	} else {
		fmt.Fprintln(w, "Version information not available")
	}
}
