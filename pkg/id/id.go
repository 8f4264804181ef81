package id

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// ID returns a stable ID based on the parts passed in. The same parts always
// produce the same ID and it is always 16 hexadecimal characters.
func ID(parts ...string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(strings.Join(parts, "\n")))
}
