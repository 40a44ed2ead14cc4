package build

import "fmt"

// Version is the release version stamped into the user agent.
const Version = "0.1.0"

// UserAgent identifies the scanner on every outbound request.
func UserAgent() string {
	return fmt.Sprintf("Rinzler/%s (https://github.com/trapdoorsec/rinzler)", Version)
}
