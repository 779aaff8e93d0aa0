package internal

import (
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// skipSystemLocale disables OS-level detection (for testing)
var skipSystemLocale = false

// detectSystemLocale returns the user's locale string such as "sv_SE.UTF-8".
// Environment variables win (LC_MONETARY is the most specific); on macOS the
// AppleLocale preference is consulted when none is set. Empty if unknown.
func detectSystemLocale() string {
	for _, envVar := range []string{"LC_MONETARY", "LC_ALL", "LANG"} {
		locale := os.Getenv(envVar)
		if locale != "" && locale != "C" && locale != "POSIX" && !strings.HasPrefix(locale, "C.") {
			return locale
		}
	}

	if !skipSystemLocale && runtime.GOOS == "darwin" {
		out, err := exec.Command("defaults", "read", "-g", "AppleLocale").Output()
		if err == nil {
			return strings.TrimSpace(string(out))
		}
	}
	return ""
}
