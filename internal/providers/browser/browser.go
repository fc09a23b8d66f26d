// Package browser opens URLs in the default system browser.
package browser

import (
	"os/exec"
	"runtime"
)

// Open launches the default browser for the given URL.
func Open(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
