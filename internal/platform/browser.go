// SPDX-License-Identifier: Apache-2.0

package platform

import "runtime"

func goos() string {
	return runtime.GOOS
}

// BrowserCommand returns the command that opens url in the host's default
// browser. Inside WSL the Windows side owns the browser, so the launch is
// delegated to powershell.exe.
func BrowserCommand(h Host, url string) (string, []string) {
	switch {
	case h.OS == "darwin":
		return "open", []string{url}
	case h.OS == "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	case h.WSL:
		return "powershell.exe", []string{"-NoProfile", "-Command", "Start-Process '" + url + "'"}
	default:
		return "xdg-open", []string{url}
	}
}
