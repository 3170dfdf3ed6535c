// Package browser opens dictionary reference pages in the user's web
// browser as a fire-and-forget side effect.
package browser

import (
	"fmt"
	"net/url"
	"os/exec"
)

// DefaultCommand is the browser binary launched for reference tabs
const DefaultCommand = "firefox"

// ReferenceURLs returns the lookup pages opened for a word: a Google image
// search and the Wiktionary entry. The word lands in a query string on the
// first URL and in the path on the second, so each gets its own escaping.
func ReferenceURLs(word string) []string {
	return []string{
		fmt.Sprintf("https://www.google.com/search?tbm=isch&q=%s", url.QueryEscape(word)),
		fmt.Sprintf("https://en.wiktionary.org/wiki/%s", url.PathEscape(word)),
	}
}

// Open launches the browser with the given URLs as a detached process.
// The browser's outcome is never observed; a failure to even start the
// process is the only reportable error.
func Open(command string, urls ...string) error {
	if command == "" {
		command = DefaultCommand
	}
	if len(urls) == 0 {
		return nil
	}

	cmd := exec.Command(command, urls...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to launch %s: %w", command, err)
	}
	// Detach so the browser outlives the session and never turns into a
	// zombie waiting on Wait.
	return cmd.Process.Release()
}
