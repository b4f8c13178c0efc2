package state

import "strings"

// FooterText returns the footer content: the error or status line, then help.
func FooterText(err error, statusMessage, helpText string) string {
	status := strings.TrimSpace(statusMessage)
	if err != nil {
		status = "Error: " + err.Error()
	}
	if status == "" {
		return helpText
	}
	if helpText == "" {
		return status
	}
	return status + "\n" + helpText
}
