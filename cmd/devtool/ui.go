package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

const (
	colorGreen  = "\033[0;32m"
	colorRed    = "\033[0;31m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
	colorReset  = "\033[0m"
)

// UI helpers

func PrintInfo(format string, a ...interface{}) {
	fmt.Printf(colorBlue+"ℹ "+format+colorReset+"\n", a...)
}

func PrintSuccess(format string, a ...interface{}) {
	fmt.Printf(colorGreen+"✓ "+format+colorReset+"\n", a...)
}

func PrintWarning(format string, a ...interface{}) {
	fmt.Printf(colorYellow+"⚠ "+format+colorReset+"\n", a...)
}

func PrintError(format string, a ...interface{}) {
	fmt.Printf(colorRed+"✗ "+format+colorReset+"\n", a...)
}

func PrintHeader(title string) {
	fmt.Printf("\n"+colorYellow+"=== %s ==="+colorReset+"\n", title)
}

// confirm asks for an explicit "yes" before a destructive operation
func confirm(prompt string) bool {
	fmt.Printf(colorYellow+"%s (type '%s' to continue): "+colorReset, prompt, confirmYes)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(line) == confirmYes
}

// redactPassword hides the password part of a postgres URL
func redactPassword(dbURL string) string {
	schemeEnd := strings.Index(dbURL, "://")
	at := strings.LastIndex(dbURL, "@")
	if schemeEnd < 0 || at < 0 {
		return dbURL
	}
	creds := dbURL[schemeEnd+3 : at]
	colon := strings.Index(creds, ":")
	if colon < 0 {
		return dbURL
	}
	return dbURL[:schemeEnd+3] + creds[:colon] + ":****" + dbURL[at:]
}
