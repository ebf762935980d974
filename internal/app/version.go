package app

import (
	_ "embed"
	"strings"
)

//go:embed VERSION.txt
var versionFile string

// Version is the release version shared by every command
var Version = strings.TrimSpace(versionFile)

// WantsVersion reports whether args ask for the version before flag parsing
func WantsVersion(args []string) bool {
	for _, arg := range args {
		if arg == "--version" || arg == "-version" || arg == "-v" {
			return true
		}
	}
	return false
}
