//go:build mage

package main

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

// runBinary executes the built CLI with the given arguments.
func runBinary(args ...string) error {
	cmd := exec.Command(filepath.Join(binDir, binName), args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Run builds the CLI and processes every PDF in the source directory.
func Run() error {
	mg.Deps(Build, Init)
	return runBinary("run")
}

// Catalog builds the CLI and ingests the parsed records into the catalog.
func Catalog() error {
	mg.Deps(Build)
	return runBinary("catalog", "store")
}

// Calendar builds the CLI and rebuilds the weekly calendar from the
// combined course listing.
func Calendar() error {
	mg.Deps(Build)
	return runBinary("calendar")
}
