//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binary = "travelspeak"

// Default target to run when none is specified
var Default = Build

// Build compiles the travelspeak binary
func Build() error {
	fmt.Println("Building", binary)
	return sh.RunV("go", "build", "-o", binary, "./cmd/travelspeak")
}

// Test runs all tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Integration runs the tests that talk to the real services
func Integration() error {
	if os.Getenv("OPENAI_API_KEY") == "" {
		return fmt.Errorf("OPENAI_API_KEY must be set for integration tests")
	}
	return sh.RunV("go", "test", "-count=1", "./internal/translation/...", "./internal/models/...")
}

// Vet runs go vet
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Install builds and installs the binary into GOPATH/bin
func Install() error {
	mg.Deps(Test)
	return sh.RunV("go", "install", "./cmd/travelspeak")
}

// Clean removes build artifacts
func Clean() error {
	return sh.Rm(binary)
}
