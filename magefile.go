//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Default target runs build
var Default = Build

// Build compiles the hanjarecall binary
func Build() error {
	fmt.Println("Building hanjarecall...")
	return sh.RunV("go", "build", "-o", "hanjarecall", "./cmd/hanjarecall")
}

// Test runs all tests
func Test() error {
	fmt.Println("Running tests...")
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Install builds and installs the binary into GOBIN
func Install() error {
	mg.Deps(Build)
	gobin := os.Getenv("GOBIN")
	if gobin == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		gobin = filepath.Join(home, "go", "bin")
	}
	if err := os.MkdirAll(gobin, 0755); err != nil {
		return err
	}
	fmt.Printf("Installing to %s...\n", gobin)
	return sh.Copy(filepath.Join(gobin, "hanjarecall"), "hanjarecall")
}

// Clean removes build artifacts
func Clean() error {
	fmt.Println("Cleaning...")
	return sh.Rm("hanjarecall")
}
