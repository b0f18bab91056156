//go:build mage

// Package main provides build targets for luxedir using Mage.
//
// Usage:
//
//	mage build          Compile the luxedir binary to bin/
//	mage test           Run all tests
//	mage cover          Run tests with a coverage profile in bin/
//	mage lint           Run golangci-lint
//	mage clean          Remove build artifacts
//	mage install        Install luxedir to GOPATH/bin
//	mage demo           Initialize a demo directory under bin/demo
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "luxedir"
	binaryDir  = "bin"
	cmdDir     = "./cmd/luxedir"
	versionVar = "github.com/mesh-intelligence/luxedir/internal/cli.Version"
)

// ldflags stamps LUXEDIR_VERSION into the binary when set; otherwise the
// compiled-in default stays.
func ldflags() string {
	if v := os.Getenv("LUXEDIR_VERSION"); v != "" {
		return "-X " + versionVar + "=" + v
	}
	return ""
}

// Build compiles the luxedir binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-ldflags", ldflags(), "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Test runs every package test.
func Test() error {
	return sh.RunV(binGo, "test", "./...")
}

// Cover runs the tests and writes bin/coverage.out.
func Cover() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	profile := filepath.Join(binaryDir, "coverage.out")
	if err := sh.RunV(binGo, "test", "-coverprofile", profile, "./..."); err != nil {
		return err
	}
	return sh.RunV(binGo, "tool", "cover", "-func", profile)
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}

// Demo builds the binary and initializes a seeded directory in bin/demo.
func Demo() error {
	mg.Deps(Build)
	demo := filepath.Join(binaryDir, "demo")
	bin := filepath.Join(binaryDir, binaryName)
	return sh.RunV(bin, "--config-dir", filepath.Join(demo, "config"), "--data-dir", filepath.Join(demo, "data"), "init")
}
