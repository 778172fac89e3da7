//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const postgresDSNEnv = "CATALOG_TEST_POSTGRES_DSN"

// Test groups test targets.
type Test mg.Namespace

// All runs every test with the race detector.
func (Test) All() error {
	return sh.RunV(binGo, "test", "-race", "./...")
}

// Unit runs the tests quickly: no race detector and no postgres run even
// when a DSN is configured.
func (Test) Unit() error {
	env := map[string]string{postgresDSNEnv: ""}
	return sh.RunWithV(env, binGo, "test", "./...")
}

// Postgres runs the store and service tests against the database named by
// CATALOG_TEST_POSTGRES_DSN.
func (Test) Postgres() error {
	if os.Getenv(postgresDSNEnv) == "" {
		return fmt.Errorf("%s is not set", postgresDSNEnv)
	}
	return sh.RunV(binGo, "test", "-count=1", "./internal/sqlstore/...", "./internal/catalog/...")
}
