//go:build integration

// Package containers starts the backing services used by integration suites.
// Every container is terminated through t.Cleanup.
package containers

import (
	"context"
	"testing"

	"github.com/testcontainers/testcontainers-go"
)

func terminateOnCleanup(t *testing.T, c testcontainers.Container) {
	t.Helper()
	t.Cleanup(func() {
		if err := c.Terminate(context.Background()); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})
}
