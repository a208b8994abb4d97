//go:build integration
// +build integration

package integration

import (
	"context"
	"os/exec"
	"testing"
)

func restartIssuesContainer(t *testing.T, ctx context.Context) {
	t.Helper()

	cmd := exec.CommandContext(ctx, "docker", "compose", "restart", "issues")
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("docker compose restart issues failed: %v\n%s", err, string(out))
	}
}
