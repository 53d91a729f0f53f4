package main

import (
	"context"
	"strings"
	"testing"
)

func TestRunRequiresCommand(t *testing.T) {
	if err := run(context.Background(), nil); err == nil {
		t.Fatal("expected usage error for missing command")
	}
	err := run(context.Background(), []string{"bogus"})
	if err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestRenderCommandValidation(t *testing.T) {
	ctx := context.Background()

	if err := run(ctx, []string{"render"}); err == nil {
		t.Fatal("expected error for missing flags")
	}
	err := run(ctx, []string{"render", "-sequence", "HPPH", "-encoding", "R"})
	if err == nil || !strings.Contains(err.Error(), "does not match") {
		t.Fatalf("expected encoding length error, got %v", err)
	}
	err = run(ctx, []string{"render", "-sequence", "HPHPPH", "-encoding", "LLLL"})
	if err == nil || !strings.Contains(err.Error(), "self-intersects") {
		t.Fatalf("expected self-intersection error, got %v", err)
	}
	if err := run(ctx, []string{"render", "-sequence", "HPPH", "-encoding", "RR"}); err != nil {
		t.Fatalf("render of valid folding failed: %v", err)
	}
}

func TestRunCommandRequiresThresholdForRawSequences(t *testing.T) {
	err := run(context.Background(), []string{"run", "-sequence", "HPPHHPPH", "-pop", "5", "-max-evals", "100"})
	if err == nil || !strings.Contains(err.Error(), "threshold") {
		t.Fatalf("expected threshold requirement, got %v", err)
	}
}

func TestRunCommandSmallEndToEnd(t *testing.T) {
	err := run(context.Background(), []string{
		"run",
		"-sequence", "hp20",
		"-pop", "15",
		"-mut", "0.05",
		"-cross", "0.85",
		"-max-evals", "3000",
		"-seed", "11",
		"-store", "memory",
		"-quiet",
	})
	if err != nil {
		t.Fatalf("end-to-end run failed: %v", err)
	}
}
