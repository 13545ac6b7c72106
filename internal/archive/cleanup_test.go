package archive

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestCleanupRetentionWindow(t *testing.T) {
	a := newTestArchiver(t)
	day := 24 * time.Hour
	keep := a.addArchive(t, "recent.zip", 10*day)
	a.addArchive(t, "old.zip", 40*day)
	a.addArchive(t, "ancient.zip", 90*day)

	rep, err := a.Cleanup(context.Background(), 30)
	if err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if rep.Deleted != 2 {
		t.Fatalf("deleted %d, want 2", rep.Deleted)
	}
	if _, err := os.Stat(keep); err != nil {
		t.Fatalf("10-day archive must remain: %v", err)
	}
	if got := countFiles(t, a.ArchiveDir()); got != 1 {
		t.Fatalf("want 1 survivor, got %d", got)
	}
}

func TestCleanupBoundaryIsExclusive(t *testing.T) {
	a := newTestArchiver(t)
	day := 24 * time.Hour
	exact := a.addArchive(t, "exact.zip", 30*day)
	a.addArchive(t, "just-over.zip", 30*day+time.Second)

	rep, err := a.Cleanup(context.Background(), 30)
	if err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if rep.Deleted != 1 {
		t.Fatalf("deleted %d, want 1", rep.Deleted)
	}
	if _, err := os.Stat(exact); err != nil {
		t.Fatalf("archive exactly at the boundary must be retained: %v", err)
	}
}

func TestCleanupIdempotent(t *testing.T) {
	a := newTestArchiver(t)
	day := 24 * time.Hour
	a.addArchive(t, "old.zip", 45*day)

	first, err := a.Cleanup(context.Background(), 30)
	if err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if first.Deleted != 1 {
		t.Fatalf("first pass deleted %d, want 1", first.Deleted)
	}
	second, err := a.Cleanup(context.Background(), 30)
	if err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if second.Deleted != 0 {
		t.Fatalf("second pass deleted %d, want 0", second.Deleted)
	}
}

func TestCleanupRejectsNegativeWindow(t *testing.T) {
	a := newTestArchiver(t)
	if _, err := a.Cleanup(context.Background(), -1); err == nil {
		t.Fatalf("expected error for negative window")
	}
}

func TestCleanupEmptyDir(t *testing.T) {
	a := newTestArchiver(t)
	rep, err := a.Cleanup(context.Background(), 30)
	if err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if rep.Deleted != 0 {
		t.Fatalf("deleted %d in empty dir", rep.Deleted)
	}
}
