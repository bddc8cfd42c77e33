package registry

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWriteGetRoundtrip(t *testing.T) {
	store := NewStore(t.TempDir())

	submitted := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	in := &JobRecord{
		ExternalID:  "4242",
		JobName:     "smk_align_ab12cd34",
		Rule:        "align",
		JobID:       7,
		State:       JobStateSubmitted,
		LogFile:     "/logs/rule_align/unique/7.log",
		WorkDir:     "/work",
		SubmittedAt: submitted,
	}
	if err := store.Write(in); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := store.Get("4242")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ExternalID != "4242" || got.Rule != "align" || got.JobID != 7 {
		t.Fatalf("unexpected record: %+v", got)
	}
	if got.State != JobStateSubmitted {
		t.Fatalf("state = %q, want %q", got.State, JobStateSubmitted)
	}
	if !got.SubmittedAt.Equal(submitted) {
		t.Fatalf("submitted_at = %v, want %v", got.SubmittedAt, submitted)
	}
	if got.EndedAt != nil {
		t.Fatalf("ended_at should be nil, got %v", got.EndedAt)
	}
}

func TestWriteRequiresExternalID(t *testing.T) {
	store := NewStore(t.TempDir())
	if err := store.Write(&JobRecord{Rule: "align"}); err == nil {
		t.Fatal("expected error for missing external_id")
	}
	if err := store.Write(nil); err == nil {
		t.Fatal("expected error for nil record")
	}
}

func TestWriteOverwritesAtomically(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root)

	rec := &JobRecord{ExternalID: "100", Rule: "a", State: JobStateSubmitted, SubmittedAt: time.Now()}
	if err := store.Write(rec); err != nil {
		t.Fatalf("first write: %v", err)
	}

	ended := time.Now()
	rec.State = JobStateSucceeded
	rec.EndedAt = &ended
	if err := store.Write(rec); err != nil {
		t.Fatalf("second write: %v", err)
	}

	got, err := store.Get("100")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.State != JobStateSucceeded {
		t.Fatalf("state = %q, want %q", got.State, JobStateSucceeded)
	}

	// No temp files may survive a completed write.
	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	for _, e := range entries {
		if e.Name() != "100.json" {
			t.Fatalf("leftover file in registry root: %s", e.Name())
		}
	}
}

func TestGetMissingRecord(t *testing.T) {
	store := NewStore(t.TempDir())
	if _, err := store.Get("999"); !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestListNewestFirst(t *testing.T) {
	store := NewStore(t.TempDir())

	base := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"100", "200", "300"} {
		rec := &JobRecord{
			ExternalID:  id,
			Rule:        "r",
			State:       JobStateSubmitted,
			SubmittedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := store.Write(rec); err != nil {
			t.Fatalf("write %s: %v", id, err)
		}
	}

	records, err := store.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("len = %d, want 3", len(records))
	}
	if records[0].ExternalID != "300" || records[2].ExternalID != "100" {
		t.Fatalf("unexpected order: %s, %s, %s",
			records[0].ExternalID, records[1].ExternalID, records[2].ExternalID)
	}
}

func TestListSkipsForeignFiles(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root)

	if err := store.Write(&JobRecord{ExternalID: "100", State: JobStateSubmitted, SubmittedAt: time.Now()}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("hi"), 0644); err != nil {
		t.Fatalf("write foreign file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "broken.json"), []byte("{"), 0644); err != nil {
		t.Fatalf("write broken file: %v", err)
	}

	records, err := store.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 || records[0].ExternalID != "100" {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestListActiveFiltersTerminal(t *testing.T) {
	store := NewStore(t.TempDir())

	now := time.Now()
	states := map[string]JobState{
		"100": JobStateSubmitted,
		"200": JobStateSucceeded,
		"300": JobStateFailed,
	}
	for id, state := range states {
		if err := store.Write(&JobRecord{ExternalID: id, State: state, SubmittedAt: now}); err != nil {
			t.Fatalf("write %s: %v", id, err)
		}
	}

	active, err := store.ListActive()
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 1 || active[0].ExternalID != "100" {
		t.Fatalf("unexpected active set: %+v", active)
	}
}

func TestJobStateTerminal(t *testing.T) {
	if JobStateSubmitted.Terminal() {
		t.Fatal("submitted must not be terminal")
	}
	if !JobStateSucceeded.Terminal() || !JobStateFailed.Terminal() {
		t.Fatal("succeeded and failed must be terminal")
	}
}
