// ABOUTME: Tests for the JSONL operation journal
// ABOUTME: Covers engine subscription, record reading, malformed lines and latest-session lookup

package journal

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mauromedda/circles-go/internal/board"
	"github.com/mauromedda/circles-go/internal/point"
	"github.com/mauromedda/circles-go/internal/store"
)

func TestWriter_RecordsEngineChanges(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	w, err := NewWriter(dir, "memory")
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	e := board.New(store.NewMemory())
	unsub := e.Subscribe(w.Record)

	e.AddPoint(point.At(1, 2))
	e.Undo()
	e.Redo()
	e.Undo()
	e.Undo() // no-op, not journaled
	e.Reset()
	unsub()
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	records, err := ReadRecords(dir, w.ID())
	if err != nil {
		t.Fatalf("ReadRecords: %v", err)
	}

	var types []RecordType
	var ops []board.Op
	for _, r := range records {
		types = append(types, r.Type)
		if r.Type == RecordOp {
			var op OpData
			if err := json.Unmarshal(r.Data, &op); err != nil {
				t.Fatal(err)
			}
			ops = append(ops, op.Op)
		}
	}

	if types[0] != RecordSessionStart || types[len(types)-1] != RecordSessionEnd {
		t.Errorf("record types = %v", types)
	}
	want := []board.Op{board.OpAdd, board.OpUndo, board.OpRedo, board.OpUndo, board.OpReset}
	if strings.Join(opStrings(ops), ",") != strings.Join(opStrings(want), ",") {
		t.Errorf("ops = %v, want %v", ops, want)
	}

	var first OpData
	if err := json.Unmarshal(records[1].Data, &first); err != nil {
		t.Fatal(err)
	}
	if first.Point == nil || *first.Point != point.At(1, 2) || first.Active != 1 {
		t.Errorf("first op = %+v", first)
	}
}

func TestWriter_SeedRestoredBoard(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	mem := store.NewMemory()
	activeKey, redoKey := board.New(mem).Keys()
	if err := mem.Save(activeKey, []point.Point{point.At(1, 1), point.At(2, 2), point.At(3, 3)}); err != nil {
		t.Fatal(err)
	}
	if err := mem.Save(redoKey, []point.Point{point.At(4, 4)}); err != nil {
		t.Fatal(err)
	}
	e := board.New(mem)

	w, err := NewWriter(dir, "memory")
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	w.Seed(e.Snapshot())
	unsub := e.Subscribe(w.Record)
	unsub()
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	records, err := ReadRecords(dir, w.ID())
	if err != nil {
		t.Fatalf("ReadRecords: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}

	var load OpData
	if err := json.Unmarshal(records[1].Data, &load); err != nil {
		t.Fatal(err)
	}
	if load.Op != board.OpLoad || load.Active != 3 || load.Redo != 1 || load.Point != nil {
		t.Errorf("load record = %+v", load)
	}

	var end SessionEndData
	if err := json.Unmarshal(records[2].Data, &end); err != nil {
		t.Fatal(err)
	}
	if end.Ops != 0 || end.Active != 3 {
		t.Errorf("session end = %+v, want 0 ops 3 points", end)
	}
	if out := Format(records); !strings.Contains(out, "end: 0 ops, 3 points") {
		t.Errorf("Format() = %q", out)
	}
}

func opStrings(ops []board.Op) []string {
	out := make([]string, len(ops))
	for i, o := range ops {
		out[i] = string(o)
	}
	return out
}

func TestReadRecords_SkipsMalformed(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	content := `{"v":1,"type":"session_start","ts":"t","data":{"id":"s1"}}
not json
{"v":1,"type":"op","ts":"t","data":{"op":"reset","active":0,"redo":0}}
`
	if err := os.WriteFile(filepath.Join(dir, "s1.jsonl"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	records, err := ReadRecords(dir, "s1")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Errorf("records = %d, want 2", len(records))
	}
}

func TestReadRecords_Missing(t *testing.T) {
	t.Parallel()
	if _, err := ReadRecords(t.TempDir(), "nope"); err == nil {
		t.Error("expected error")
	}
}

func writeSessionStart(t *testing.T, dir, id, started string) {
	t.Helper()
	data, _ := json.Marshal(SessionStartData{ID: id, Started: started})
	rec, _ := json.Marshal(Record{Version: 1, Type: RecordSessionStart, TS: started, Data: data})
	if err := os.WriteFile(filepath.Join(dir, id+".jsonl"), append(rec, '\n'), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLatest(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	writeSessionStart(t, dir, "b", "2026-01-02T00:00:00Z")
	writeSessionStart(t, dir, "a", "2026-03-01T00:00:00Z")
	writeSessionStart(t, dir, "c", "2025-12-31T00:00:00Z")
	if err := os.WriteFile(filepath.Join(dir, "junk.jsonl"), []byte("garbage\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	s, ok, err := Latest(dir)
	if err != nil || !ok {
		t.Fatalf("Latest: %v %v", ok, err)
	}
	if s.ID != "a" {
		t.Errorf("latest = %q, want a", s.ID)
	}
}

func TestListSessions_FractionalSeconds(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	// RFC3339Nano trims trailing zeros, so these do not sort as text.
	writeSessionStart(t, dir, "whole", "2026-10-18T10:00:05Z")
	writeSessionStart(t, dir, "tenth", "2026-10-18T10:00:05.1Z")
	writeSessionStart(t, dir, "twelve", "2026-10-18T10:00:05.12Z")
	writeSessionStart(t, dir, "later", "2026-10-18T10:00:05.9Z")

	sessions, err := ListSessions(dir)
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	var ids []string
	for _, s := range sessions {
		ids = append(ids, s.ID)
	}
	if got, want := strings.Join(ids, ","), "whole,tenth,twelve,later"; got != want {
		t.Errorf("order = %s, want %s", got, want)
	}

	latest, ok, err := Latest(dir)
	if err != nil || !ok || latest.ID != "later" {
		t.Errorf("Latest = %q %v %v, want later", latest.ID, ok, err)
	}
}

func TestLatest_NoDir(t *testing.T) {
	t.Parallel()
	_, ok, err := Latest(filepath.Join(t.TempDir(), "missing"))
	if ok || err != nil {
		t.Errorf("Latest on missing dir = %v, %v", ok, err)
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()
	p := point.At(3, 4)
	data, _ := json.Marshal(OpData{Op: board.OpAdd, Point: &p, Active: 1})
	out := Format([]Record{{Type: RecordOp, TS: "T", Data: data}})

	if !strings.Contains(out, "add") || !strings.Contains(out, "(3, 4)") || !strings.Contains(out, "active=1") {
		t.Errorf("Format() = %q", out)
	}
}
