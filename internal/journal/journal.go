// ABOUTME: Append-only JSONL journal of drawing operations, one file per session
// ABOUTME: Reads line-by-line with bufio.Scanner; malformed lines are skipped

package journal

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mauromedda/circles-go/internal/board"
	"github.com/mauromedda/circles-go/internal/config"
	"github.com/mauromedda/circles-go/internal/log"
	"github.com/mauromedda/circles-go/internal/point"
)

// RecordType identifies the type of JSONL record.
type RecordType string

const (
	RecordSessionStart RecordType = "session_start"
	RecordOp           RecordType = "op"
	RecordSessionEnd   RecordType = "session_end"
)

// Record is the envelope for all JSONL entries.
type Record struct {
	Version int             `json:"v"`
	Type    RecordType      `json:"type"`
	TS      string          `json:"ts"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// SessionStartData holds session_start metadata.
type SessionStartData struct {
	ID      string `json:"id"`
	Store   string `json:"store"`
	CWD     string `json:"cwd"`
	Started string `json:"started"`
}

// OpData describes one engine change.
type OpData struct {
	Op     board.Op     `json:"op"`
	Point  *point.Point `json:"point,omitempty"`
	Active int          `json:"active"`
	Redo   int          `json:"redo"`
}

// SessionEndData summarizes a session.
type SessionEndData struct {
	Ops    int `json:"ops"`
	Active int `json:"active"`
}

// Writer appends records to a session JSONL file.
type Writer struct {
	id   string
	file *os.File
	ops  int
	last int
}

// NewWriter starts a new session journal in dir with a random session id.
func NewWriter(dir, storeName string) (*Writer, error) {
	if err := config.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("creating journal dir: %w", err)
	}

	id := uuid.NewString()
	path := filepath.Join(dir, id+".jsonl")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening journal file: %w", err)
	}

	w := &Writer{id: id, file: f}
	cwd, _ := os.Getwd()
	start := SessionStartData{
		ID:      id,
		Store:   storeName,
		CWD:     cwd,
		Started: time.Now().UTC().Format(time.RFC3339Nano),
	}
	if err := w.WriteRecord(RecordSessionStart, start); err != nil {
		f.Close()
		return nil, err
	}
	return w, nil
}

// ID returns the session id.
func (w *Writer) ID() string { return w.id }

// WriteRecord appends a record to the session file.
func (w *Writer) WriteRecord(recType RecordType, data any) error {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshaling record data: %w", err)
	}

	rec := Record{
		Version: 1,
		Type:    recType,
		TS:      time.Now().UTC().Format(time.RFC3339),
		Data:    dataBytes,
	}

	line, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling record: %w", err)
	}

	line = append(line, '\n')
	if _, err := w.file.Write(line); err != nil {
		return fmt.Errorf("writing record: %w", err)
	}
	return nil
}

// Record journals an engine change. It matches the board subscriber
// signature; write failures are logged.
func (w *Writer) Record(c board.Change) {
	data := OpData{Op: c.Op, Active: len(c.Active), Redo: len(c.Redo)}
	switch c.Op {
	case board.OpAdd, board.OpUndo, board.OpRedo:
		p := c.Point
		data.Point = &p
	}
	if err := w.WriteRecord(RecordOp, data); err != nil {
		log.Warn("journal %s: %v", w.id, err)
		return
	}
	w.ops++
	w.last = len(c.Active)
}

// Seed journals the state the session starts from as a load record, so a
// session with no operations still ends with the restored point count.
func (w *Writer) Seed(c board.Change) {
	data := OpData{Op: board.OpLoad, Active: len(c.Active), Redo: len(c.Redo)}
	if err := w.WriteRecord(RecordOp, data); err != nil {
		log.Warn("journal %s: %v", w.id, err)
	}
	w.last = len(c.Active)
}

// Close writes the session_end record and closes the file.
func (w *Writer) Close() error {
	endErr := w.WriteRecord(RecordSessionEnd, SessionEndData{Ops: w.ops, Active: w.last})
	return errors.Join(endErr, w.file.Close())
}

// ReadRecords reads all records of a session in dir.
func ReadRecords(dir, sessionID string) ([]Record, error) {
	path := filepath.Join(dir, sessionID+".jsonl")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening journal %s: %w", sessionID, err)
	}
	defer f.Close()

	var records []Record
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		var rec Record
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			continue // Skip malformed lines
		}
		records = append(records, rec)
	}

	if err := scanner.Err(); err != nil {
		return records, fmt.Errorf("scanning journal %s: %w", sessionID, err)
	}
	return records, nil
}

// ListSessions returns the session_start records in dir, oldest first.
func ListSessions(dir string) ([]SessionStartData, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading journal dir: %w", err)
	}

	var sessions []SessionStartData
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".jsonl" {
			continue
		}
		data, err := readFirstLine(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		sessions = append(sessions, data)
	}
	slices.SortFunc(sessions, func(a, b SessionStartData) int {
		return startedAt(a).Compare(startedAt(b))
	})
	return sessions, nil
}

// Latest returns the most recently started session in dir.
func Latest(dir string) (SessionStartData, bool, error) {
	sessions, err := ListSessions(dir)
	if err != nil || len(sessions) == 0 {
		return SessionStartData{}, false, err
	}
	return sessions[len(sessions)-1], true, nil
}

// startedAt parses the session start time; unparsable values sort first.
func startedAt(s SessionStartData) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s.Started)
	if err != nil {
		return time.Time{}
	}
	return t
}

func readFirstLine(path string) (SessionStartData, error) {
	f, err := os.Open(path)
	if err != nil {
		return SessionStartData{}, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return SessionStartData{}, fmt.Errorf("empty journal file")
	}

	var rec Record
	if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
		return SessionStartData{}, fmt.Errorf("parsing first record: %w", err)
	}
	if rec.Type != RecordSessionStart {
		return SessionStartData{}, fmt.Errorf("first record is %q", rec.Type)
	}

	var start SessionStartData
	if err := json.Unmarshal(rec.Data, &start); err != nil {
		return SessionStartData{}, fmt.Errorf("parsing session start: %w", err)
	}
	return start, nil
}

// Format renders records as one human-readable line each.
func Format(records []Record) string {
	var b strings.Builder
	for _, rec := range records {
		switch rec.Type {
		case RecordOp:
			var op OpData
			if err := json.Unmarshal(rec.Data, &op); err != nil {
				continue
			}
			fmt.Fprintf(&b, "%s  %-5s", rec.TS, op.Op)
			if op.Point != nil {
				fmt.Fprintf(&b, " %-14s", op.Point)
			} else {
				fmt.Fprintf(&b, " %-14s", "")
			}
			fmt.Fprintf(&b, " active=%d redo=%d\n", op.Active, op.Redo)
		case RecordSessionStart:
			var s SessionStartData
			if err := json.Unmarshal(rec.Data, &s); err != nil {
				continue
			}
			fmt.Fprintf(&b, "%s  session %s (store %s)\n", rec.TS, s.ID, s.Store)
		case RecordSessionEnd:
			var e SessionEndData
			if err := json.Unmarshal(rec.Data, &e); err != nil {
				continue
			}
			fmt.Fprintf(&b, "%s  end: %d ops, %d points\n", rec.TS, e.Ops, e.Active)
		}
	}
	return b.String()
}
