// ABOUTME: PTY harness for end-to-end tests: builds the circles binary and drives it
// ABOUTME: Sends keys and SGR mouse sequences, and polls the ANSI-stripped screen output

package e2e

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/creack/pty"
)

var binPath string

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "circles-e2e-")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	binPath = filepath.Join(dir, "circles")

	build := exec.Command("go", "build", "-o", binPath, "../cmd/circles")
	build.Stdout, build.Stderr = os.Stderr, os.Stderr
	if err := build.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "building circles: %v\n", err)
		os.RemoveAll(dir)
		os.Exit(1)
	}

	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

// lockedBuffer collects PTY output from the reader goroutine.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type session struct {
	cmd  *exec.Cmd
	pty  *os.File
	out  *lockedBuffer
	done chan error
}

// env is an isolated HOME plus a data dir shared by every run of one test.
type env struct {
	home    string
	dataDir string
}

func newEnv(t *testing.T) env {
	t.Helper()
	home := t.TempDir()
	return env{home: home, dataDir: filepath.Join(home, "data")}
}

func (e env) command(args ...string) *exec.Cmd {
	full := append([]string{"-store", "file", "-data-dir", e.dataDir}, args...)
	cmd := exec.Command(binPath, full...)
	cmd.Dir = e.home
	cmd.Env = append(os.Environ(), "HOME="+e.home, "TERM=xterm-256color")
	return cmd
}

func (e env) start(t *testing.T, args ...string) *session {
	t.Helper()
	cmd := e.command(args...)
	f, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: 24, Cols: 80})
	if err != nil {
		t.Fatalf("starting circles: %v", err)
	}

	s := &session{cmd: cmd, pty: f, out: &lockedBuffer{}, done: make(chan error, 1)}
	go func() {
		_, _ = io.Copy(s.out, f)
	}()
	go func() {
		s.done <- cmd.Wait()
	}()
	return s
}

// run executes a non-interactive subcommand and returns its stdout.
func (e env) run(t *testing.T, args ...string) string {
	t.Helper()
	cmd := e.command(args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("circles %s: %v\n%s", strings.Join(args, " "), err, stderr.String())
	}
	return string(out)
}

func (s *session) close() {
	_ = s.cmd.Process.Kill()
	_ = s.pty.Close()
}

func (s *session) screen() string {
	return ansi.Strip(s.out.String())
}

func (s *session) expectStringTimeout(t *testing.T, want string, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if strings.Contains(s.screen(), want) {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %q; screen:\n%s", want, s.screen())
}

func (s *session) send(t *testing.T, text string) {
	t.Helper()
	if _, err := s.pty.WriteString(text); err != nil {
		t.Fatalf("writing to pty: %v", err)
	}
	time.Sleep(100 * time.Millisecond)
}

func (s *session) sendCtrl(t *testing.T, c byte) {
	t.Helper()
	s.send(t, string([]byte{c - 'a' + 1}))
}

// click sends an SGR left-button press and release at zero-based cell (x, y).
func (s *session) click(t *testing.T, x, y int) {
	t.Helper()
	s.send(t, fmt.Sprintf("\x1b[<0;%d;%dM", x+1, y+1))
	s.send(t, fmt.Sprintf("\x1b[<0;%d;%dm", x+1, y+1))
}

// drag presses at (x0, y), moves right to x1 with the button held, then releases.
func (s *session) drag(t *testing.T, x0, x1, y int) {
	t.Helper()
	s.send(t, fmt.Sprintf("\x1b[<0;%d;%dM", x0+1, y+1))
	for x := x0 + 1; x <= x1; x++ {
		s.send(t, fmt.Sprintf("\x1b[<32;%d;%dM", x+1, y+1))
	}
	s.send(t, fmt.Sprintf("\x1b[<0;%d;%dm", x1+1, y+1))
}

func (s *session) waitExit(t *testing.T, timeout time.Duration) {
	t.Helper()
	select {
	case <-s.done:
	case <-time.After(timeout):
		t.Fatalf("process did not exit within %v; screen:\n%s", timeout, s.screen())
	}
}
