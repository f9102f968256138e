//go:build e2e && unix

package main

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creack/pty"
)

var binPath = "searchgrip_e2e" // set to an absolute path by TestMain

// Keys as the terminal sends them
const (
	KeyEnter    = "\r"
	KeyCtrlC    = "\x03"
	KeyCtrlV    = "\x16"
	KeyEsc      = "\x1b"
	KeyTab      = "\t"
	KeySpace    = " "
	KeyPagerOut = "q"
)

// ansiRe strips CSI, OSC, charset and keypad sequences plus carriage returns
var ansiRe = regexp.MustCompile(
	`(?:\x1b\[[0-9;?]*[ -/]*[@-~])|` +
		`(?:\x1b\][^\x07]*\x07)|` +
		`(?:\x1b[\(\)][A-Za-z])|` +
		`(?:\x1b=|\x1b>)|` +
		`\r`,
)

// TUITestFramework drives searchgrip in a pseudo terminal and records
// everything it prints
type TUITestFramework struct {
	t         *testing.T
	pty       *os.File
	cmd       *exec.Cmd
	workspace string
	exited    chan struct{} // closed once the process has been reaped
	exitErr   error

	mu      sync.Mutex
	out     bytes.Buffer
	mark    int
	changed chan struct{} // closed and replaced on every write
}

// NewTUITest creates a driver with its own HOME and working directory
func NewTUITest(t *testing.T) *TUITestFramework {
	return &TUITestFramework{
		t:         t,
		workspace: t.TempDir(),
		changed:   make(chan struct{}),
	}
}

// StartApp launches searchgrip with args on a 120x40 terminal
func (tf *TUITestFramework) StartApp(args ...string) error {
	tf.cmd = exec.Command(binPath, args...)
	tf.cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"LC_ALL=C",
		"LANG=C",
		"HOME="+tf.workspace,
		"XDG_CONFIG_HOME="+tf.workspace,
		"SEARCHGRIP_E2E_TEST=1",
	)
	tf.cmd.Dir = tf.workspace // searchgrip.log lands here

	f, err := pty.StartWithSize(tf.cmd, &pty.Winsize{Rows: 40, Cols: 120})
	if err != nil {
		return fmt.Errorf("start in pty: %w", err)
	}
	tf.pty = f

	tf.exited = make(chan struct{})
	go func() {
		tf.exitErr = tf.cmd.Wait()
		close(tf.exited)
	}()
	go tf.record(f)

	return nil
}

// record copies terminal output into the transcript until the pty closes
func (tf *TUITestFramework) record(f *os.File) {
	buf := make([]byte, 8192)
	for {
		n, err := f.Read(buf)
		tf.mu.Lock()
		if n > 0 {
			tf.out.Write(buf[:n])
		}
		close(tf.changed)
		tf.changed = make(chan struct{})
		tf.mu.Unlock()
		if err != nil {
			return
		}
	}
}

// Exited is closed when the process has stopped; ExitErr is valid after that
func (tf *TUITestFramework) Exited() <-chan struct{} {
	return tf.exited
}

func (tf *TUITestFramework) ExitErr() error {
	<-tf.exited
	return tf.exitErr
}

// SendKeys writes raw keystrokes to the terminal
func (tf *TUITestFramework) SendKeys(keys string) error {
	tf.t.Helper()
	_, err := tf.pty.Write([]byte(keys))
	return err
}

func (tf *TUITestFramework) SendEnter() error { return tf.SendKeys(KeyEnter) }

func (tf *TUITestFramework) SendCtrlC() error { return tf.SendKeys(KeyCtrlC) }

// Type enters text into the focused search field
func (tf *TUITestFramework) Type(text string) error { return tf.SendKeys(text) }

// Tab moves focus between the search field and the button
func (tf *TUITestFramework) Tab() error { return tf.SendKeys(KeyTab) }

// PressButton activates the Search button; it must have focus
func (tf *TUITestFramework) PressButton() error { return tf.SendKeys(KeySpace) }

func (tf *TUITestFramework) OpenPager() error { return tf.SendKeys(KeyCtrlV) }

func (tf *TUITestFramework) ClosePager() error { return tf.SendKeys(KeyPagerOut) }

func (tf *TUITestFramework) Quit() error { return tf.SendKeys(KeyEsc) }

// Ready waits for the line main prints before the program starts
func (tf *TUITestFramework) Ready() bool {
	tf.t.Helper()
	return tf.WaitFor(func(s string) bool { return strings.Contains(s, "__READY__") }, 5*time.Second)
}

// SeePlain waits for text anywhere in the ANSI-stripped transcript
func (tf *TUITestFramework) SeePlain(text string) bool {
	tf.t.Helper()
	return tf.WaitFor(func(s string) bool {
		return strings.Contains(ansiRe.ReplaceAllString(s, ""), text)
	}, 3*time.Second)
}

// Mark remembers the current end of the transcript for SeePlainSinceMark
func (tf *TUITestFramework) Mark() {
	tf.mu.Lock()
	defer tf.mu.Unlock()
	tf.mark = tf.out.Len()
}

// SeePlainSinceMark is SeePlain restricted to output after the last Mark
func (tf *TUITestFramework) SeePlainSinceMark(text string) bool {
	tf.t.Helper()
	tf.mu.Lock()
	mark := tf.mark
	tf.mu.Unlock()
	return tf.WaitFor(func(s string) bool {
		if len(s) < mark {
			return false
		}
		return strings.Contains(ansiRe.ReplaceAllString(s[mark:], ""), text)
	}, 3*time.Second)
}

// WaitFor blocks until pred holds for the transcript or timeout passes
func (tf *TUITestFramework) WaitFor(pred func(string) bool, timeout time.Duration) bool {
	tf.t.Helper()
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	for {
		tf.mu.Lock()
		s, changed := tf.out.String(), tf.changed
		tf.mu.Unlock()
		if pred(s) {
			return true
		}
		select {
		case <-changed:
		case <-timer.C:
			return pred(tf.Snapshot())
		}
	}
}

// WaitForE is WaitFor returning an error with the transcript tail attached
func (tf *TUITestFramework) WaitForE(pred func(string) bool, timeout time.Duration, failMsg string) error {
	tf.t.Helper()
	if tf.WaitFor(pred, timeout) {
		return nil
	}
	return fmt.Errorf("%s\n--- tail ---\n%s", failMsg, tf.tail(4096))
}

// Snapshot returns everything printed so far
func (tf *TUITestFramework) Snapshot() string {
	tf.mu.Lock()
	defer tf.mu.Unlock()
	return tf.out.String()
}

func (tf *TUITestFramework) tail(n int) string {
	s := ansiRe.ReplaceAllString(tf.Snapshot(), "")
	if len(s) > n {
		s = s[len(s)-n:]
	}
	return s
}

// DumpTailOnFail saves the last n bytes of plain output next to the test's temp files
func (tf *TUITestFramework) DumpTailOnFail(t *testing.T, name string, n int) {
	t.Helper()
	p := filepath.Join(t.TempDir(), name+".txt")
	_ = os.WriteFile(p, []byte(tf.tail(n)), 0644)
	t.Logf("Saved tail to %s", p)
}

// Cleanup closes the terminal and kills the process if it is still running
func (tf *TUITestFramework) Cleanup() {
	if tf.pty != nil {
		_ = tf.pty.Close() // SIGHUP for the child
		tf.pty = nil
	}
	if tf.cmd == nil || tf.cmd.Process == nil {
		return
	}
	_ = tf.cmd.Process.Kill()
	select {
	case <-tf.exited:
	case <-time.After(2 * time.Second):
		tf.t.Logf("searchgrip did not exit after kill")
	}
}
