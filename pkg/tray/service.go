// Package tray shows a compiled menu in the system tray. The tray runs in a
// subprocess and talks to this host over JSON lines on stdio.
package tray

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/armon/circbuf"
	"github.com/manifold/nativemenu/pkg/console"
	"github.com/manifold/nativemenu/pkg/daemon"
	"github.com/manifold/nativemenu/pkg/logging"
	"github.com/manifold/nativemenu/pkg/menu"
	"github.com/manifold/nativemenu/pkg/menuspec"
	"github.com/manifold/nativemenu/pkg/menutree"
	"github.com/manifold/nativemenu/pkg/misc/subcmd"
)

// TerminateAction is the role action that shuts the daemon down.
const TerminateAction = "terminate:"

const (
	// stderrTail is how much subprocess stderr is kept for exit reports.
	stderrTail = 4096
	// maxRestarts bounds how often a crashing subprocess is started again.
	maxRestarts = 5
)

type Service struct {
	Path     string
	Kind     menu.Kind
	AppName  string
	Loader   *menuspec.Loader
	Notifier menu.Notifier
	Owner    menu.ContextSource
	Logger   logging.Logger
	Daemon   *daemon.Daemon

	// Command starts the tray subprocess; it defaults to re-running this
	// binary with the hidden "systray" command.
	Command []string

	// Console receives the subprocess stderr, one prefixed line at a time.
	Console *console.Console

	subcmd  *subcmd.Subcmd
	tail    *tailBuffer
	stderr  sync.WaitGroup
	pending *session
	stdin   io.Writer

	// toolkit outlives every menu so handles are never reused across reloads.
	toolkit   *menutree.Toolkit
	menu      *menu.Menu
	compiling int32
	mu        sync.Mutex
	sendMu    sync.Mutex
}

// session holds the pipes of one subprocess.
type session struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout io.ReadCloser
}

func (s *Service) InitializeDaemon() (err error) {
	if s.Loader == nil {
		s.Loader = menuspec.NewLoader()
	}
	doc, err := s.Loader.Load(s.Path)
	if err != nil {
		return err
	}
	if err := s.Apply(doc); err != nil {
		return err
	}
	return s.start()
}

func (s *Service) start() (err error) {
	args := s.Command
	if len(args) == 0 {
		args = []string{os.Args[0], "systray"}
	}
	if s.Console == nil {
		s.Console = &console.Console{Output: os.Stderr, Padding: 7}
	}
	buf, err := circbuf.NewBuffer(stderrTail)
	if err != nil {
		return err
	}
	s.tail = &tailBuffer{buf: buf}
	s.subcmd = subcmd.New(args[0], args[1:]...)
	s.subcmd.MaxRestarts = maxRestarts
	s.subcmd.Started = make(chan *exec.Cmd)
	s.subcmd.OnStatusChange(func(ev subcmd.Event) {
		logging.Debug(s.Logger, "tray: subprocess ", ev.Status, " pid ", ev.Pid)
		if ev.Status != subcmd.StatusExited {
			return
		}
		out := strings.TrimSpace(s.tail.String())
		switch {
		case out != "":
			logging.Error(s.Logger, "tray: subprocess exited: ", ev.Err, ": ", out)
		case ev.Err != nil:
			logging.Error(s.Logger, "tray: subprocess exited: ", ev.Err)
		}
	})
	s.subcmd.Setup = s.setup
	return s.subcmd.Start()
}

func (s *Service) setup(cmd *exec.Cmd) error {
	cmd.Env = append(os.Environ(), "SYSTRAY_SUBPROCESS=1")
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return err
	}
	s.sendMu.Lock()
	s.pending = &session{cmd: cmd, stdin: stdin, stdout: stdout}
	s.sendMu.Unlock()

	s.tail.Reset()
	s.stderr.Add(1)
	go s.Console.LineReader(&s.stderr, "systray", 0, io.TeeReader(stderr, s.tail), false)
	return nil
}

func (s *Service) Serve(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-s.subcmd.Started:
			sess := s.attach(cmd)
			if sess == nil {
				continue
			}
			inbox := make(chan Message)
			go s.receiveMessages(sess.stdout, inbox)
			s.sendMenu()
			for msg := range inbox {
				s.handle(msg)
			}
		}
	}
}

// attach makes cmd the subprocess that receives messages. It returns nil if
// cmd was already replaced.
func (s *Service) attach(cmd *exec.Cmd) *session {
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	if s.pending == nil || s.pending.cmd != cmd {
		return nil
	}
	sess := s.pending
	s.pending = nil
	s.stdin = sess.stdin
	return sess
}

func (s *Service) TerminateDaemon() error {
	s.mu.Lock()
	if s.menu != nil {
		s.menu.Delete()
		s.menu = nil
	}
	s.mu.Unlock()
	if s.subcmd == nil {
		return nil
	}
	err := s.subcmd.Stop()
	s.stderr.Wait()
	return err
}

// Apply compiles doc and replaces the current menu. On error the current menu
// stays in place.
func (s *Service) Apply(doc *menuspec.Document) error {
	s.mu.Lock()
	if s.toolkit == nil {
		s.toolkit = menutree.New()
		s.toolkit.OnStateChange = s.stateChanged
	}
	tk := s.toolkit
	s.mu.Unlock()

	m := menu.New(tk, doc, s.Kind)
	m.Title = s.AppName
	if s.AppName != "" {
		m.AppName = s.AppName
	}
	m.Notifier = s.Notifier
	m.Owner = s.Owner
	m.Logger = s.Logger

	// initial check states belong to the next subprocess
	atomic.AddInt32(&s.compiling, 1)
	_, err := m.Compile()
	atomic.AddInt32(&s.compiling, -1)
	if err != nil {
		return err
	}

	s.mu.Lock()
	old := s.menu
	s.menu = m
	s.mu.Unlock()

	if old != nil {
		old.Delete()
	}
	// the tray cannot remove items, so a new menu needs a fresh subprocess
	if s.subcmd != nil && subcmd.Running(s.subcmd) {
		return s.subcmd.Restart()
	}
	return nil
}

// Menu returns the menu currently shown.
func (s *Service) Menu() *menu.Menu {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.menu
}

func (s *Service) stateChanged(n *menutree.Node) {
	if atomic.LoadInt32(&s.compiling) > 0 {
		return
	}
	s.send(Message{Type: ItemUpdate, Item: &MenuItem{
		Handle:  uint64(n.Handle),
		Title:   n.Title,
		Enabled: n.Enabled,
		Checked: n.Checked,
	}})
}

func (s *Service) handle(msg Message) {
	switch msg.Type {
	case ItemClicked:
		if msg.Item == nil {
			return
		}
		s.click(menu.Handle(msg.Item.Handle))
	case Error:
		if msg.Error != nil {
			logging.Error(s.Logger, "tray: ", *msg.Error)
		}
	default:
		logging.Debug(s.Logger, "tray: unknown message: ", msg.Type)
	}
}

func (s *Service) click(h menu.Handle) {
	s.mu.Lock()
	tk, m := s.toolkit, s.menu
	s.mu.Unlock()
	if m == nil {
		return
	}
	action, err := tk.Activate(m, h)
	if errors.Is(err, menu.ErrUnknownItem) {
		// sent by a subprocess showing a replaced menu
		logging.Debug(s.Logger, "tray: ignoring click on stale item ", h)
		return
	}
	if err != nil {
		logging.Error(s.Logger, "tray: click: ", err)
		return
	}
	switch action {
	case "", menu.CallbackAction:
	case TerminateAction:
		logging.Info(s.Logger, "tray: quit selected")
		go s.Daemon.Terminate()
	default:
		logging.Debug(s.Logger, "tray: no handler for action ", action)
	}
}

func (s *Service) sendMenu() {
	s.mu.Lock()
	tk, m := s.toolkit, s.menu
	s.mu.Unlock()
	if m == nil {
		return
	}
	s.send(Message{
		Type: InitMenu,
		Menu: &Menu{
			Title:   s.AppName,
			Tooltip: fmt.Sprintf("%s (%s menu)", s.AppName, m.Kind),
			Items:   Flatten(tk.Node(m.Root())),
		},
	})
}

func (s *Service) send(msg Message) {
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	if s.stdin == nil {
		return
	}
	b, err := json.Marshal(msg)
	if err != nil {
		logging.Error(s.Logger, "tray: ", err)
		return
	}
	if _, err := s.stdin.Write(append(b, '\n')); err != nil {
		logging.Debug(s.Logger, "tray: write: ", err)
	}
}

func (s *Service) receiveMessages(r io.Reader, inbox chan<- Message) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		var msg Message
		if err := json.Unmarshal(scanner.Bytes(), &msg); err != nil {
			logging.Debug(s.Logger, err)
			break
		}
		inbox <- msg
	}
	if err := scanner.Err(); err != nil {
		logging.Debug(s.Logger, err)
	}
	close(inbox)
}

// tailBuffer guards a circbuf shared by the stderr reader and status callbacks.
type tailBuffer struct {
	buf *circbuf.Buffer
	mu  sync.Mutex
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.buf.Write(p)
}

func (t *tailBuffer) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.buf.String()
}

func (t *tailBuffer) Reset() {
	t.mu.Lock()
	t.buf.Reset()
	t.mu.Unlock()
}
