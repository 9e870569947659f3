package subcmd

import (
	"errors"
	"os/exec"
	"sync"
	"syscall"
)

type Status string

const (
	StatusStarting Status = "Starting"
	StatusStarted  Status = "Started"
	StatusExited   Status = "Exited"
	StatusStopped  Status = "Stopped"
)

func (s Status) String() string {
	return string(s)
}

// Event is a snapshot passed to status callbacks. Pid is zero when no child
// is running and Err is the exit error of the child that just exited.
type Event struct {
	Status Status
	Pid    int
	Err    error
}

func Running(c *Subcmd) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status == StatusStarting || c.status == StatusStarted
}

// Subcmd runs a command in its own process group and starts it again when it
// exits, until Stop is called or MaxRestarts is used up.
type Subcmd struct {
	*exec.Cmd

	Setup       func(*exec.Cmd) error
	MaxRestarts int
	Started     chan *exec.Cmd

	status    Status
	callbacks []func(Event)
	current   *exec.Cmd
	quit      chan struct{}
	restarts  int

	mu sync.Mutex
}

func New(name string, arg ...string) *Subcmd {
	s := &Subcmd{
		Cmd:         exec.Command(name, arg...),
		MaxRestarts: -1,
		status:      StatusStopped,
	}
	return s
}

// OnStatusChange registers cb and calls it once with the current state.
// Callbacks run with the Subcmd locked and must not call back into it.
func (sc *Subcmd) OnStatusChange(cb func(Event)) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.callbacks = append(sc.callbacks, cb)
	cb(sc.event(nil))
}

func (sc *Subcmd) Start() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.status == StatusStarting || sc.status == StatusStarted {
		return errors.New("already started")
	}
	sc.restarts = 0
	return sc.start()
}

// Restart replaces the running child with a new one. The old child's exit is
// not reported.
func (sc *Subcmd) Restart() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.status == StatusStarting {
		return errors.New("already starting")
	}
	sc.release()
	return sc.start()
}

func (sc *Subcmd) Stop() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.current == nil {
		return errors.New("not running")
	}
	if sc.status == StatusStopped {
		return nil
	}
	cmd := sc.current
	sc.setStatus(StatusStopped, nil)
	close(sc.quit)
	return kill(cmd)
}

// release kills the current child and detaches it. Callers hold mu.
func (sc *Subcmd) release() {
	if sc.current == nil {
		return
	}
	close(sc.quit)
	kill(sc.current)
	sc.current = nil
}

func (sc *Subcmd) event(err error) Event {
	ev := Event{Status: sc.status, Err: err}
	if sc.current != nil && sc.current.Process != nil {
		ev.Pid = sc.current.Process.Pid
	}
	return ev
}

// setStatus notifies callbacks of a change. Callers hold mu.
func (sc *Subcmd) setStatus(s Status, err error) {
	if sc.status == s {
		return
	}
	sc.status = s
	ev := sc.event(err)
	for _, cb := range sc.callbacks {
		cb(ev)
	}
}

// start launches a new child. Callers hold mu.
func (sc *Subcmd) start() error {
	sc.setStatus(StatusStarting, nil)

	cmd := &exec.Cmd{
		Path:        sc.Cmd.Path,
		Args:        sc.Cmd.Args,
		Env:         sc.Cmd.Env,
		Dir:         sc.Cmd.Dir,
		ExtraFiles:  sc.Cmd.ExtraFiles,
		SysProcAttr: sc.Cmd.SysProcAttr,
	}
	if sc.Setup != nil {
		if err := sc.Setup(cmd); err != nil {
			sc.setStatus(StatusStopped, err)
			return err
		}
	}
	// stop and restart signal the whole group
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setpgid = true

	if err := cmd.Start(); err != nil {
		sc.setStatus(StatusStopped, err)
		return err
	}
	sc.current = cmd
	sc.quit = make(chan struct{})
	sc.setStatus(StatusStarted, nil)

	go sc.wait(cmd, sc.quit)
	return nil
}

func (sc *Subcmd) wait(cmd *exec.Cmd, quit chan struct{}) {
	if sc.Started != nil {
		select {
		case sc.Started <- cmd:
		case <-quit:
		}
	}
	err := cmd.Wait()

	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.current != cmd {
		// replaced by Restart
		return
	}
	sc.current = nil
	if sc.status == StatusStopped {
		return
	}
	sc.setStatus(StatusExited, err)

	if sc.MaxRestarts >= 0 && sc.restarts >= sc.MaxRestarts {
		sc.setStatus(StatusStopped, err)
		return
	}
	sc.restarts++
	sc.start()
}

func kill(cmd *exec.Cmd) error {
	return syscall.Kill(-cmd.Process.Pid, syscall.SIGTERM)
}
