// Package supervisor runs the target command and the signal dispatch loop
// that proxies signals to it and reaps every descendant.
package supervisor

import (
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/kahiteam/pidone/internal/config"
	"github.com/kahiteam/pidone/internal/metrics"
	"github.com/kahiteam/pidone/internal/process"
	"github.com/kahiteam/pidone/internal/signals"
	"github.com/kahiteam/pidone/internal/tty"
)

// queueSize bounds the signals buffered between the runtime and the loop.
// The runtime drops a signal when the buffer is full.
const queueSize = 128

// SignalQueue captures OS signals for processing in the dispatch loop.
// SIGCHLD has its own one-slot channel: the reaper drains every exited
// descendant per delivery, so one pending SIGCHLD is enough and a flood
// of other signals can never push it out.
type SignalQueue struct {
	C     <-chan os.Signal // every catchable signal except SIGCHLD
	Child <-chan os.Signal // SIGCHLD

	ch    chan os.Signal
	child chan os.Signal
}

// NewSignalQueue subscribes to every catchable signal. Once it returns,
// no signal takes its default action on the supervisor; all are queued.
func NewSignalQueue() *SignalQueue {
	ch := make(chan os.Signal, queueSize)
	child := make(chan os.Signal, 1)

	catchable := signals.Catchable()
	sigs := make([]os.Signal, 0, len(catchable))
	for _, s := range catchable {
		if s != syscall.SIGCHLD {
			sigs = append(sigs, s)
		}
	}
	signal.Notify(child, syscall.SIGCHLD)
	signal.Notify(ch, sigs...)
	return &SignalQueue{
		C:     ch,
		Child: child,
		ch:    ch,
		child: child,
	}
}

// Stop deregisters signal notifications.
func (sq *SignalQueue) Stop() {
	signal.Stop(sq.ch)
	signal.Stop(sq.child)
}

// Supervisor owns all mutable supervisor state: the one-shot ignores and
// the tracked child's pid. It is driven from a single goroutine.
type Supervisor struct {
	config  *config.Config
	spawner process.ProcessSpawner
	tty     tty.Controller
	os      OS
	metrics *metrics.Collector
	logger  *slog.Logger

	ignores *signals.OneShot
	child   atomic.Int64 // read by the status server
	workDir string       // directory pidone was started in; observers run here
}

// SupervisorConfig configures the supervisor.
type SupervisorConfig struct {
	Config  *config.Config
	Spawner process.ProcessSpawner // defaults to process.ExecSpawner
	TTY     tty.Controller         // defaults to tty.Stdin()
	OS      OS                     // defaults to the host
	Metrics *metrics.Collector     // nil disables metrics
	Logger  *slog.Logger
}

// New creates a supervisor.
func New(cfg SupervisorConfig) *Supervisor {
	s := &Supervisor{
		config:  cfg.Config,
		spawner: cfg.Spawner,
		tty:     cfg.TTY,
		os:      cfg.OS,
		metrics: cfg.Metrics,
		logger:  cfg.Logger,
		ignores: signals.NewOneShot(),
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	if s.spawner == nil {
		s.spawner = &process.ExecSpawner{Logger: s.logger}
	}
	if s.tty == nil {
		s.tty = tty.Stdin()
	}
	if s.os == nil {
		s.os = hostOS{}
	}
	return s
}

// ChildPID returns the tracked child's pid, or 0 before it starts.
func (s *Supervisor) ChildPID() int { return int(s.child.Load()) }
