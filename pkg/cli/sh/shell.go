// Package sh provides the ishell backed interactive monitor for live
// sample streams.
package sh

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"sync/atomic"

	"github.com/abiosoft/ishell"
	"github.com/tarm/serial"

	fx "github.com/DevonLantagne/adc-baremetal/pkg/framework"
	"github.com/DevonLantagne/adc-baremetal/pkg/host"
)

// Shell wraps ishell around one decode session at a time.
type Shell struct {
	Config host.Config

	Shell *ishell.Shell
	Loop  *SessionLoop

	// watching is toggled from the command loop and read from the
	// session goroutine.
	watching int32
}

func (s *Shell) setWatching(on bool) {
	var v int32
	if on {
		v = 1
	}
	atomic.StoreInt32(&s.watching, v)
}

func (s *Shell) isWatching() bool {
	return atomic.LoadInt32(&s.watching) != 0
}

// SessionLoop is a running decode session bound to an open port.
type SessionLoop struct {
	Cancel  func()
	Session *host.Session

	done chan error
}

// Wait blocks until the session stops and returns its error.
func (l *SessionLoop) Wait() error {
	return <-l.done
}

const (
	shellKey          = "$shell"
	unconnectedPrompt = "[none] > "
)

var commands = []*ishell.Cmd{
	&OpenCmd,
	&CloseCmd,
	&StatsCmd,
	&LastCmd,
	&WatchCmd,
	&PauseCmd,
}

// AddCmds registers extra commands during init.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new shell.
func New(config host.Config) *Shell {
	s := &Shell{
		Config: config,
		Shell:  ishell.New(),
	}
	s.setWatching(config.Present)
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(unconnectedPrompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// MustBeOpen wraps command funcs that require an open session.
func MustBeOpen(fn func(c *ishell.Context)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		if ShellFrom(c).Loop == nil {
			c.Err(fmt.Errorf("no open stream"))
			return
		}
		fn(c)
	}
}

// Run starts the interactive loop and tears down any open session on
// exit.
func (s *Shell) Run() {
	s.Shell.Run()
	s.CloseLoop()
}

// OpenLoop opens the port and starts a decode session over it.
func (s *Shell) OpenLoop(portName string) error {
	if s.Loop != nil {
		return fmt.Errorf("stream already open")
	}
	config := s.Config
	if portName != "" {
		config.Stream = portName
	}
	port, err := serial.OpenPort(&serial.Config{Name: config.Stream, Baud: config.Baud})
	if err != nil {
		return err
	}

	sess := host.NewSession(port, config)
	sess.Handler = host.HandleUpdateFunc(func(_ context.Context, u host.Update) {
		if s.isWatching() {
			fmt.Printf("%6d  x=%-10g rate=%.2fHz\n", u.Sample, u.X, u.Rate)
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	loop := &SessionLoop{Cancel: cancel, Session: sess, done: make(chan error, 1)}
	go func() {
		// Closing the port on cancel unblocks the serial read.
		loop.done <- fx.RunWithContextCloser(ctx, port, func() error {
			return sess.Run(ctx)
		})
	}()
	s.Loop = loop
	s.Shell.SetPrompt("[" + config.Stream + "] > ")
	return nil
}

// CloseLoop stops the open session, if any.
func (s *Shell) CloseLoop() error {
	loop := s.Loop
	if loop == nil {
		return nil
	}
	s.Loop = nil
	s.Shell.SetPrompt(unconnectedPrompt)
	loop.Cancel()
	if err := loop.Wait(); err != nil && err != context.Canceled {
		return err
	}
	return nil
}

// OpenCmd opens a serial stream and starts decoding.
var OpenCmd = ishell.Cmd{
	Name: "open",
	Help: "open [port] - open the stream and start decoding",
	Func: func(c *ishell.Context) {
		var port string
		if len(c.Args) > 0 {
			port = c.Args[0]
		}
		if err := ShellFrom(c).OpenLoop(port); err != nil {
			c.Err(err)
		}
	},
}

// CloseCmd stops the running session.
var CloseCmd = ishell.Cmd{
	Name: "close",
	Help: "close - stop decoding and close the port",
	Func: MustBeOpen(func(c *ishell.Context) {
		if err := ShellFrom(c).CloseLoop(); err != nil {
			c.Err(err)
		}
	}),
}

// StatsCmd reports session counters.
var StatsCmd = ishell.Cmd{
	Name: "stats",
	Help: "stats - decoded frame count and rate estimate",
	Func: MustBeOpen(func(c *ishell.Context) {
		sess := ShellFrom(c).Loop.Session
		config := sess.Config()
		c.Printf("stream:  %s @ %d baud\n", config.Stream, config.Baud)
		c.Printf("frames:  %d\n", sess.Count())
		c.Printf("rate:    %.2f Hz\n", sess.Rate())
	}),
}

// LastCmd dumps the most recent samples from the history buffer.
var LastCmd = ishell.Cmd{
	Name: "last",
	Help: "last [n] - print the n most recent samples (default 10)",
	Func: MustBeOpen(func(c *ishell.Context) {
		n := 10
		if len(c.Args) > 0 {
			v, err := strconv.Atoi(c.Args[0])
			if err != nil || v < 1 {
				c.Err(fmt.Errorf("invalid count %q", c.Args[0]))
				return
			}
			n = v
		}
		x, y := ShellFrom(c).Loop.Session.Snapshot()
		for i := len(y) - n; i < len(y); i++ {
			if i < 0 || math.IsNaN(y[i]) {
				continue
			}
			c.Printf("x=%-10g %6.0f\n", x[i], y[i])
		}
	}),
}

// WatchCmd resumes the live sample display.
var WatchCmd = ishell.Cmd{
	Name: "watch",
	Help: "watch - print decoded samples as they arrive",
	Func: func(c *ishell.Context) {
		ShellFrom(c).setWatching(true)
	},
}

// PauseCmd pauses the live sample display; decoding continues.
var PauseCmd = ishell.Cmd{
	Name: "pause",
	Help: "pause - stop printing samples (decoding continues)",
	Func: func(c *ishell.Context) {
		ShellFrom(c).setWatching(false)
	},
}
