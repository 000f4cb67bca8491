package utils

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"
)

const gracefulEnvKey = "GRACEFUL_RESTART"

// RunGraceful binds addr and serves handler with zero-downtime restart
// support.
func RunGraceful(addr string, handler http.Handler) error {
	srv, err := NewGraceServer(addr, handler)
	if err != nil {
		return err
	}
	return srv.ListenAndServe()
}

// GraceServer wraps http.Server with zero-downtime restart support.
// On SIGUSR2 the listener fd is handed to a fresh child process; the old
// process then drains in-flight requests and exits.
type GraceServer struct {
	srv      *http.Server
	listener net.Listener
}

// NewGraceServer builds a server bound to addr. When the process was
// spawned by a graceful restart it reuses the inherited listener fd
// instead of binding again.
func NewGraceServer(addr string, handler http.Handler) (*GraceServer, error) {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	var ln net.Listener
	var err error
	if os.Getenv(gracefulEnvKey) == "1" {
		f := os.NewFile(3, "")
		ln, err = net.FileListener(f)
		if err != nil {
			return nil, fmt.Errorf("inherit listener: %w", err)
		}
		// Tell the parent we are ready so it can stop accepting.
		if ppid := os.Getppid(); ppid > 1 {
			_ = syscall.Kill(ppid, syscall.SIGTERM)
		}
	} else {
		ln, err = net.Listen("tcp", addr)
		if err != nil {
			return nil, fmt.Errorf("listen %s: %w", addr, err)
		}
	}

	return &GraceServer{srv: srv, listener: ln}, nil
}

// ListenAndServe serves until SIGINT/SIGTERM (drain and exit) or
// SIGUSR2 (fork child with the listener, then drain).
func (g *GraceServer) ListenAndServe() error {
	serveErr := make(chan error, 1)
	go func() {
		if err := g.srv.Serve(g.listener); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM, syscall.SIGUSR2)

	for {
		select {
		case err := <-serveErr:
			return err
		case s := <-sig:
			switch s {
			case syscall.SIGUSR2:
				if err := g.forkChild(); err != nil {
					if Sugar != nil {
						Sugar.Errorf("graceful restart failed: %v", err)
					}
					continue
				}
				return g.shutdown()
			default:
				return g.shutdown()
			}
		}
	}
}

func (g *GraceServer) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if Sugar != nil {
		Sugar.Info("draining connections")
	}
	return g.srv.Shutdown(ctx)
}

func (g *GraceServer) forkChild() error {
	tl, ok := g.listener.(*net.TCPListener)
	if !ok {
		return fmt.Errorf("listener does not support fd handoff")
	}
	f, err := tl.File()
	if err != nil {
		return fmt.Errorf("dup listener fd: %w", err)
	}

	cmd := exec.Command(os.Args[0], os.Args[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.ExtraFiles = []*os.File{f}
	cmd.Env = append(os.Environ(), gracefulEnvKey+"=1")
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("spawn child: %w", err)
	}
	if Sugar != nil {
		Sugar.Infof("spawned child pid=%d", cmd.Process.Pid)
	}
	return nil
}
