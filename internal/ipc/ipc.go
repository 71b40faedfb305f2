// Package ipc implements the single-instance mechanism: a running webnav
// listens on a per-user Unix domain socket, and later invocations hand
// their arguments over instead of starting a second instance.
//
// The wire format is one JSON-encoded string array per line. A connect
// failure because no socket exists (or nothing listens on it) means "no
// running instance" and is not an error.
package ipc

import (
	"bufio"
	"context"
	"encoding/json"
	"net"
	"os"
	"os/user"
	"path/filepath"
	"sync"
	"time"

	"github.com/conneroisu/webnav/internal/errors"
	"github.com/conneroisu/webnav/internal/logging"
)

const (
	connectTimeout = 100 * time.Millisecond
	writeTimeout   = 1 * time.Second

	// maxLineBytes bounds one argument list on the wire.
	maxLineBytes = 1 << 20
)

// SocketPath returns the path of the per-user IPC socket. name overrides
// the socket file name; empty derives webnav-<username>.
func SocketPath(name string) string {
	if name == "" {
		username := "unknown"
		if u, err := user.Current(); err == nil && u.Username != "" {
			username = u.Username
		}
		name = "webnav-" + username
	}
	dir := os.Getenv("XDG_RUNTIME_DIR")
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, name)
}

// Handler receives the argument lists sent by other instances.
type Handler func(args []string)

// Server listens on the IPC socket and forwards received argument lists to
// its handler.
type Server struct {
	listener net.Listener
	path     string
	handler  Handler
	logger   logging.Logger

	mu     sync.Mutex
	closed bool
}

// Listen binds the IPC socket, removing a stale socket file left behind by
// a crashed instance first.
func Listen(path string, handler Handler, logger logging.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	logger = logger.WithComponent("ipc")

	// A live instance would be connectable; anything else is stale.
	if conn, err := net.DialTimeout("unix", path, connectTimeout); err == nil {
		conn.Close()
		return nil, errors.Newf(errors.ErrorTypeIPC, "already_running",
			"another instance is already listening on %s", path)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, errors.ErrorTypeIPC, "remove_socket",
			"removing stale socket "+path)
	}

	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeIPC, "listen",
			"listening on "+path)
	}

	return &Server{
		listener: listener,
		path:     path,
		handler:  handler,
		logger:   logger,
	}, nil
}

// Path returns the socket path the server is bound to.
func (s *Server) Path() string {
	return s.path
}

// Serve accepts connections until ctx is cancelled or Close is called.
// Connections are handled one at a time; a client only sends a single line
// and disconnects, so there is nothing to parallelize.
func (s *Server) Serve(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.Close()
	}()

	s.logger.Info(ctx, "listening", "socket", s.path)
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.isClosed() || ctx.Err() != nil {
				return nil
			}
			s.logger.Warn(ctx, err, "accept failed")
			continue
		}
		s.handleConn(ctx, conn)
	}
}

func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 4096), maxLineBytes)
	for scanner.Scan() {
		var args []string
		if err := json.Unmarshal(scanner.Bytes(), &args); err != nil {
			s.logger.Warn(ctx, err, "dropping malformed message")
			continue
		}
		s.logger.Debug(ctx, "received args", "count", len(args))
		s.handler(args)
	}
	if err := scanner.Err(); err != nil {
		s.logger.Warn(ctx, err, "reading from client")
	}
}

// Close shuts the server down and removes the socket file.
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	err := s.listener.Close()
	if rmErr := os.Remove(s.path); rmErr != nil && !os.IsNotExist(rmErr) && err == nil {
		err = rmErr
	}
	return err
}

func (s *Server) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// SendToRunningInstance tries to hand args to an already-running instance.
// It returns true when an instance accepted the message and false when no
// instance is listening; other socket failures are errors.
func SendToRunningInstance(path string, args []string) (bool, error) {
	conn, err := net.DialTimeout("unix", path, connectTimeout)
	if err != nil {
		// No socket or nobody listening: not running.
		return false, nil
	}
	defer conn.Close()

	line, err := json.Marshal(args)
	if err != nil {
		return false, errors.Wrap(err, errors.ErrorTypeIPC, "encode",
			"encoding arguments")
	}
	line = append(line, '\n')

	if err := conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return false, errors.Wrap(err, errors.ErrorTypeIPC, "send",
			"setting write deadline")
	}
	if _, err := conn.Write(line); err != nil {
		return false, errors.Wrap(err, errors.ErrorTypeIPC, "send",
			"writing to running instance")
	}
	return true, nil
}
