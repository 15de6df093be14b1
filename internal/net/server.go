package net

import (
	"context"
	"errors"
	"net"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// LineHandler consumes one line read from a session.
type LineHandler interface {
	HandleLine(ctx context.Context, sess *Session, line string)
}

// Greeter is implemented by handlers that greet new sessions.
type Greeter interface {
	Greeting() string
}

// Server accepts console connections and feeds each session's lines to a
// LineHandler, one line at a time per session.
type Server struct {
	listener net.Listener
	nextID   atomic.Uint64
	opts     SessionOptions
	handler  LineHandler
	log      *zap.Logger

	mu       sync.Mutex
	sessions map[uint64]*Session
	wg       sync.WaitGroup
	closeCh  chan struct{}
}

func NewServer(bindAddr string, opts SessionOptions, handler LineHandler, log *zap.Logger) (*Server, error) {
	ln, err := net.Listen("tcp", bindAddr)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener: ln,
		opts:     opts,
		handler:  handler,
		log:      log,
		sessions: make(map[uint64]*Session),
		closeCh:  make(chan struct{}),
	}, nil
}

// AcceptLoop accepts connections until Shutdown. Each session is served
// by its own goroutine.
func (s *Server) AcceptLoop(ctx context.Context) {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.closeCh:
				return
			default:
			}
			if errors.Is(err, net.ErrClosed) {
				return
			}
			s.log.Error("accept failed", zap.Error(err))
			continue
		}

		id := s.nextID.Add(1)
		sess := NewSession(conn, id, s.opts, s.log)

		s.mu.Lock()
		select {
		case <-s.closeCh:
			s.mu.Unlock()
			conn.Close()
			return
		default:
		}
		s.sessions[id] = sess
		s.wg.Add(1)
		s.mu.Unlock()

		sess.Start()
		s.log.Info("console connected", zap.Uint64("session", id), zap.String("ip", sess.IP))
		if g, ok := s.handler.(Greeter); ok {
			sess.Send(g.Greeting())
		}
		go s.serve(ctx, sess)
	}
}

func (s *Server) serve(ctx context.Context, sess *Session) {
	defer s.wg.Done()
	defer func() {
		sess.Close()
		s.mu.Lock()
		delete(s.sessions, sess.ID)
		s.mu.Unlock()
		s.log.Info("console disconnected", zap.Uint64("session", sess.ID))
	}()

	for {
		select {
		case line := <-sess.InQueue:
			s.handler.HandleLine(ctx, sess, line)
		case <-sess.Done():
			return
		case <-ctx.Done():
			return
		}
	}
}

// SessionCount returns the number of open sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Shutdown stops accepting, closes every session and waits for their
// serve goroutines.
func (s *Server) Shutdown() {
	s.mu.Lock()
	close(s.closeCh)
	for _, sess := range s.sessions {
		sess.Close()
	}
	s.mu.Unlock()

	s.listener.Close()
	s.wg.Wait()
}

// Addr returns the listener's address.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}
