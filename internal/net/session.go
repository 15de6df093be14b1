package net

import (
	"bufio"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Session is one console connection. Reading and writing run in their own
// goroutines; commands are consumed from InQueue by the server.
type Session struct {
	ID   uint64
	conn net.Conn
	IP   string

	InQueue  chan string
	OutQueue chan string

	owner atomic.Bool

	closeCh   chan struct{}
	closeOnce sync.Once
	closed    atomic.Bool
	quitCh    chan struct{}
	quitOnce  sync.Once

	maxLine      int
	readTimeout  time.Duration
	writeTimeout time.Duration

	// Per-second line limiter, touched only by readLoop.
	linesPerSec int
	lineCount   int
	resetAt     int64

	log *zap.Logger
}

// SessionOptions are the per-connection limits.
type SessionOptions struct {
	InSize, OutSize int
	MaxLineLength   int
	LinesPerSecond  int // 0 = unlimited
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
}

func NewSession(conn net.Conn, id uint64, opts SessionOptions, log *zap.Logger) *Session {
	ip := conn.RemoteAddr().String()
	if host, _, err := net.SplitHostPort(ip); err == nil {
		ip = host
	}
	return &Session{
		ID:           id,
		conn:         conn,
		IP:           ip,
		InQueue:      make(chan string, opts.InSize),
		OutQueue:     make(chan string, opts.OutSize),
		closeCh:      make(chan struct{}),
		quitCh:       make(chan struct{}),
		maxLine:      opts.MaxLineLength,
		readTimeout:  opts.ReadTimeout,
		writeTimeout: opts.WriteTimeout,
		linesPerSec:  opts.LinesPerSecond,
		log:          log.With(zap.Uint64("session", id), zap.String("ip", ip)),
	}
}

// Start launches the reader and writer goroutines.
func (s *Session) Start() {
	go s.readLoop()
	go s.writeLoop()
}

// Owner reports whether the session has logged in as an owner.
func (s *Session) Owner() bool { return s.owner.Load() }

func (s *Session) SetOwner(v bool) { s.owner.Store(v) }

// Send queues lines for the writer. It never blocks: a session whose
// output queue is full is disconnected.
func (s *Session) Send(lines ...string) {
	for _, line := range lines {
		if s.closed.Load() {
			return
		}
		select {
		case s.OutQueue <- line:
		default:
			s.log.Warn("output queue full, dropping slow client")
			s.Close()
			return
		}
	}
}

// Close shuts the session down. Safe to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		close(s.closeCh)
		s.conn.Close()
	})
}

// Quit closes the session once the lines already queued are written.
func (s *Session) Quit() {
	s.quitOnce.Do(func() { close(s.quitCh) })
}

func (s *Session) IsClosed() bool {
	return s.closed.Load()
}

// Done is closed when the session closes.
func (s *Session) Done() <-chan struct{} {
	return s.closeCh
}

func (s *Session) readLoop() {
	defer s.Close()

	r := bufio.NewReaderSize(s.conn, s.maxLine+2)
	for {
		if s.readTimeout > 0 {
			s.conn.SetReadDeadline(time.Now().Add(s.readTimeout))
		}
		line, err := ReadLine(r, s.maxLine)
		if err != nil {
			if !s.closed.Load() {
				s.log.Debug("read error", zap.Error(err))
			}
			return
		}

		if s.linesPerSec > 0 {
			now := time.Now().Unix()
			if now != s.resetAt {
				s.lineCount = 0
				s.resetAt = now
			}
			s.lineCount++
			if s.lineCount > s.linesPerSec {
				s.log.Warn("line rate exceeded, disconnecting", zap.Int("lps", s.lineCount))
				return
			}
		}

		select {
		case s.InQueue <- line:
		case <-s.closeCh:
			return
		}
	}
}

func (s *Session) writeLoop() {
	defer s.Close()

	for {
		select {
		case line := <-s.OutQueue:
			if !s.write(line) {
				return
			}
		case <-s.quitCh:
			for {
				select {
				case line := <-s.OutQueue:
					if !s.write(line) {
						return
					}
				default:
					return
				}
			}
		case <-s.closeCh:
			return
		}
	}
}

func (s *Session) write(line string) bool {
	if s.writeTimeout > 0 {
		s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
	}
	if err := WriteLine(s.conn, line); err != nil {
		if !s.closed.Load() {
			s.log.Debug("write error", zap.Error(err))
		}
		return false
	}
	return true
}
