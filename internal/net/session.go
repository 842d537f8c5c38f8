package net

import (
	"bufio"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Session represents a single telnet connection. Network I/O runs in
// dedicated goroutines; game state is accessed only from the game loop.
// Login/character/playing state lives in internal/session, not here — this
// package only knows how to move lines of text across the wire.
type Session struct {
	ID   uint64
	conn net.Conn
	mu   sync.Mutex // not locked anywhere in this package

	InQueue  chan string // game loop reads input lines from here
	OutQueue chan string // writer goroutine reads output lines from here

	IP string

	closeCh   chan struct{}
	closeOnce sync.Once
	closed    atomic.Bool

	log *zap.Logger
}

func NewSession(conn net.Conn, id uint64, inSize, outSize int, log *zap.Logger) *Session {
	return &Session{
		ID:       id,
		conn:     conn,
		InQueue:  make(chan string, inSize),
		OutQueue: make(chan string, outSize),
		IP:       conn.RemoteAddr().String(),
		closeCh:  make(chan struct{}),
		log:      log.With(zap.Uint64("session", id)),
	}
}

// Start launches the reader and writer goroutines. The first prompt is the
// session-state machine's job (internal/session), not the transport's.
func (s *Session) Start() {
	go s.readLoop()
	go s.writeLoop()
}

// Send queues a line for sending. Non-blocking: if OutQueue is full, the
// session is disconnected (backpressure).
func (s *Session) Send(line string) {
	if s.closed.Load() {
		return
	}
	select {
	case s.OutQueue <- line:
	default:
		s.log.Warn("output queue full, dropping slow connection")
		s.Close()
	}
}

// Close gracefully shuts down the session.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		close(s.closeCh)
		s.conn.Close()
	})
}

func (s *Session) IsClosed() bool {
	return s.closed.Load()
}

// readLoop runs in its own goroutine. It reads lines from the TCP
// connection and pushes them onto InQueue for the game loop to consume.
func (s *Session) readLoop() {
	defer s.Close()

	r := bufio.NewReader(s.conn)
	for {
		select {
		case <-s.closeCh:
			return
		default:
		}

		line, err := ReadLine(r)
		if err != nil {
			if !s.closed.Load() {
				s.log.Debug("read error", zap.Error(err))
			}
			return
		}

		// Block until InQueue has space or the session closes. A per-session
		// goroutine blocking here only stalls this one client, never another.
		select {
		case s.InQueue <- line:
		case <-s.closeCh:
			return
		}
	}
}

// writeLoop runs in its own goroutine. It reads lines from OutQueue and
// writes them to the TCP connection.
func (s *Session) writeLoop() {
	defer s.Close()

	w := bufio.NewWriter(s.conn)
	for {
		select {
		case line := <-s.OutQueue:
			s.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := WriteLine(w, line); err != nil {
				if !s.closed.Load() {
					s.log.Debug("write error", zap.Error(err))
				}
				return
			}
			if err := w.Flush(); err != nil {
				if !s.closed.Load() {
					s.log.Debug("flush error", zap.Error(err))
				}
				return
			}
		case <-s.closeCh:
			return
		}
	}
}
