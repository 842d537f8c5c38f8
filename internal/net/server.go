package net

import (
	"fmt"
	"net"
	"sync/atomic"

	"go.uber.org/zap"
)

// Server accepts TCP connections and creates Sessions. New/dead sessions are
// communicated to the game loop via channels; no subsystem outside the game
// loop touches a Session's live state.
type Server struct {
	listener net.Listener
	nextID   atomic.Uint64
	newConns chan *Session
	deadCh   chan uint64
	inSize   int
	outSize  int
	log      *zap.Logger
	closeCh  chan struct{}
}

func NewServer(bindAddr string, inSize, outSize int, log *zap.Logger) (*Server, error) {
	ln, err := net.Listen("tcp", bindAddr)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener: ln,
		newConns: make(chan *Session, 64),
		deadCh:   make(chan uint64, 64),
		inSize:   inSize,
		outSize:  outSize,
		log:      log,
		closeCh:  make(chan struct{}),
	}, nil
}

// AcceptLoop runs in its own goroutine. It accepts connections, starts each
// session's reader/writer goroutines, and pushes them onto newConns.
func (s *Server) AcceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.closeCh:
				return
			default:
			}
			s.log.Error("accept failed", zap.Error(err))
			continue
		}

		id := s.nextID.Add(1)
		sess := NewSession(conn, id, s.inSize, s.outSize, s.log)
		sess.Start()

		s.log.Info(fmt.Sprintf("connection accepted session=%d ip=%s", id, sess.IP))

		select {
		case s.newConns <- sess:
		default:
			s.log.Warn("new-connection queue full, rejecting")
			sess.Close()
		}
	}
}

func (s *Server) NewSessions() <-chan *Session { return s.newConns }

// NotifyDead reports a dead session ID to the game loop.
func (s *Server) NotifyDead(sessionID uint64) {
	select {
	case s.deadCh <- sessionID:
	default:
	}
}

func (s *Server) DeadSessions() <-chan uint64 { return s.deadCh }

// Shutdown stops accepting new connections. Existing sessions are drained by
// the caller (cmd/mudcore's graceful-shutdown sequence), not here.
func (s *Server) Shutdown() {
	close(s.closeCh)
	s.listener.Close()
}

func (s *Server) Addr() net.Addr { return s.listener.Addr() }
