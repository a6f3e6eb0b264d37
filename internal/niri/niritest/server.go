// Package niritest runs a fake niri control socket for tests.
package niritest

import (
	"bufio"
	"net"
	"path/filepath"
	"sync"
	"testing"
)

// Responder maps one received request line (without newline) to raw response bytes.
type Responder func(request []byte) []byte

// Server accepts connections, records each request line, writes the responder's
// bytes and closes the connection, like the real compositor.
type Server struct {
	Path string

	listener net.Listener
	respond  Responder

	mu       sync.Mutex
	requests []string
	wg       sync.WaitGroup
}

// Start listens on a temp socket and serves until the test finishes.
func Start(t *testing.T, respond Responder) *Server {
	t.Helper()

	path := filepath.Join(t.TempDir(), "niri.sock")
	listener, err := net.Listen("unix", path)
	if err != nil {
		t.Fatalf("listen %s: %v", path, err)
	}

	s := &Server{Path: path, listener: listener, respond: respond}
	s.wg.Add(1)
	go s.serve()
	t.Cleanup(s.Close)
	return s
}

// Static answers every request with the same bytes.
func Static(response string) Responder {
	return func([]byte) []byte { return []byte(response) }
}

// Sequence answers requests in order; the last response repeats.
func Sequence(responses ...string) Responder {
	var mu sync.Mutex
	next := 0
	return func([]byte) []byte {
		mu.Lock()
		defer mu.Unlock()
		i := next
		if i >= len(responses) {
			i = len(responses) - 1
		} else {
			next++
		}
		return []byte(responses[i])
	}
}

// Requests returns the request lines received so far.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

// Close stops accepting and waits for in-flight connections.
func (s *Server) Close() {
	_ = s.listener.Close()
	s.wg.Wait()
}

func (s *Server) serve() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}
		s.wg.Add(1)
		go s.handle(conn)
	}
}

func (s *Server) handle(c net.Conn) {
	defer s.wg.Done()
	defer c.Close()

	line, err := bufio.NewReader(c).ReadBytes('\n')
	if err != nil {
		return
	}
	line = line[:len(line)-1]

	s.mu.Lock()
	s.requests = append(s.requests, string(line))
	s.mu.Unlock()

	if s.respond == nil {
		return
	}
	_, _ = c.Write(s.respond(line))
}
