package katcp

import (
	"bufio"
	"context"
	"net"
	"strings"
	"sync"

	"ndops/internal/logging"
)

// Handler answers one request with a reply and optional informs.
type Handler func(req Message) (Message, []Message)

// Server is a line-oriented KATCP endpoint, one goroutine per connection.
// It backs the simulated digitiser fleet and the protocol tests.
type Server struct {
	handler Handler
	ln      net.Listener
	mu      sync.Mutex
	conns   map[net.Conn]struct{}
}

// NewServer creates a server answering requests with handler.
func NewServer(handler Handler) *Server {
	return &Server{handler: handler, conns: make(map[net.Conn]struct{})}
}

// Listen binds addr and starts accepting connections until ctx is done.
// It returns the bound address (useful with ":0").
func (s *Server) Listen(ctx context.Context, addr string) (string, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", err
	}
	s.ln = ln
	go func() {
		<-ctx.Done()
		s.Close()
	}()
	go s.acceptLoop(ctx)
	return ln.Addr().String(), nil
}

func (s *Server) acceptLoop(ctx context.Context) {
	log := logging.FromContext(ctx)
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if ctx.Err() == nil && !strings.Contains(err.Error(), "use of closed") {
				log.Warn("accept failed", "err", err)
			}
			return
		}
		s.mu.Lock()
		s.conns[conn] = struct{}{}
		s.mu.Unlock()
		go s.serveConn(ctx, conn)
	}
}

func (s *Server) serveConn(ctx context.Context, conn net.Conn) {
	log := logging.FromContext(ctx)
	defer func() {
		s.mu.Lock()
		delete(s.conns, conn)
		s.mu.Unlock()
		conn.Close()
	}()

	r := bufio.NewReader(conn)
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		req, err := Parse(line)
		if err != nil || req.Type != Request {
			log.Warn("ignoring malformed line", "line", strings.TrimSpace(line))
			continue
		}
		reply, informs := s.handler(req)
		for _, inf := range informs {
			if _, err := conn.Write([]byte(inf.String() + "\n")); err != nil {
				return
			}
		}
		if _, err := conn.Write([]byte(reply.String() + "\n")); err != nil {
			return
		}
	}
}

// Close stops listening and drops all open connections.
func (s *Server) Close() {
	if s.ln != nil {
		s.ln.Close()
	}
	s.mu.Lock()
	for c := range s.conns {
		c.Close()
	}
	s.mu.Unlock()
}
