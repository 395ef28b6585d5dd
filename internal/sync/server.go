package sync

import (
	"bufio"
	"log"
	"net"
)

// Server accepts raw TCP subscribers. Clients receive newline-delimited
// JSON events; anything they send is ignored.
type Server struct {
	Addr string
	Hub  *Hub

	ln net.Listener
}

func NewServer(addr string, hub *Hub) *Server {
	return &Server{Addr: addr, Hub: hub}
}

func (s *Server) Run() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	s.ln = ln
	log.Printf("[sync] tcp listening on %s", s.Addr)

	for {
		conn, err := ln.Accept()
		if err != nil {
			return err
		}
		go s.handle(conn)
	}
}

func (s *Server) handle(conn net.Conn) {
	s.Hub.Add(conn)
	s.Hub.Welcome(conn)

	// Drain until the peer hangs up.
	r := bufio.NewReader(conn)
	for {
		if _, err := r.ReadByte(); err != nil {
			break
		}
	}
	s.Hub.Remove(conn)
}

func (s *Server) Close() error {
	if s.ln == nil {
		return nil
	}
	return s.ln.Close()
}
