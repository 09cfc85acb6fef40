package messaging

import "time"

type ServerOpt func(*Server)

func WithStartTimeout(d time.Duration) ServerOpt {
	return func(s *Server) {
		s.startupTimeout = d
	}
}

func WithHost(host string) ServerOpt {
	return func(s *Server) {
		s.host = host
	}
}

func WithPort(port int) ServerOpt {
	return func(s *Server) {
		s.port = port
	}
}
