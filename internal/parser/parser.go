package parser

import "git.lost.host/meutraa/minefix/internal/sim"

type Parser interface {
	Parse(data []byte) (*sim.Simfile, error)
	Serialize(s *sim.Simfile) []byte
}
