package repository

import (
	"github.com/crossbind/goapi/base/ctx"
	"github.com/crossbind/goapi/base/log"
	"github.com/crossbind/goapi/domain/proof"
	"github.com/crossbind/goapi/service/pinata"
)

type pinataStorage struct {
	pinata pinata.Service
}

// NewPinataStorage pins raw proofs to IPFS through the pinata API.
func NewPinataStorage(svc pinata.Service) proof.Storage {
	return &pinataStorage{pinata: svc}
}

func (s *pinataStorage) Store(c ctx.Ctx, p *proof.Proof) (string, error) {
	hash, err := s.pinata.PinJson(c, p, pinata.WithMetadata(pinata.PinataMetadata{
		Name: proof.Fingerprint(p),
		KeyValues: map[string]interface{}{
			"chain":   p.Chain.String(),
			"address": string(p.Address),
		},
	}))
	if err != nil {
		c.WithFields(log.Fields{"err": err, "chain": p.Chain}).Error("failed to pin proof")
		return "", err
	}
	return hash, nil
}

func (s *pinataStorage) Name() string {
	return "pinata"
}
