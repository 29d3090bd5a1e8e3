package repository

import (
	"bytes"
	"encoding/json"

	shell "github.com/ipfs/go-ipfs-api"

	"github.com/crossbind/goapi/base/ctx"
	"github.com/crossbind/goapi/base/log"
	"github.com/crossbind/goapi/domain/proof"
)

type nodeStorage struct {
	shell *shell.Shell
}

// NewNodeStorage adds raw proofs to a self-hosted IPFS node, for deployments
// that do not want a pinning vendor in the path.
func NewNodeStorage(apiAddr string) proof.Storage {
	return &nodeStorage{shell: shell.NewShell(apiAddr)}
}

func (s *nodeStorage) Store(c ctx.Ctx, p *proof.Proof) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		c.WithField("err", err).Error("failed to marshal proof")
		return "", err
	}

	hash, err := s.shell.Add(bytes.NewReader(data), shell.Pin(true))
	if err != nil {
		c.WithFields(log.Fields{"err": err, "chain": p.Chain}).Error("failed to add proof to ipfs node")
		return "", err
	}
	return hash, nil
}

func (s *nodeStorage) Name() string {
	return "ipfs-node"
}
