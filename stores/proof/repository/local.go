package repository

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/crossbind/goapi/base/ctx"
	"github.com/crossbind/goapi/base/log"
	"github.com/crossbind/goapi/domain/proof"
)

type localStorage struct {
	dir string
}

// NewLocalStorage writes raw proofs as JSON files under dir, one file per
// fingerprint. For local development and tests.
func NewLocalStorage(dir string) proof.Storage {
	return &localStorage{dir: dir}
}

func (s *localStorage) Store(c ctx.Ctx, p *proof.Proof) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		c.WithFields(log.Fields{"err": err, "dir": s.dir}).Error("failed to create proof dir")
		return "", err
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		c.WithField("err", err).Error("failed to marshal proof")
		return "", err
	}

	path := filepath.Join(s.dir, proof.Fingerprint(p)+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		c.WithFields(log.Fields{"err": err, "path": path}).Error("failed to write proof file")
		return "", err
	}
	return path, nil
}

func (s *localStorage) Name() string {
	return "local"
}
