package pinata

import (
	"errors"

	"golang.org/x/xerrors"

	"github.com/crossbind/goapi/base/ctx"
)

var (
	ErrRequestFailed = errors.New("request failed")
)

type PinataMetadata struct {
	Name string `json:"name,omitempty"`
	// can only store string, bool, int
	KeyValues map[string]interface{} `json:"keyvalues,omitempty"`
}

type PinOptions struct {
	Metadata      *PinataMetadata `json:"pinataMetadata,omitempty"`
	PinataContent interface{}     `json:"pinataContent"`
}

type Options func(*PinOptions) error

func GetPinOptions(opts ...Options) (*PinOptions, error) {
	res := &PinOptions{}

	for _, opt := range opts {
		if err := opt(res); err != nil {
			return nil, err
		}
	}

	return res, nil
}

func WithMetadata(metadata PinataMetadata) Options {
	return func(options *PinOptions) error {
		for key, val := range metadata.KeyValues {
			switch val.(type) {
			case string, bool, int, int32, int64:
			default:
				return xerrors.Errorf("unsupported keyvalue type for %s", key)
			}
		}
		options.Metadata = &metadata
		return nil
	}
}

// Service pins JSON documents to IPFS through the pinata API and returns
// their content hash.
type Service interface {
	PinJson(c ctx.Ctx, value interface{}, opts ...Options) (string, error)
}
