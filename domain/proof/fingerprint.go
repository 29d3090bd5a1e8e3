package proof

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// fingerprints are keccak256 digests so they compare byte-for-byte with what
// the EVM-side resolver stores as bytes32
var fingerprintPattern = regexp.MustCompile(`^0x[0-9a-f]{64}$`)

// Fingerprint hashes the canonical serialization of p. The serialization uses
// a fixed, alphabetically sorted key order, so the result is independent of
// how the struct was populated; any field change changes the digest.
func Fingerprint(p *Proof) string {
	canonical := fmt.Sprintf(
		`{"address":%q,"chain":%q,"nonce":%q,"signature":%q,"verifiedAt":%d}`,
		p.Address, p.Chain, p.Nonce, p.Signature, p.VerifiedAt,
	)
	return hexutil.Encode(crypto.Keccak256([]byte(canonical)))
}

// IsFingerprint reports whether s has the fixed-prefix lowercase hex shape
// produced by Fingerprint and CombineHash.
func IsFingerprint(s string) bool {
	return fingerprintPattern.MatchString(s)
}

// CombineHash derives one digest from ordered string inputs by hashing their
// delimiter-joined concatenation, for composite identifiers.
func CombineHash(parts ...string) string {
	return hexutil.Encode(crypto.Keccak256([]byte(strings.Join(parts, ":"))))
}
