package bitcoin

import (
	"regexp"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
)

// fixed-format gates for mainnet addresses; anything failing these never
// reaches signature recovery
var (
	legacyPattern  = regexp.MustCompile(`^[13][a-km-zA-HJ-NP-Z1-9]{25,34}$`)
	segwitPattern  = regexp.MustCompile(`^bc1q[qpzry9x8gf2tvdw0s3jn54khce6mua7l]{38,58}$`)
	taprootPattern = regexp.MustCompile(`^bc1p[qpzry9x8gf2tvdw0s3jn54khce6mua7l]{58}$`)
)

// IsValidAddress reports whether address matches one of the supported
// mainnet formats: legacy base58 (P2PKH/P2SH), segwit bech32, or taproot.
func IsValidAddress(address string) bool {
	return legacyPattern.MatchString(address) ||
		segwitPattern.MatchString(address) ||
		taprootPattern.MatchString(address)
}

// decodeAddress parses address against mainnet params after the format gate.
func decodeAddress(address string) (btcutil.Address, error) {
	return btcutil.DecodeAddress(address, &chaincfg.MainNetParams)
}
