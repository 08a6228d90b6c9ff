package stake_pool

import (
	"math/big"
	"time"
)

// TokenType selects which asset a pool stakes.
type TokenType uint8

const (
	TokenTypeSpl TokenType = iota
	TokenTypeSol
)

func (t TokenType) String() string {
	switch t {
	case TokenTypeSpl:
		return "spl"
	case TokenTypeSol:
		return "sol"
	}
	return "unknown"
}

func putTokenType(dst []byte, v TokenType, offset *int) {
	putUint8(dst, uint8(v), offset)
}

func getTokenType(src []byte, dst *TokenType, offset *int) {
	var v uint8
	getUint8(src, &v, offset)
	*dst = TokenType(v)
}

// Uint128 is a little-endian u128 as laid out on chain.
type Uint128 struct {
	Lo uint64
	Hi uint64
}

func NewUint128(lo uint64) Uint128 {
	return Uint128{Lo: lo}
}

func (v Uint128) IsZero() bool {
	return v.Lo == 0 && v.Hi == 0
}

func (v Uint128) BigInt() *big.Int {
	r := new(big.Int).SetUint64(v.Hi)
	r.Lsh(r, 64)
	return r.Add(r, new(big.Int).SetUint64(v.Lo))
}

func (v Uint128) String() string {
	return v.BigInt().String()
}

// Lock durations accepted by the staking program.
var AllowedLockDurations = []time.Duration{
	120 * time.Second,
	300 * time.Second,
	600 * time.Second,
	1200 * time.Second,
}

// IsValidLockDuration reports whether the program will accept the duration.
func IsValidLockDuration(d time.Duration) bool {
	for _, allowed := range AllowedLockDurations {
		if d == allowed {
			return true
		}
	}
	return false
}
