package stake_pool

import (
	"bytes"
	"crypto/ed25519"
	"strconv"

	"github.com/mr-tron/base58/base58"
)

// StakingPoolAccount holds the global pool state for a single token type.
type StakingPoolAccount struct {
	Admin ed25519.PublicKey
	Mint  ed25519.PublicKey

	TotalStaked        uint64
	TotalWeight        Uint128
	AccRewardPerWeight Uint128
	EpochIndex         uint64

	TokenType TokenType
	Bump      uint8
}

const StakingPoolAccountSize = (8 + // discriminator
	32 + // admin
	32 + // mint
	8 + // total_staked
	16 + // total_weight
	16 + // acc_reward_per_weight
	8 + // epoch_index
	1 + // token_type
	1) // bump

var stakingPoolAccountDiscriminator = []byte{203, 19, 214, 220, 220, 154, 24, 102}

func (obj *StakingPoolAccount) String() string {
	var admin, mint string

	if obj.Admin != nil {
		admin = base58.Encode(obj.Admin)
	}
	if obj.Mint != nil {
		mint = base58.Encode(obj.Mint)
	}

	return "StakingPoolAccount {" +
		"  admin='" + admin + "'" +
		", mint='" + mint + "'" +
		", total_staked='" + strconv.FormatUint(obj.TotalStaked, 10) + "'" +
		", total_weight='" + obj.TotalWeight.String() + "'" +
		", acc_reward_per_weight='" + obj.AccRewardPerWeight.String() + "'" +
		", epoch_index='" + strconv.FormatUint(obj.EpochIndex, 10) + "'" +
		", token_type='" + obj.TokenType.String() + "'" +
		", bump='" + strconv.Itoa(int(obj.Bump)) + "'" +
		"}"
}

func (obj *StakingPoolAccount) Marshal() []byte {
	data := make([]byte, StakingPoolAccountSize)

	var offset int

	putDiscriminator(data, stakingPoolAccountDiscriminator, &offset)
	putKey(data, obj.Admin, &offset)
	putKey(data, obj.Mint, &offset)
	putUint64(data, obj.TotalStaked, &offset)
	putUint128(data, obj.TotalWeight, &offset)
	putUint128(data, obj.AccRewardPerWeight, &offset)
	putUint64(data, obj.EpochIndex, &offset)
	putTokenType(data, obj.TokenType, &offset)
	putUint8(data, obj.Bump, &offset)

	return data
}

func (obj *StakingPoolAccount) Unmarshal(data []byte) error {
	if len(data) < StakingPoolAccountSize {
		return ErrInvalidAccountData
	}

	var offset int
	var discriminator []byte

	getDiscriminator(data, &discriminator, &offset)
	if !bytes.Equal(discriminator, stakingPoolAccountDiscriminator) {
		return ErrInvalidAccountData
	}

	getKey(data, &obj.Admin, &offset)
	getKey(data, &obj.Mint, &offset)
	getUint64(data, &obj.TotalStaked, &offset)
	getUint128(data, &obj.TotalWeight, &offset)
	getUint128(data, &obj.AccRewardPerWeight, &offset)
	getUint64(data, &obj.EpochIndex, &offset)
	getTokenType(data, &obj.TokenType, &offset)
	getUint8(data, &obj.Bump, &offset)

	return nil
}
