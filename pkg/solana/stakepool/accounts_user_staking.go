package stake_pool

import (
	"bytes"
	"crypto/ed25519"
	"strconv"

	"github.com/mr-tron/base58/base58"
)

// UserStakingAccount holds a single user's position within a pool.
type UserStakingAccount struct {
	Owner ed25519.PublicKey

	StakedAmount   uint64
	StakeTimestamp int64
	LockDuration   int64

	Weight         Uint128
	RewardDebt     Uint128
	PendingRewards uint64
}

const UserStakingAccountSize = (8 + // discriminator
	32 + // owner
	8 + // staked_amount
	8 + // stake_timestamp
	8 + // lock_duration
	16 + // weight
	16 + // reward_debt
	8) // pending_rewards

var userStakingAccountDiscriminator = []byte{10, 199, 254, 184, 17, 28, 254, 10}

func (obj *UserStakingAccount) String() string {
	var owner string
	if obj.Owner != nil {
		owner = base58.Encode(obj.Owner)
	}

	return "UserStakingAccount {" +
		"  owner='" + owner + "'" +
		", staked_amount='" + strconv.FormatUint(obj.StakedAmount, 10) + "'" +
		", stake_timestamp='" + strconv.FormatInt(obj.StakeTimestamp, 10) + "'" +
		", lock_duration='" + strconv.FormatInt(obj.LockDuration, 10) + "'" +
		", weight='" + obj.Weight.String() + "'" +
		", reward_debt='" + obj.RewardDebt.String() + "'" +
		", pending_rewards='" + strconv.FormatUint(obj.PendingRewards, 10) + "'" +
		"}"
}

func (obj *UserStakingAccount) Marshal() []byte {
	data := make([]byte, UserStakingAccountSize)

	var offset int

	putDiscriminator(data, userStakingAccountDiscriminator, &offset)
	putKey(data, obj.Owner, &offset)
	putUint64(data, obj.StakedAmount, &offset)
	putInt64(data, obj.StakeTimestamp, &offset)
	putInt64(data, obj.LockDuration, &offset)
	putUint128(data, obj.Weight, &offset)
	putUint128(data, obj.RewardDebt, &offset)
	putUint64(data, obj.PendingRewards, &offset)

	return data
}

func (obj *UserStakingAccount) Unmarshal(data []byte) error {
	if len(data) < UserStakingAccountSize {
		return ErrInvalidAccountData
	}

	var offset int
	var discriminator []byte

	getDiscriminator(data, &discriminator, &offset)
	if !bytes.Equal(discriminator, userStakingAccountDiscriminator) {
		return ErrInvalidAccountData
	}

	getKey(data, &obj.Owner, &offset)
	getUint64(data, &obj.StakedAmount, &offset)
	getInt64(data, &obj.StakeTimestamp, &offset)
	getInt64(data, &obj.LockDuration, &offset)
	getUint128(data, &obj.Weight, &offset)
	getUint128(data, &obj.RewardDebt, &offset)
	getUint64(data, &obj.PendingRewards, &offset)

	return nil
}
