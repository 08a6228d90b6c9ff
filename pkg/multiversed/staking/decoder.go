package staking

import (
	"math"
	"math/big"
	"time"

	"github.com/mr-tron/base58"

	stake_pool "github.com/multiversed/staking-server/pkg/solana/stakepool"
)

// Timestamps are rendered in UTC with millisecond precision.
const timestampFormat = "2006-01-02T15:04:05.000Z"

// UserStakeView is a user staking position converted into display units.
type UserStakeView struct {
	Owner          string  `json:"owner"`
	StakedAmount   float64 `json:"stakedAmount"`
	StakeTimestamp string  `json:"stakeTimestamp"`

	LockDurationSeconds int64   `json:"lockDurationSeconds"`
	RewardDebt          float64 `json:"rewardDebt"`
	PendingRewards      float64 `json:"pendingRewards"`
}

// DecodeUserStake converts on-chain user staking state into display
// units using the mint's actual decimal precision.
func DecodeUserStake(state *stake_pool.UserStakingAccount, decimals uint8) *UserStakeView {
	factor := math.Pow10(int(decimals))

	rewardDebt, _ := new(big.Float).SetInt(state.RewardDebt.BigInt()).Float64()

	return &UserStakeView{
		Owner:          base58.Encode(state.Owner),
		StakedAmount:   float64(state.StakedAmount) / factor,
		StakeTimestamp: formatTimestamp(state.StakeTimestamp),

		LockDurationSeconds: state.LockDuration,
		RewardDebt:          rewardDebt / factor,
		PendingRewards:      float64(state.PendingRewards) / factor,
	}
}

func formatTimestamp(unixSeconds int64) string {
	return time.Unix(unixSeconds, 0).UTC().Format(timestampFormat)
}
