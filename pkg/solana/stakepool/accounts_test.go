package stake_pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStakingPoolAccount_RoundTrip(t *testing.T) {
	expected := &StakingPoolAccount{
		Admin: testAdmin,
		Mint:  mustBase58Decode("kinXdEcpDQeHPEuQnqmUgtYykqKGVFq6CeVX5iAHJq6"),

		TotalStaked:        1_500_000_000_000,
		TotalWeight:        NewUint128(2_250_000_000_000),
		AccRewardPerWeight: Uint128{Lo: 987654321, Hi: 1},
		EpochIndex:         7,

		TokenType: TokenTypeSpl,
		Bump:      255,
	}

	marshalled := expected.Marshal()
	require.Equal(t, StakingPoolAccountSize, len(marshalled))
	assert.Equal(t, stakingPoolAccountDiscriminator, marshalled[:8])

	var actual StakingPoolAccount
	require.NoError(t, actual.Unmarshal(marshalled))
	assert.Equal(t, expected, &actual)
}

func TestStakingPoolAccount_InvalidData(t *testing.T) {
	var account StakingPoolAccount

	assert.Equal(t, ErrInvalidAccountData, account.Unmarshal(nil))
	assert.Equal(t, ErrInvalidAccountData, account.Unmarshal(make([]byte, StakingPoolAccountSize-1)))

	// Wrong discriminator
	data := make([]byte, StakingPoolAccountSize)
	copy(data, userStakingAccountDiscriminator)
	assert.Equal(t, ErrInvalidAccountData, account.Unmarshal(data))
}

func TestUserStakingAccount_RoundTrip(t *testing.T) {
	expected := &UserStakingAccount{
		Owner: testUser,

		StakedAmount:   5_000_000_000,
		StakeTimestamp: 1_700_000_000,
		LockDuration:   600,

		Weight:         NewUint128(7_500_000_000),
		RewardDebt:     NewUint128(123),
		PendingRewards: 456,
	}

	marshalled := expected.Marshal()
	require.Equal(t, UserStakingAccountSize, len(marshalled))
	assert.Equal(t, userStakingAccountDiscriminator, marshalled[:8])

	var actual UserStakingAccount
	require.NoError(t, actual.Unmarshal(marshalled))
	assert.Equal(t, expected, &actual)
}

func TestUserStakingAccount_ExtraBytes(t *testing.T) {
	expected := &UserStakingAccount{
		Owner:        testUser,
		StakedAmount: 1,
	}

	// On-chain accounts may carry trailing padding beyond the struct layout.
	marshalled := append(expected.Marshal(), make([]byte, 16)...)

	var actual UserStakingAccount
	require.NoError(t, actual.Unmarshal(marshalled))
	assert.Equal(t, expected.StakedAmount, actual.StakedAmount)
	assert.EqualValues(t, expected.Owner, actual.Owner)
}
