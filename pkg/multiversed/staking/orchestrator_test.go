package staking

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multiversed/staking-server/pkg/multiversed/common"
	"github.com/multiversed/staking-server/pkg/solana"
	stake_pool "github.com/multiversed/staking-server/pkg/solana/stakepool"
	"github.com/multiversed/staking-server/pkg/solana/token"
)

type testEnv struct {
	sc *stubClient

	admin *common.Account
	mint  *common.Account
	user  *common.Account

	orchestrator *Orchestrator
}

func setup(t *testing.T) *testEnv {
	sc := newStubClient()

	admin, err := common.NewRandomAccount()
	require.NoError(t, err)
	mint, err := common.NewRandomAccount()
	require.NoError(t, err)
	user, err := common.NewRandomAccount()
	require.NoError(t, err)

	keyring := NewKeyring()
	require.NoError(t, keyring.Add(user))

	// The user's token account already exists so operations don't need
	// to provision it.
	ata, err := user.ToAssociatedTokenAccount(mint)
	require.NoError(t, err)
	sc.setAccount(ata.PublicKey().ToBytes(), token.ProgramKey, nil)

	return &testEnv{
		sc: sc,

		admin: admin,
		mint:  mint,
		user:  user,

		orchestrator: NewOrchestrator(sc, stake_pool.PROGRAM_ID, admin, keyring, solana.CommitmentConfirmed),
	}
}

// failedStatus is a confirmed signature status for a transaction the
// ledger rejected with a program error code.
func failedStatus(t *testing.T, code solana.CustomError) *solana.SignatureStatus {
	txnErr, err := solana.TransactionErrorFromInstructionError(&solana.InstructionError{
		Index: 0,
		Err:   code,
	})
	require.NoError(t, err)

	return &solana.SignatureStatus{
		ConfirmationStatus: "finalized",
		ErrorResult:        txnErr,
	}
}

func TestInitializePool(t *testing.T) {
	env := setup(t)

	view, err := env.orchestrator.InitializePool(env.mint)
	require.NoError(t, err)

	poolAccounts, err := common.GetPoolAccounts(env.admin, env.mint, stake_pool.TokenTypeSpl)
	require.NoError(t, err)
	assert.Equal(t, poolAccounts.Pool.PublicKey().ToBase58(), view.PoolAddress)
	assert.Equal(t, poolAccounts.Escrow.PublicKey().ToBase58(), view.EscrowAddress)

	require.Len(t, env.sc.submitted, 1)
	decompiled, err := stake_pool.InitializeAccountsInstructionFromLegacyInstruction(env.sc.submitted[0], 0)
	require.NoError(t, err)
	assert.EqualValues(t, env.admin.PublicKey().ToBytes(), decompiled.Admin)
	assert.EqualValues(t, env.mint.PublicKey().ToBytes(), decompiled.Mint)
}

func TestInitializePool_AlreadyInitialized(t *testing.T) {
	env := setup(t)
	env.sc.submitErrs = []error{stake_pool.ErrorAlreadyInitialized}

	_, err := env.orchestrator.InitializePool(env.mint)
	assert.True(t, IsKind(err, KindSubmission))
	assert.True(t, errors.Is(err, ErrAlreadyInitialized))

	// Same rejection surfaced through the signature status instead of
	// the submission RPC.
	env = setup(t)
	env.sc.sigStatuses = []*solana.SignatureStatus{failedStatus(t, stake_pool.ErrorAlreadyInitialized)}

	_, err = env.orchestrator.InitializePool(env.mint)
	assert.True(t, IsKind(err, KindSubmission))
	assert.True(t, errors.Is(err, ErrAlreadyInitialized))
}

func TestStake(t *testing.T) {
	env := setup(t)

	require.NoError(t, env.orchestrator.Stake(env.mint, env.user.PublicKey().ToBase58(), 1_000_000_000, 600*time.Second))

	require.Len(t, env.sc.submitted, 1)
	args, accounts, err := stake_pool.StakeInstructionFromLegacyInstruction(env.sc.submitted[0], 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1_000_000_000, args.Amount)
	assert.EqualValues(t, 600, args.LockDuration)
	assert.EqualValues(t, env.user.PublicKey().ToBytes(), accounts.User)

	poolAccounts, err := common.GetPoolAccounts(env.admin, env.mint, stake_pool.TokenTypeSpl)
	require.NoError(t, err)
	assert.EqualValues(t, poolAccounts.Pool.PublicKey().ToBytes(), accounts.StakingPool)
	assert.EqualValues(t, poolAccounts.Escrow.PublicKey().ToBytes(), accounts.PoolEscrowAccount)

	// The transaction is signed by the user, not the admin
	assert.EqualValues(t, env.user.PublicKey().ToBytes(), env.sc.submitted[0].Message.Accounts[0])
}

func TestStake_DefaultsLockDuration(t *testing.T) {
	env := setup(t)

	require.NoError(t, env.orchestrator.Stake(env.mint, env.user.PublicKey().ToBase58(), 1, 0))

	args, _, err := stake_pool.StakeInstructionFromLegacyInstruction(env.sc.submitted[0], 0)
	require.NoError(t, err)
	assert.EqualValues(t, 120, args.LockDuration)
}

func TestStake_InvalidInputs(t *testing.T) {
	env := setup(t)

	err := env.orchestrator.Stake(env.mint, env.user.PublicKey().ToBase58(), 0, 0)
	assert.True(t, IsKind(err, KindDerivation))

	err = env.orchestrator.Stake(env.mint, env.user.PublicKey().ToBase58(), 1, time.Minute)
	assert.True(t, IsKind(err, KindDerivation))

	// Unknown signer
	other, err := common.NewRandomAccount()
	require.NoError(t, err)
	err = env.orchestrator.Stake(env.mint, other.PublicKey().ToBase58(), 1, 0)
	assert.True(t, IsKind(err, KindDerivation))

	assert.Empty(t, env.sc.submitted)
}

func TestUnstake_ScalesToBaseUnits(t *testing.T) {
	env := setup(t)

	user := env.user.PublicKey().ToBase58()

	// Stake a billion base units, then unstake a single token. The two
	// amounts net to zero on chain.
	require.NoError(t, env.orchestrator.Stake(env.mint, user, 1_000_000_000, 0))
	require.NoError(t, env.orchestrator.Unstake(env.mint, user, 1))

	require.Len(t, env.sc.submitted, 2)

	stakeArgs, _, err := stake_pool.StakeInstructionFromLegacyInstruction(env.sc.submitted[0], 0)
	require.NoError(t, err)
	unstakeArgs, _, err := stake_pool.UnstakeInstructionFromLegacyInstruction(env.sc.submitted[1], 0)
	require.NoError(t, err)

	assert.Equal(t, stakeArgs.Amount, unstakeArgs.Amount)
}

func TestUnstake_Insufficient(t *testing.T) {
	env := setup(t)
	env.sc.submitErrs = []error{stake_pool.ErrorInsufficientStakedBalance}

	err := env.orchestrator.Unstake(env.mint, env.user.PublicKey().ToBase58(), 100)
	assert.True(t, IsKind(err, KindSubmission))
	assert.True(t, errors.Is(err, ErrInsufficientStake))

	// Same rejection surfaced through the signature status instead of
	// the submission RPC.
	env = setup(t)
	env.sc.sigStatuses = []*solana.SignatureStatus{failedStatus(t, stake_pool.ErrorInsufficientStakedBalance)}

	err = env.orchestrator.Unstake(env.mint, env.user.PublicKey().ToBase58(), 100)
	assert.True(t, IsKind(err, KindSubmission))
	assert.True(t, errors.Is(err, ErrInsufficientStake))
}

func TestStake_FailedOnChain(t *testing.T) {
	env := setup(t)
	env.sc.sigStatuses = []*solana.SignatureStatus{failedStatus(t, stake_pool.ErrorInsufficientBalance)}

	err := env.orchestrator.Stake(env.mint, env.user.PublicKey().ToBase58(), 1, 0)
	assert.True(t, IsKind(err, KindSubmission))
	assert.True(t, errors.Is(err, ErrInsufficientStake))
	require.Len(t, env.sc.submitted, 1)

	// Failures without a program error code still fail the operation.
	env = setup(t)
	env.sc.sigStatuses = []*solana.SignatureStatus{{
		ConfirmationStatus: "finalized",
		ErrorResult:        solana.NewTransactionError(solana.TransactionErrorBlockhashNotFound),
	}}

	err = env.orchestrator.Stake(env.mint, env.user.PublicKey().ToBase58(), 1, 0)
	assert.True(t, IsKind(err, KindSubmission))
}

func TestStake_ConfirmationTimeout(t *testing.T) {
	env := setup(t)
	env.sc.sigStatusErrs = []error{solana.ErrConfirmationsNotReached}

	err := env.orchestrator.Stake(env.mint, env.user.PublicKey().ToBase58(), 1, 0)
	assert.True(t, IsKind(err, KindUnconfirmed))
}

func TestFetchUserStake(t *testing.T) {
	env := setup(t)

	poolAccounts, err := common.GetPoolAccounts(env.admin, env.mint, stake_pool.TokenTypeSpl)
	require.NoError(t, err)

	// Pool not initialized yet
	_, err = env.orchestrator.FetchUserStake(env.user.PublicKey().ToBase58())
	assert.True(t, IsKind(err, KindNotFound))

	poolState := stake_pool.StakingPoolAccount{
		Admin:     env.admin.PublicKey().ToBytes(),
		Mint:      env.mint.PublicKey().ToBytes(),
		TokenType: stake_pool.TokenTypeSpl,
		Bump:      poolAccounts.PoolBump,
	}
	env.sc.setAccount(poolAccounts.Pool.PublicKey().ToBytes(), stake_pool.PROGRAM_ID, poolState.Marshal())

	mintState := token.Mint{
		Supply:        1_000_000_000_000,
		Decimals:      9,
		IsInitialized: true,
	}
	env.sc.setAccount(env.mint.PublicKey().ToBytes(), token.ProgramKey, mintState.Marshal())

	// Pool exists, user never staked
	_, err = env.orchestrator.FetchUserStake(env.user.PublicKey().ToBase58())
	assert.True(t, IsKind(err, KindNotFound))
	assert.True(t, errors.Is(err, ErrStakeNotFound))

	stakeAccounts, err := env.user.GetStakeAccounts(poolAccounts.Pool)
	require.NoError(t, err)

	userState := stake_pool.UserStakingAccount{
		Owner:          env.user.PublicKey().ToBytes(),
		StakedAmount:   5_000_000_000,
		StakeTimestamp: 1_700_000_000,
		LockDuration:   600,
	}
	env.sc.setAccount(stakeAccounts.State.PublicKey().ToBytes(), stake_pool.PROGRAM_ID, userState.Marshal())

	view, err := env.orchestrator.FetchUserStake(env.user.PublicKey().ToBase58())
	require.NoError(t, err)
	assert.Equal(t, env.user.PublicKey().ToBase58(), view.Owner)
	assert.Equal(t, 5.0, view.StakedAmount)
	assert.Equal(t, "2023-11-14T22:13:20.000Z", view.StakeTimestamp)
	assert.EqualValues(t, 600, view.LockDurationSeconds)
}
