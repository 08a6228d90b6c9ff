package staking

import (
	"crypto/ed25519"
	"math"
	"time"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/multiversed/staking-server/pkg/multiversed/common"
	"github.com/multiversed/staking-server/pkg/solana"
	stake_pool "github.com/multiversed/staking-server/pkg/solana/stakepool"
	"github.com/multiversed/staking-server/pkg/solana/token"
)

// unstakeScalingFactor converts whole-token unstake amounts into base
// units. The on-chain program takes stake amounts in base units but
// unstake amounts in whole tokens, so the client scales before
// building the instruction.
const unstakeScalingFactor = 1_000_000_000

// Orchestrator drives staking pool operations end to end. Every
// operation blocks until the transaction is confirmed or definitively
// failed.
//
// The admin account signs pool-scoped instructions only. User
// instructions are signed by keys from the keyring, never by the admin.
type Orchestrator struct {
	log *logrus.Entry

	sc         solana.Client
	commitment solana.Commitment

	admin   *common.Account
	keyring *Keyring

	resolver *TokenAccountResolver

	tokenType stake_pool.TokenType
}

// PoolView is the addresses of an initialized staking pool.
type PoolView struct {
	PoolAddress   string `json:"poolAddress"`
	EscrowAddress string `json:"escrowAddress"`
}

func NewOrchestrator(
	sc solana.Client,
	programID ed25519.PublicKey,
	admin *common.Account,
	keyring *Keyring,
	commitment solana.Commitment,
) *Orchestrator {
	if len(programID) == ed25519.PublicKeySize {
		stake_pool.SetProgramID(programID)
	}

	return &Orchestrator{
		log: logrus.StandardLogger().WithField("type", "staking/orchestrator"),

		sc:         sc,
		commitment: commitment,

		admin:   admin,
		keyring: keyring,

		resolver: NewTokenAccountResolver(sc, commitment),

		tokenType: stake_pool.TokenTypeSpl,
	}
}

// InitializePool creates the staking pool and escrow accounts for the
// admin's pool over the given mint. A pool that already exists surfaces
// as a submission error with ErrAlreadyInitialized; there is no
// pre-check, the ledger is the arbiter.
func (o *Orchestrator) InitializePool(mint *common.Account) (*PoolView, error) {
	log := o.log.WithFields(logrus.Fields{
		"method": "InitializePool",
		"mint":   mint.PublicKey().ToBase58(),
	})

	poolAccounts, err := common.GetPoolAccounts(o.admin, mint, o.tokenType)
	if err != nil {
		return nil, newError(KindDerivation, err)
	}

	instruction := stake_pool.NewInitializeAccountsInstruction(
		&stake_pool.InitializeAccountsInstructionAccounts{
			StakingPool:       poolAccounts.Pool.PublicKey().ToBytes(),
			PoolEscrowAccount: poolAccounts.Escrow.PublicKey().ToBytes(),
			Mint:              mint.PublicKey().ToBytes(),
			Admin:             o.admin.PublicKey().ToBytes(),
		},
	).ToLegacyInstruction()

	sig, err := o.submitAndWait(instruction, o.admin)
	if err != nil {
		return nil, err
	}

	log.WithField("signature", base58Signature(sig)).Info("pool initialized")

	return &PoolView{
		PoolAddress:   poolAccounts.Pool.PublicKey().ToBase58(),
		EscrowAddress: poolAccounts.Escrow.PublicKey().ToBase58(),
	}, nil
}

// Stake locks amountBaseUnits of the user's tokens for the given
// duration. The user's associated token account is created first when
// it doesn't exist. A zero lockDuration selects the shortest period
// the program accepts.
func (o *Orchestrator) Stake(mint *common.Account, userPublicKey string, amountBaseUnits uint64, lockDuration time.Duration) error {
	if amountBaseUnits == 0 {
		return newError(KindDerivation, errors.New("stake amount must be positive"))
	}

	if lockDuration == 0 {
		lockDuration = stake_pool.AllowedLockDurations[0]
	}
	if !stake_pool.IsValidLockDuration(lockDuration) {
		return newError(KindDerivation, errors.Errorf("unsupported lock duration: %s", lockDuration))
	}

	user, err := o.keyring.Get(userPublicKey)
	if err != nil {
		return newError(KindDerivation, err)
	}

	accounts, err := o.getUserInstructionAccounts(user, mint)
	if err != nil {
		return err
	}

	instruction := stake_pool.NewStakeInstruction(
		accounts,
		&stake_pool.StakeInstructionArgs{
			Amount:       amountBaseUnits,
			LockDuration: int64(lockDuration / time.Second),
		},
	).ToLegacyInstruction()

	sig, err := o.submitAndWait(instruction, user)
	if err != nil {
		return err
	}

	o.log.WithFields(logrus.Fields{
		"method":    "Stake",
		"user":      userPublicKey,
		"amount":    amountBaseUnits,
		"signature": base58Signature(sig),
	}).Info("stake confirmed")

	return nil
}

// Unstake withdraws amountTokens whole tokens from the user's position.
// Withdrawing more than is staked surfaces as a submission error with
// ErrInsufficientStake and leaves the position unchanged.
func (o *Orchestrator) Unstake(mint *common.Account, userPublicKey string, amountTokens uint64) error {
	if amountTokens == 0 {
		return newError(KindDerivation, errors.New("unstake amount must be positive"))
	}
	if amountTokens > math.MaxUint64/unstakeScalingFactor {
		return newError(KindDerivation, errors.New("unstake amount overflows base units"))
	}

	user, err := o.keyring.Get(userPublicKey)
	if err != nil {
		return newError(KindDerivation, err)
	}

	accounts, err := o.getUserInstructionAccounts(user, mint)
	if err != nil {
		return err
	}

	instruction := stake_pool.NewUnstakeInstruction(
		&stake_pool.UnstakeInstructionAccounts{
			User:               accounts.User,
			StakingPool:        accounts.StakingPool,
			UserStakingAccount: accounts.UserStakingAccount,
			UserTokenAccount:   accounts.UserTokenAccount,
			PoolEscrowAccount:  accounts.PoolEscrowAccount,
			Mint:               accounts.Mint,
		},
		&stake_pool.UnstakeInstructionArgs{
			Amount: amountTokens * unstakeScalingFactor,
		},
	).ToLegacyInstruction()

	sig, err := o.submitAndWait(instruction, user)
	if err != nil {
		return err
	}

	o.log.WithFields(logrus.Fields{
		"method":    "Unstake",
		"user":      userPublicKey,
		"amount":    amountTokens,
		"signature": base58Signature(sig),
	}).Info("unstake confirmed")

	return nil
}

// FetchUserStake reads a user's staking position. A user who never
// staked gets a NotFound error, never a zeroed view. The view's
// amounts use the decimal precision of the pool's mint.
func (o *Orchestrator) FetchUserStake(userPublicKey string) (*UserStakeView, error) {
	user, err := common.NewAccountFromPublicKeyString(userPublicKey)
	if err != nil {
		return nil, newError(KindDerivation, err)
	}

	poolAddress, _, err := stake_pool.GetStakingPoolAddress(&stake_pool.GetStakingPoolAddressArgs{
		Admin:     o.admin.PublicKey().ToBytes(),
		TokenType: o.tokenType,
	})
	if err != nil {
		return nil, newError(KindDerivation, err)
	}

	poolInfo, err := o.sc.GetAccountInfo(poolAddress, o.commitment)
	if err == solana.ErrNoAccountInfo {
		return nil, newError(KindNotFound, errors.New("staking pool not initialized"))
	} else if err != nil {
		return nil, newError(KindAccountResolution, err)
	}

	var poolState stake_pool.StakingPoolAccount
	if err := poolState.Unmarshal(poolInfo.Data); err != nil {
		return nil, newError(KindAccountResolution, errors.Wrap(err, "invalid pool account data"))
	}

	mintState, err := token.GetMint(o.sc, poolState.Mint, o.commitment)
	if err != nil {
		return nil, newError(KindAccountResolution, errors.Wrap(err, "error reading mint"))
	}

	stateAddress, _, err := stake_pool.GetUserStakeAddress(&stake_pool.GetUserStakeAddressArgs{
		Pool: poolAddress,
		User: user.PublicKey().ToBytes(),
	})
	if err != nil {
		return nil, newError(KindDerivation, err)
	}

	stateInfo, err := o.sc.GetAccountInfo(stateAddress, o.commitment)
	if err == solana.ErrNoAccountInfo {
		return nil, newError(KindNotFound, ErrStakeNotFound)
	} else if err != nil {
		return nil, newError(KindAccountResolution, err)
	}

	var state stake_pool.UserStakingAccount
	if err := state.Unmarshal(stateInfo.Data); err != nil {
		return nil, newError(KindAccountResolution, errors.Wrap(err, "invalid user staking account data"))
	}

	return DecodeUserStake(&state, mintState.Decimals), nil
}

// getUserInstructionAccounts derives every account a user-scoped
// instruction needs, provisioning the token account when required.
func (o *Orchestrator) getUserInstructionAccounts(user *common.Account, mint *common.Account) (*stake_pool.StakeInstructionAccounts, error) {
	poolAccounts, err := common.GetPoolAccounts(o.admin, mint, o.tokenType)
	if err != nil {
		return nil, newError(KindDerivation, err)
	}

	stakeAccounts, err := user.GetStakeAccounts(poolAccounts.Pool)
	if err != nil {
		return nil, newError(KindDerivation, err)
	}

	ata, _, err := o.resolver.Resolve(user, mint)
	if err != nil {
		return nil, err
	}

	return &stake_pool.StakeInstructionAccounts{
		User:               user.PublicKey().ToBytes(),
		StakingPool:        poolAccounts.Pool.PublicKey().ToBytes(),
		UserStakingAccount: stakeAccounts.State.PublicKey().ToBytes(),
		UserTokenAccount:   ata.PublicKey().ToBytes(),
		PoolEscrowAccount:  poolAccounts.Escrow.PublicKey().ToBytes(),
		Mint:               mint.PublicKey().ToBytes(),
	}, nil
}

func (o *Orchestrator) submitAndWait(instruction solana.Instruction, signer *common.Account) (solana.Signature, error) {
	var sig solana.Signature

	txn := solana.NewTransaction(signer.PublicKey().ToBytes(), instruction)

	blockhash, err := o.sc.GetLatestBlockhash()
	if err != nil {
		return sig, newError(KindSubmission, errors.Wrap(err, "error getting latest blockhash"))
	}
	txn.SetBlockhash(blockhash)

	if err := txn.Sign(ed25519.PrivateKey(signer.PrivateKey().ToBytes())); err != nil {
		return sig, newError(KindSubmission, errors.Wrap(err, "error signing transaction"))
	}

	sig, err = o.sc.SubmitTransaction(txn, o.commitment)
	if err != nil {
		return sig, classifySubmission(err)
	}

	status, err := o.sc.GetSignatureStatus(sig, o.commitment)
	if err != nil {
		if errors.Is(err, solana.ErrConfirmationsNotReached) || errors.Is(err, solana.ErrSignatureNotFound) {
			return sig, newError(KindUnconfirmed, err)
		}
		return sig, classifySubmission(err)
	}

	// Submission skips preflight, so program rejections land on chain as
	// failed transactions and only surface through the status.
	if status.ErrorResult != nil {
		if instructionErr := status.ErrorResult.InstructionError(); instructionErr != nil && instructionErr.CustomError() != nil {
			return sig, classifySubmission(*instructionErr.CustomError())
		}
		return sig, classifySubmission(status.ErrorResult)
	}

	return sig, nil
}

func base58Signature(sig solana.Signature) string {
	return base58.Encode(sig[:])
}
