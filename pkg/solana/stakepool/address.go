package stake_pool

import (
	"crypto/ed25519"

	"github.com/multiversed/staking-server/pkg/solana"
)

var (
	stakingPoolPrefix = []byte("staking_pool")
	escrowPrefix      = []byte("escrow")
	solVaultPrefix    = []byte("sol_vault")
	userStakingPrefix = []byte("user_staking")
)

type GetStakingPoolAddressArgs struct {
	Admin     ed25519.PublicKey
	TokenType TokenType
}

type GetPoolEscrowAddressArgs struct {
	Pool ed25519.PublicKey
}

type GetSolVaultAddressArgs struct {
	Pool ed25519.PublicKey
}

type GetUserStakeAddressArgs struct {
	Pool ed25519.PublicKey
	User ed25519.PublicKey
}

func GetStakingPoolAddress(args *GetStakingPoolAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		stakingPoolPrefix,
		args.Admin,
		[]byte{uint8(args.TokenType)},
	)
}

func GetPoolEscrowAddress(args *GetPoolEscrowAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		escrowPrefix,
		args.Pool,
	)
}

func GetSolVaultAddress(args *GetSolVaultAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		solVaultPrefix,
		args.Pool,
	)
}

func GetUserStakeAddress(args *GetUserStakeAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		userStakingPrefix,
		args.Pool,
		args.User,
	)
}
