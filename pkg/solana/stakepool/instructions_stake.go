package stake_pool

import (
	"bytes"
	"crypto/ed25519"
)

var stakeInstructionDiscriminator = []byte{
	206, 176, 202, 18, 200, 209, 179, 108,
}

const (
	StakeInstructionArgsSize = (8 + // amount
		8) // lock_duration

	StakeInstructionSize = (8 + // discriminator
		StakeInstructionArgsSize) // args
)

type StakeInstructionArgs struct {
	Amount       uint64
	LockDuration int64
}

type StakeInstructionAccounts struct {
	User               ed25519.PublicKey
	StakingPool        ed25519.PublicKey
	UserStakingAccount ed25519.PublicKey
	UserTokenAccount   ed25519.PublicKey
	PoolEscrowAccount  ed25519.PublicKey
	Mint               ed25519.PublicKey
}

func NewStakeInstruction(
	accounts *StakeInstructionAccounts,
	args *StakeInstructionArgs,
) Instruction {
	var offset int

	// Serialize instruction arguments
	data := make([]byte, StakeInstructionSize)

	putDiscriminator(data, stakeInstructionDiscriminator, &offset)
	putUint64(data, args.Amount, &offset)
	putInt64(data, args.LockDuration, &offset)

	return Instruction{
		Program: PROGRAM_ID,

		// Instruction args
		Data: data,

		// Instruction accounts
		Accounts: []AccountMeta{
			{
				PublicKey:  accounts.User,
				IsWritable: true,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.StakingPool,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.UserStakingAccount,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.UserTokenAccount,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.PoolEscrowAccount,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Mint,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  TOKEN_2022_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  SYSTEM_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
		},
	}
}

func StakeInstructionFromBinary(data []byte) (*StakeInstructionArgs, error) {
	var offset int
	var discriminator []byte

	if len(data) < StakeInstructionSize {
		return nil, ErrInvalidInstructionData
	}

	getDiscriminator(data, &discriminator, &offset)

	if !bytes.Equal(discriminator, stakeInstructionDiscriminator) {
		return nil, ErrInvalidInstructionData
	}

	var args StakeInstructionArgs
	getUint64(data, &args.Amount, &offset)
	getInt64(data, &args.LockDuration, &offset)

	return &args, nil
}
