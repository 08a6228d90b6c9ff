package stake_pool

import (
	"bytes"
	"crypto/ed25519"
)

var unstakeInstructionDiscriminator = []byte{
	90, 95, 107, 42, 205, 124, 50, 225,
}

const (
	UnstakeInstructionArgsSize = 8 // amount

	UnstakeInstructionSize = (8 + // discriminator
		UnstakeInstructionArgsSize) // args
)

type UnstakeInstructionArgs struct {
	Amount uint64
}

type UnstakeInstructionAccounts struct {
	User               ed25519.PublicKey
	StakingPool        ed25519.PublicKey
	UserStakingAccount ed25519.PublicKey
	UserTokenAccount   ed25519.PublicKey
	PoolEscrowAccount  ed25519.PublicKey
	Mint               ed25519.PublicKey
}

func NewUnstakeInstruction(
	accounts *UnstakeInstructionAccounts,
	args *UnstakeInstructionArgs,
) Instruction {
	var offset int

	// Serialize instruction arguments
	data := make([]byte, UnstakeInstructionSize)

	putDiscriminator(data, unstakeInstructionDiscriminator, &offset)
	putUint64(data, args.Amount, &offset)

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

func UnstakeInstructionFromBinary(data []byte) (*UnstakeInstructionArgs, error) {
	var offset int
	var discriminator []byte

	if len(data) < UnstakeInstructionSize {
		return nil, ErrInvalidInstructionData
	}

	getDiscriminator(data, &discriminator, &offset)

	if !bytes.Equal(discriminator, unstakeInstructionDiscriminator) {
		return nil, ErrInvalidInstructionData
	}

	var args UnstakeInstructionArgs
	getUint64(data, &args.Amount, &offset)

	return &args, nil
}
