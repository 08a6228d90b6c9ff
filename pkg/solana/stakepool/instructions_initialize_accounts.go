package stake_pool

import (
	"bytes"
	"crypto/ed25519"
)

var initializeAccountsInstructionDiscriminator = []byte{
	25, 173, 70, 192, 253, 23, 13, 49,
}

const (
	InitializeAccountsInstructionArgsSize = 0

	InitializeAccountsInstructionSize = (8 + // discriminator
		InitializeAccountsInstructionArgsSize) // args
)

type InitializeAccountsInstructionAccounts struct {
	StakingPool       ed25519.PublicKey
	PoolEscrowAccount ed25519.PublicKey
	Mint              ed25519.PublicKey
	Admin             ed25519.PublicKey
}

func NewInitializeAccountsInstruction(
	accounts *InitializeAccountsInstructionAccounts,
) Instruction {
	var offset int

	data := make([]byte, InitializeAccountsInstructionSize)

	putDiscriminator(data, initializeAccountsInstructionDiscriminator, &offset)

	return Instruction{
		Program: PROGRAM_ID,

		Data: data,

		// Instruction accounts
		Accounts: []AccountMeta{
			{
				PublicKey:  accounts.StakingPool,
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
				PublicKey:  accounts.Admin,
				IsWritable: true,
				IsSigner:   true,
			},
			{
				PublicKey:  SYSTEM_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  TOKEN_2022_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
		},
	}
}

func initializeAccountsInstructionMatches(data []byte) bool {
	if len(data) < InitializeAccountsInstructionSize {
		return false
	}

	var offset int
	var discriminator []byte
	getDiscriminator(data, &discriminator, &offset)

	return bytes.Equal(discriminator, initializeAccountsInstructionDiscriminator)
}
