// Conversion to the transaction-building types in the solana package.

package stake_pool

import (
	"bytes"

	"github.com/multiversed/staking-server/pkg/solana"
)

func (i Instruction) ToLegacyInstruction() solana.Instruction {
	legacyAccountMeta := make([]solana.AccountMeta, len(i.Accounts))
	for i, accountMeta := range i.Accounts {
		legacyAccountMeta[i] = solana.AccountMeta{
			PublicKey:  accountMeta.PublicKey,
			IsSigner:   accountMeta.IsSigner,
			IsWritable: accountMeta.IsWritable,
		}
	}

	return solana.Instruction{
		Program:  PROGRAM_ID,
		Accounts: legacyAccountMeta,
		Data:     i.Data,
	}
}

func StakeInstructionFromLegacyInstruction(txn solana.Transaction, idx int) (*StakeInstructionArgs, *StakeInstructionAccounts, error) {
	instruction := txn.Message.Instructions[idx]

	programAccount := txn.Message.Accounts[instruction.ProgramIndex]
	if !bytes.Equal(PROGRAM_ADDRESS, programAccount) {
		return nil, nil, ErrInvalidInstructionData
	}

	args, err := StakeInstructionFromBinary(instruction.Data)
	if err != nil {
		return nil, nil, err
	}

	if len(instruction.Accounts) < 6 {
		return nil, nil, ErrInvalidInstructionData
	}

	var accounts StakeInstructionAccounts
	accounts.User = txn.Message.Accounts[instruction.Accounts[0]]
	accounts.StakingPool = txn.Message.Accounts[instruction.Accounts[1]]
	accounts.UserStakingAccount = txn.Message.Accounts[instruction.Accounts[2]]
	accounts.UserTokenAccount = txn.Message.Accounts[instruction.Accounts[3]]
	accounts.PoolEscrowAccount = txn.Message.Accounts[instruction.Accounts[4]]
	accounts.Mint = txn.Message.Accounts[instruction.Accounts[5]]

	return args, &accounts, nil
}

func UnstakeInstructionFromLegacyInstruction(txn solana.Transaction, idx int) (*UnstakeInstructionArgs, *UnstakeInstructionAccounts, error) {
	instruction := txn.Message.Instructions[idx]

	programAccount := txn.Message.Accounts[instruction.ProgramIndex]
	if !bytes.Equal(PROGRAM_ADDRESS, programAccount) {
		return nil, nil, ErrInvalidInstructionData
	}

	args, err := UnstakeInstructionFromBinary(instruction.Data)
	if err != nil {
		return nil, nil, err
	}

	if len(instruction.Accounts) < 6 {
		return nil, nil, ErrInvalidInstructionData
	}

	var accounts UnstakeInstructionAccounts
	accounts.User = txn.Message.Accounts[instruction.Accounts[0]]
	accounts.StakingPool = txn.Message.Accounts[instruction.Accounts[1]]
	accounts.UserStakingAccount = txn.Message.Accounts[instruction.Accounts[2]]
	accounts.UserTokenAccount = txn.Message.Accounts[instruction.Accounts[3]]
	accounts.PoolEscrowAccount = txn.Message.Accounts[instruction.Accounts[4]]
	accounts.Mint = txn.Message.Accounts[instruction.Accounts[5]]

	return args, &accounts, nil
}

func InitializeAccountsInstructionFromLegacyInstruction(txn solana.Transaction, idx int) (*InitializeAccountsInstructionAccounts, error) {
	instruction := txn.Message.Instructions[idx]

	programAccount := txn.Message.Accounts[instruction.ProgramIndex]
	if !bytes.Equal(PROGRAM_ADDRESS, programAccount) {
		return nil, ErrInvalidInstructionData
	}

	if !initializeAccountsInstructionMatches(instruction.Data) {
		return nil, ErrInvalidInstructionData
	}

	if len(instruction.Accounts) < 4 {
		return nil, ErrInvalidInstructionData
	}

	var accounts InitializeAccountsInstructionAccounts
	accounts.StakingPool = txn.Message.Accounts[instruction.Accounts[0]]
	accounts.PoolEscrowAccount = txn.Message.Accounts[instruction.Accounts[1]]
	accounts.Mint = txn.Message.Accounts[instruction.Accounts[2]]
	accounts.Admin = txn.Message.Accounts[instruction.Accounts[3]]

	return &accounts, nil
}
