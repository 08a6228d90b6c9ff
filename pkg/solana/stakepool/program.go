package stake_pool

import (
	"crypto/ed25519"
	"errors"

	"github.com/multiversed/staking-server/pkg/solana"
)

var (
	ErrInvalidProgram         = errors.New("invalid program id")
	ErrInvalidAccountData     = errors.New("unexpected account data")
	ErrInvalidInstructionData = errors.New("unexpected instruction data")
)

var (
	PROGRAM_ADDRESS = mustBase58Decode("A5sbJW4hgVtaYU8TvfJc8bxeWsvFgapc88qX1VruTfq4")
	PROGRAM_ID      = ed25519.PublicKey(PROGRAM_ADDRESS)
)

var (
	SYSTEM_PROGRAM_ID        = ed25519.PublicKey(mustBase58Decode("11111111111111111111111111111111"))
	TOKEN_2022_PROGRAM_ID    = ed25519.PublicKey(mustBase58Decode("TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb"))
	SPL_TOKEN_PROGRAM_ID     = ed25519.PublicKey(mustBase58Decode("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"))
	SYSVAR_RENT_PUBKEY       = ed25519.PublicKey(mustBase58Decode("SysvarRent111111111111111111111111111111111"))
	ASSOCIATED_TOKEN_PROGRAM = ed25519.PublicKey(mustBase58Decode("ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL"))
)

// SetProgramID overrides the program this package targets. Deployments
// select the staking program through configuration rather than a rebuild.
func SetProgramID(id ed25519.PublicKey) {
	PROGRAM_ADDRESS = []byte(id)
	PROGRAM_ID = id
}

// Custom program errors, offset by the Anchor user error space.
const (
	ErrorAlreadyInitialized solana.CustomError = iota + 6000
	ErrorInsufficientStakedBalance
	ErrorUnauthorized
	ErrorMathOverflow
	ErrorStakeLockActive
	ErrorInvalidLockDuration
	ErrorInvalidTokenProgram
	ErrorInvalidEscrowAccount
	ErrorInsufficientBalance
)

// AccountMeta represents the account information required
// for building transactions.
type AccountMeta struct {
	PublicKey  ed25519.PublicKey
	IsWritable bool
	IsSigner   bool
}

// Instruction represents a transaction instruction.
type Instruction struct {
	Program  ed25519.PublicKey
	Accounts []AccountMeta
	Data     []byte
}
