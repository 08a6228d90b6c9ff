package common

import (
	"bytes"
	"crypto/ed25519"

	"filippo.io/edwards25519"
	"github.com/pkg/errors"

	stake_pool "github.com/multiversed/staking-server/pkg/solana/stakepool"
	"github.com/multiversed/staking-server/pkg/solana/token"
)

type Account struct {
	publicKey  *Key
	privateKey *Key // Optional
}

// PoolAccounts bundles every derived address for a staking pool.
type PoolAccounts struct {
	Admin *Account
	Mint  *Account

	TokenType stake_pool.TokenType

	Pool     *Account
	PoolBump uint8

	Escrow     *Account
	EscrowBump uint8

	SolVault     *Account
	SolVaultBump uint8
}

// StakeAccounts bundles the derived addresses for a user's position
// within a pool.
type StakeAccounts struct {
	Owner *Account
	Pool  *Account

	State     *Account
	StateBump uint8
}

func NewAccountFromPublicKey(publicKey *Key) (*Account, error) {
	account := &Account{
		publicKey: publicKey,
	}

	if err := account.Validate(); err != nil {
		return nil, err
	}
	return account, nil
}

func NewAccountFromPublicKeyBytes(publicKey []byte) (*Account, error) {
	key, err := NewKeyFromBytes(publicKey)
	if err != nil {
		return nil, err
	}

	return NewAccountFromPublicKey(key)
}

func NewAccountFromPublicKeyString(publicKey string) (*Account, error) {
	key, err := NewKeyFromString(publicKey)
	if err != nil {
		return nil, err
	}

	return NewAccountFromPublicKey(key)
}

func NewAccountFromPrivateKey(privateKey *Key) (*Account, error) {
	publicKeyBytes := ed25519.PrivateKey(privateKey.ToBytes()).Public().(ed25519.PublicKey)
	publicKey, err := NewKeyFromBytes(publicKeyBytes)
	if err != nil {
		return nil, errors.Wrap(err, "error creating public key from private key")
	}

	account := &Account{
		publicKey:  publicKey,
		privateKey: privateKey,
	}

	if err := account.Validate(); err != nil {
		return nil, err
	}
	return account, nil
}

func NewAccountFromPrivateKeyBytes(privateKey []byte) (*Account, error) {
	key, err := NewKeyFromBytes(privateKey)
	if err != nil {
		return nil, err
	}

	return NewAccountFromPrivateKey(key)
}

func NewAccountFromPrivateKeyString(privateKey string) (*Account, error) {
	key, err := NewKeyFromString(privateKey)
	if err != nil {
		return nil, err
	}

	return NewAccountFromPrivateKey(key)
}

func NewRandomAccount() (*Account, error) {
	key, err := NewRandomKey()
	if err != nil {
		return nil, err
	}

	account, err := NewAccountFromPrivateKey(key)
	if err != nil {
		return nil, errors.Wrap(err, "invalid account")
	}

	return account, nil
}

func (a *Account) PublicKey() *Key {
	return a.publicKey
}

func (a *Account) PrivateKey() *Key {
	return a.privateKey
}

func (a *Account) Sign(message []byte) ([]byte, error) {
	if a.privateKey == nil {
		return nil, errors.New("private key not available")
	}

	signature := ed25519.Sign(a.privateKey.ToBytes(), message)
	return signature, nil
}

func (a *Account) ToAssociatedTokenAccount(mint *Account) (*Account, error) {
	if err := a.Validate(); err != nil {
		return nil, errors.Wrap(err, "error validating owner account")
	}

	ata, err := token.GetAssociatedAccount(a.PublicKey().ToBytes(), mint.PublicKey().ToBytes())
	if err != nil {
		return nil, err
	}

	return NewAccountFromPublicKeyBytes(ata)
}

// GetPoolAccounts derives every pool address owned by an admin for a
// given token type.
func GetPoolAccounts(admin, mint *Account, tokenType stake_pool.TokenType) (*PoolAccounts, error) {
	if err := admin.Validate(); err != nil {
		return nil, errors.Wrap(err, "error validating admin account")
	}

	poolAddress, poolBump, err := stake_pool.GetStakingPoolAddress(&stake_pool.GetStakingPoolAddressArgs{
		Admin:     admin.PublicKey().ToBytes(),
		TokenType: tokenType,
	})
	if err != nil {
		return nil, errors.Wrap(err, "error getting staking pool address")
	}

	escrowAddress, escrowBump, err := stake_pool.GetPoolEscrowAddress(&stake_pool.GetPoolEscrowAddressArgs{
		Pool: poolAddress,
	})
	if err != nil {
		return nil, errors.Wrap(err, "error getting pool escrow address")
	}

	solVaultAddress, solVaultBump, err := stake_pool.GetSolVaultAddress(&stake_pool.GetSolVaultAddressArgs{
		Pool: poolAddress,
	})
	if err != nil {
		return nil, errors.Wrap(err, "error getting sol vault address")
	}

	poolAccount, err := NewAccountFromPublicKeyBytes(poolAddress)
	if err != nil {
		return nil, errors.Wrap(err, "invalid pool address")
	}

	escrowAccount, err := NewAccountFromPublicKeyBytes(escrowAddress)
	if err != nil {
		return nil, errors.Wrap(err, "invalid escrow address")
	}

	solVaultAccount, err := NewAccountFromPublicKeyBytes(solVaultAddress)
	if err != nil {
		return nil, errors.Wrap(err, "invalid sol vault address")
	}

	return &PoolAccounts{
		Admin: admin,
		Mint:  mint,

		TokenType: tokenType,

		Pool:     poolAccount,
		PoolBump: poolBump,

		Escrow:     escrowAccount,
		EscrowBump: escrowBump,

		SolVault:     solVaultAccount,
		SolVaultBump: solVaultBump,
	}, nil
}

// GetStakeAccounts derives the user staking state address for this
// account within a pool.
func (a *Account) GetStakeAccounts(pool *Account) (*StakeAccounts, error) {
	if err := a.Validate(); err != nil {
		return nil, errors.Wrap(err, "error validating owner account")
	}

	stateAddress, stateBump, err := stake_pool.GetUserStakeAddress(&stake_pool.GetUserStakeAddressArgs{
		Pool: pool.PublicKey().ToBytes(),
		User: a.PublicKey().ToBytes(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "error getting user stake address")
	}

	stateAccount, err := NewAccountFromPublicKeyBytes(stateAddress)
	if err != nil {
		return nil, errors.Wrap(err, "invalid state address")
	}

	return &StakeAccounts{
		Owner: a,
		Pool:  pool,

		State:     stateAccount,
		StateBump: stateBump,
	}, nil
}

func (a *Account) IsOnCurve() bool {
	return isOnCurve(a.PublicKey().ToBytes())
}

func (a *Account) Validate() error {
	if a == nil {
		return errors.New("account is nil")
	}

	if err := a.PublicKey().Validate(); err != nil {
		return errors.Wrap(err, "error validating public key")
	}

	if !a.PublicKey().IsPublic() {
		return errors.New("public key isn't public")
	}

	// Private keys are optional
	if a.privateKey == nil {
		return nil
	}

	if err := a.privateKey.Validate(); err != nil {
		return errors.Wrap(err, "error validating private key")
	}

	if a.privateKey.IsPublic() {
		return errors.New("private key isn't private")
	}

	expectedPublicKey := ed25519.PrivateKey(a.privateKey.ToBytes()).Public().(ed25519.PublicKey)
	if !bytes.Equal(a.PublicKey().ToBytes(), expectedPublicKey) {
		return errors.New("private key doesn't map to public key")
	}

	return nil
}

func (a *Account) String() string {
	return a.PublicKey().ToBase58()
}

func isOnCurve(pubKey ed25519.PublicKey) bool {
	if len(pubKey) != ed25519.PublicKeySize {
		return false
	}

	// Try to parse the public key as a point
	_, err := new(edwards25519.Point).SetBytes(pubKey)
	return err == nil
}
