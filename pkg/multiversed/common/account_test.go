package common

import (
	"crypto/ed25519"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stake_pool "github.com/multiversed/staking-server/pkg/solana/stakepool"
	"github.com/multiversed/staking-server/pkg/solana/token"
)

func TestAccountWithPublicKey(t *testing.T) {
	publicKey, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	var accounts []*Account

	account, err := NewAccountFromPublicKeyBytes(publicKey)
	require.NoError(t, err)
	accounts = append(accounts, account)

	account, err = NewAccountFromPublicKeyString(base58.Encode(publicKey))
	require.NoError(t, err)
	accounts = append(accounts, account)

	for _, account := range accounts {
		assert.EqualValues(t, publicKey, account.PublicKey().ToBytes())
		assert.Nil(t, account.PrivateKey())

		_, err = account.Sign([]byte("message"))
		assert.Error(t, err)
	}
}

func TestAccountWithPrivateKey(t *testing.T) {
	publicKey, privateKey, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	var accounts []*Account

	account, err := NewAccountFromPrivateKeyBytes(privateKey)
	require.NoError(t, err)
	accounts = append(accounts, account)

	account, err = NewAccountFromPrivateKeyString(base58.Encode(privateKey))
	require.NoError(t, err)
	accounts = append(accounts, account)

	for _, account := range accounts {
		assert.EqualValues(t, publicKey, account.PublicKey().ToBytes())
		assert.EqualValues(t, privateKey, account.PrivateKey().ToBytes())

		message := []byte("message")
		signature, err := account.Sign(message)
		require.NoError(t, err)
		assert.Equal(t, ed25519.Sign(privateKey, message), signature)
	}
}

func TestInvalidAccount(t *testing.T) {
	_, err := NewAccountFromPublicKeyBytes([]byte("invalid"))
	assert.Error(t, err)

	// A private key can't be used where a public key is expected
	_, privateKey, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	_, err = NewAccountFromPublicKeyBytes(privateKey)
	assert.Error(t, err)
}

func TestGetPoolAccounts(t *testing.T) {
	admin, err := NewRandomAccount()
	require.NoError(t, err)

	mint, err := NewRandomAccount()
	require.NoError(t, err)

	poolAccounts, err := GetPoolAccounts(admin, mint, stake_pool.TokenTypeSpl)
	require.NoError(t, err)

	expectedPool, poolBump, err := stake_pool.GetStakingPoolAddress(&stake_pool.GetStakingPoolAddressArgs{
		Admin:     admin.PublicKey().ToBytes(),
		TokenType: stake_pool.TokenTypeSpl,
	})
	require.NoError(t, err)

	assert.Equal(t, admin, poolAccounts.Admin)
	assert.Equal(t, mint, poolAccounts.Mint)
	assert.EqualValues(t, expectedPool, poolAccounts.Pool.PublicKey().ToBytes())
	assert.Equal(t, poolBump, poolAccounts.PoolBump)

	// Derived addresses never sit on the curve
	assert.False(t, poolAccounts.Pool.IsOnCurve())
	assert.False(t, poolAccounts.Escrow.IsOnCurve())
	assert.False(t, poolAccounts.SolVault.IsOnCurve())

	// The sol pool is a different set of addresses entirely
	solPoolAccounts, err := GetPoolAccounts(admin, mint, stake_pool.TokenTypeSol)
	require.NoError(t, err)
	assert.NotEqual(t, poolAccounts.Pool.PublicKey().ToBase58(), solPoolAccounts.Pool.PublicKey().ToBase58())
}

func TestGetStakeAccounts(t *testing.T) {
	admin, err := NewRandomAccount()
	require.NoError(t, err)

	mint, err := NewRandomAccount()
	require.NoError(t, err)

	user, err := NewRandomAccount()
	require.NoError(t, err)

	poolAccounts, err := GetPoolAccounts(admin, mint, stake_pool.TokenTypeSpl)
	require.NoError(t, err)

	stakeAccounts, err := user.GetStakeAccounts(poolAccounts.Pool)
	require.NoError(t, err)

	expectedState, stateBump, err := stake_pool.GetUserStakeAddress(&stake_pool.GetUserStakeAddressArgs{
		Pool: poolAccounts.Pool.PublicKey().ToBytes(),
		User: user.PublicKey().ToBytes(),
	})
	require.NoError(t, err)

	assert.Equal(t, user, stakeAccounts.Owner)
	assert.EqualValues(t, expectedState, stakeAccounts.State.PublicKey().ToBytes())
	assert.Equal(t, stateBump, stakeAccounts.StateBump)
	assert.False(t, stakeAccounts.State.IsOnCurve())
}

func TestToAssociatedTokenAccount(t *testing.T) {
	owner, err := NewRandomAccount()
	require.NoError(t, err)

	mint, err := NewRandomAccount()
	require.NoError(t, err)

	ata, err := owner.ToAssociatedTokenAccount(mint)
	require.NoError(t, err)

	expected, err := token.GetAssociatedAccount(owner.PublicKey().ToBytes(), mint.PublicKey().ToBytes())
	require.NoError(t, err)
	assert.EqualValues(t, expected, ata.PublicKey().ToBytes())
}

func TestIsOnCurve(t *testing.T) {
	account, err := NewRandomAccount()
	require.NoError(t, err)
	assert.True(t, account.IsOnCurve())
}
