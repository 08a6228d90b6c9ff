package staking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multiversed/staking-server/pkg/multiversed/common"
)

func TestKeyring(t *testing.T) {
	keyring := NewKeyring()

	account, err := common.NewRandomAccount()
	require.NoError(t, err)

	_, err = keyring.Get(account.PublicKey().ToBase58())
	assert.Error(t, err)

	require.NoError(t, keyring.Add(account))

	found, err := keyring.Get(account.PublicKey().ToBase58())
	require.NoError(t, err)
	assert.Equal(t, account, found)

	keyring.Remove(account.PublicKey().ToBase58())
	_, err = keyring.Get(account.PublicKey().ToBase58())
	assert.Error(t, err)
}

func TestKeyring_RejectsPublicOnlyAccount(t *testing.T) {
	keyring := NewKeyring()

	account, err := common.NewRandomAccount()
	require.NoError(t, err)

	publicOnly, err := common.NewAccountFromPublicKeyBytes(account.PublicKey().ToBytes())
	require.NoError(t, err)

	assert.Error(t, keyring.Add(publicOnly))
}
