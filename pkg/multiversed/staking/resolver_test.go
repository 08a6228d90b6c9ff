package staking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multiversed/staking-server/pkg/multiversed/common"
	"github.com/multiversed/staking-server/pkg/solana"
	"github.com/multiversed/staking-server/pkg/solana/token"
)

func TestResolve_AccountExists(t *testing.T) {
	sc := newStubClient()
	resolver := NewTokenAccountResolver(sc, solana.CommitmentConfirmed)

	owner, err := common.NewRandomAccount()
	require.NoError(t, err)
	mint, err := common.NewRandomAccount()
	require.NoError(t, err)

	expected, err := owner.ToAssociatedTokenAccount(mint)
	require.NoError(t, err)
	sc.setAccount(expected.PublicKey().ToBytes(), token.ProgramKey, nil)

	actual, created, err := resolver.Resolve(owner, mint)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, expected.PublicKey().ToBase58(), actual.PublicKey().ToBase58())
	assert.Empty(t, sc.submitted)
}

func TestResolve_CreatesMissingAccount(t *testing.T) {
	sc := newStubClient()
	resolver := NewTokenAccountResolver(sc, solana.CommitmentConfirmed)

	owner, err := common.NewRandomAccount()
	require.NoError(t, err)
	mint, err := common.NewRandomAccount()
	require.NoError(t, err)

	expected, err := owner.ToAssociatedTokenAccount(mint)
	require.NoError(t, err)

	sc.onSubmit = func(solana.Transaction) {
		sc.setAccount(expected.PublicKey().ToBytes(), token.ProgramKey, nil)
	}

	actual, created, err := resolver.Resolve(owner, mint)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, expected.PublicKey().ToBase58(), actual.PublicKey().ToBase58())

	require.Len(t, sc.submitted, 1)
	decompiled, err := token.DecompileCreateAssociatedAccount(sc.submitted[0].Message, 0)
	require.NoError(t, err)
	assert.EqualValues(t, owner.PublicKey().ToBytes(), decompiled.Owner)
	assert.EqualValues(t, mint.PublicKey().ToBytes(), decompiled.Mint)

	// The second call observes the live account and doesn't resubmit
	_, created, err = resolver.Resolve(owner, mint)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Len(t, sc.submitted, 1)
}

func TestResolve_AbsorbsCreationRace(t *testing.T) {
	sc := newStubClient()
	resolver := NewTokenAccountResolver(sc, solana.CommitmentConfirmed)

	owner, err := common.NewRandomAccount()
	require.NoError(t, err)
	mint, err := common.NewRandomAccount()
	require.NoError(t, err)

	ata, err := owner.ToAssociatedTokenAccount(mint)
	require.NoError(t, err)

	// Another submission wins the race after our existence check. The
	// ledger rejects our transaction, but the account is live by the
	// time we re-check.
	sc.submitErrs = []error{token.ErrorAlreadyInUse}

	var lookups int
	sc.onGetAccountInfo = func(address string) {
		lookups++
		if lookups == 2 {
			sc.setAccount(ata.PublicKey().ToBytes(), token.ProgramKey, nil)
		}
	}

	actual, created, err := resolver.Resolve(owner, mint)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, ata.PublicKey().ToBase58(), actual.PublicKey().ToBase58())
}

func TestResolve_WithoutPrivateKey(t *testing.T) {
	sc := newStubClient()
	resolver := NewTokenAccountResolver(sc, solana.CommitmentConfirmed)

	withKey, err := common.NewRandomAccount()
	require.NoError(t, err)
	owner, err := common.NewAccountFromPublicKeyBytes(withKey.PublicKey().ToBytes())
	require.NoError(t, err)
	mint, err := common.NewRandomAccount()
	require.NoError(t, err)

	_, _, err = resolver.Resolve(owner, mint)
	assert.True(t, IsKind(err, KindAccountResolution))
}
