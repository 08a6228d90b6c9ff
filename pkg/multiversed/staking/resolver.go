package staking

import (
	"crypto/ed25519"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/multiversed/staking-server/pkg/multiversed/common"
	"github.com/multiversed/staking-server/pkg/solana"
	"github.com/multiversed/staking-server/pkg/solana/token"
)

// TokenAccountResolver provisions associated token accounts on demand.
type TokenAccountResolver struct {
	log        *logrus.Entry
	sc         solana.Client
	commitment solana.Commitment
}

func NewTokenAccountResolver(sc solana.Client, commitment solana.Commitment) *TokenAccountResolver {
	return &TokenAccountResolver{
		log: logrus.StandardLogger().WithField("type", "staking/resolver"),

		sc:         sc,
		commitment: commitment,
	}
}

// Resolve returns the owner's associated token account for the mint,
// creating it when it doesn't exist. The second return value reports
// whether a creation transaction was submitted.
//
// Creation is idempotent. Concurrent or repeated calls for the same
// (owner, mint) pair settle on the same account and all succeed.
func (r *TokenAccountResolver) Resolve(owner, mint *common.Account) (*common.Account, bool, error) {
	log := r.log.WithFields(logrus.Fields{
		"method": "Resolve",
		"owner":  owner.PublicKey().ToBase58(),
		"mint":   mint.PublicKey().ToBase58(),
	})

	ata, err := owner.ToAssociatedTokenAccount(mint)
	if err != nil {
		return nil, false, newError(KindDerivation, err)
	}

	_, err = r.sc.GetAccountInfo(ata.PublicKey().ToBytes(), solana.CommitmentFinalized)
	if err == nil {
		return ata, false, nil
	}
	if err != solana.ErrNoAccountInfo {
		return nil, false, newError(KindAccountResolution, err)
	}

	if owner.PrivateKey() == nil {
		return nil, false, newError(KindAccountResolution, errors.New("owner private key required to create token account"))
	}

	instruction, _, err := token.CreateAssociatedTokenAccountIdempotent(
		owner.PublicKey().ToBytes(),
		owner.PublicKey().ToBytes(),
		mint.PublicKey().ToBytes(),
	)
	if err != nil {
		return nil, false, newError(KindDerivation, err)
	}

	txn := solana.NewTransaction(owner.PublicKey().ToBytes(), instruction)

	blockhash, err := r.sc.GetLatestBlockhash()
	if err != nil {
		return nil, false, newError(KindAccountResolution, errors.Wrap(err, "error getting latest blockhash"))
	}
	txn.SetBlockhash(blockhash)

	if err := txn.Sign(ed25519.PrivateKey(owner.PrivateKey().ToBytes())); err != nil {
		return nil, false, newError(KindAccountResolution, errors.Wrap(err, "error signing transaction"))
	}

	sig, err := r.sc.SubmitTransaction(txn, r.commitment)
	if err != nil && !isAlreadyInUse(err) {
		return nil, false, newError(KindAccountResolution, errors.Wrap(err, "error submitting transaction"))
	}

	if err == nil {
		if _, err := r.sc.GetSignatureStatus(sig, r.commitment); err != nil {
			log.WithError(err).Info("creation not confirmed, re-checking account state")
		}
	}

	// Losing a creation race still lands here with the account live.
	if _, err := r.sc.GetAccountInfo(ata.PublicKey().ToBytes(), r.commitment); err != nil {
		return nil, false, newError(KindAccountResolution, errors.Wrap(err, "token account missing after creation"))
	}

	return ata, true, nil
}

// isAlreadyInUse detects the ledger rejections raised when another
// transaction created the account first.
func isAlreadyInUse(err error) bool {
	var customErr solana.CustomError
	if !errors.As(err, &customErr) {
		return false
	}

	// SystemError::AccountAlreadyInUse and the token program's
	// equivalent share this meaning.
	return customErr == solana.CustomError(0) || customErr == token.ErrorAlreadyInUse
}
