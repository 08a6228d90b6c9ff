package staking

import (
	"crypto/ed25519"
	"sync"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/multiversed/staking-server/pkg/solana"
)

// stubClient is an in-memory solana.Client for exercising operations
// without a validator.
type stubClient struct {
	mu sync.Mutex

	accounts map[string]solana.AccountInfo

	submitted  []solana.Transaction
	submitErrs []error

	sigStatusErrs []error
	sigStatuses   []*solana.SignatureStatus

	// onSubmit runs after a successful submission, simulating ledger
	// side effects like account creation.
	onSubmit func(solana.Transaction)

	// onGetAccountInfo runs before each account lookup.
	onGetAccountInfo func(address string)
}

func newStubClient() *stubClient {
	return &stubClient{
		accounts: make(map[string]solana.AccountInfo),
	}
}

func (c *stubClient) setAccount(address, owner ed25519.PublicKey, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.accounts[base58.Encode(address)] = solana.AccountInfo{
		Data:     data,
		Owner:    owner,
		Lamports: 1,
	}
}

func (c *stubClient) GetAccountInfo(account ed25519.PublicKey, _ solana.Commitment) (solana.AccountInfo, error) {
	if c.onGetAccountInfo != nil {
		c.onGetAccountInfo(base58.Encode(account))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	info, ok := c.accounts[base58.Encode(account)]
	if !ok {
		return solana.AccountInfo{}, solana.ErrNoAccountInfo
	}
	return info, nil
}

func (c *stubClient) GetLatestBlockhash() (solana.Blockhash, error) {
	return solana.Blockhash{1}, nil
}

func (c *stubClient) SubmitTransaction(txn solana.Transaction, _ solana.Commitment) (solana.Signature, error) {
	c.mu.Lock()

	if len(c.submitErrs) > 0 {
		err := c.submitErrs[0]
		c.submitErrs = c.submitErrs[1:]
		c.mu.Unlock()
		return solana.Signature{}, err
	}

	c.submitted = append(c.submitted, txn)
	onSubmit := c.onSubmit
	c.mu.Unlock()

	if onSubmit != nil {
		onSubmit(txn)
	}

	return txn.Signatures[0], nil
}

func (c *stubClient) GetSignatureStatus(solana.Signature, solana.Commitment) (*solana.SignatureStatus, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.sigStatusErrs) > 0 {
		err := c.sigStatusErrs[0]
		c.sigStatusErrs = c.sigStatusErrs[1:]
		return nil, err
	}

	if len(c.sigStatuses) > 0 {
		status := c.sigStatuses[0]
		c.sigStatuses = c.sigStatuses[1:]
		return status, nil
	}

	return &solana.SignatureStatus{
		ConfirmationStatus: "finalized",
	}, nil
}

func (c *stubClient) GetBalance(ed25519.PublicKey) (uint64, error) {
	return 0, errors.New("not implemented")
}

func (c *stubClient) GetMinimumBalanceForRentExemption(uint64) (uint64, error) {
	return 0, errors.New("not implemented")
}

func (c *stubClient) GetSignatureStatuses([]solana.Signature) ([]*solana.SignatureStatus, error) {
	return nil, errors.New("not implemented")
}

func (c *stubClient) GetSlot(solana.Commitment) (uint64, error) {
	return 0, errors.New("not implemented")
}

func (c *stubClient) GetTokenAccountBalance(ed25519.PublicKey) (uint64, uint64, error) {
	return 0, 0, errors.New("not implemented")
}

func (c *stubClient) GetTokenAccountsByOwner(owner, mint ed25519.PublicKey) ([]ed25519.PublicKey, error) {
	return nil, errors.New("not implemented")
}

func (c *stubClient) RequestAirdrop(ed25519.PublicKey, uint64, solana.Commitment) (solana.Signature, error) {
	return solana.Signature{}, errors.New("not implemented")
}
