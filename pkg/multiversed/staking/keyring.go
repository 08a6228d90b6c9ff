package staking

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/multiversed/staking-server/pkg/multiversed/common"
)

// Keyring holds the signing accounts of registered users, keyed by
// base58 public key. User keys are injected at runtime and never read
// from the environment.
type Keyring struct {
	mu       sync.RWMutex
	accounts map[string]*common.Account
}

func NewKeyring() *Keyring {
	return &Keyring{
		accounts: make(map[string]*common.Account),
	}
}

func (k *Keyring) Add(account *common.Account) error {
	if err := account.Validate(); err != nil {
		return errors.Wrap(err, "error validating account")
	}

	if account.PrivateKey() == nil {
		return errors.New("account has no private key")
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	k.accounts[account.PublicKey().ToBase58()] = account
	return nil
}

func (k *Keyring) Get(publicKey string) (*common.Account, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	account, ok := k.accounts[publicKey]
	if !ok {
		return nil, errors.Errorf("no signer for %s", publicKey)
	}
	return account, nil
}

func (k *Keyring) Remove(publicKey string) {
	k.mu.Lock()
	defer k.mu.Unlock()

	delete(k.accounts, publicKey)
}
