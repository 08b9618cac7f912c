package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The route wiring constructs repositories both through the Store and
// directly; both paths must exist and hand back every aggregate.
func TestStoreRepositoryWiring(t *testing.T) {
	store := NewStore(nil)

	assert.NotNil(t, store.Wallets())
	assert.NotNil(t, store.Transactions())
	assert.NotNil(t, store.Orders())
	assert.NotNil(t, store.Carts())
	assert.NotNil(t, store.Promotions())
	assert.NotNil(t, store.Catalog())

	var repo WalletRepository = NewWalletRepository(nil)
	assert.NotNil(t, repo)
}
