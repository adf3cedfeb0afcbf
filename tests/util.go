package tests

import (
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/neotest/chain"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

func iteratorToArray(iter *storage.Iterator) []stackitem.Item {
	stackItems := make([]stackitem.Item, 0)
	for iter.Next() {
		stackItems = append(stackItems, iter.Value())
	}
	return stackItems
}

func newExecutor(t *testing.T) *neotest.Executor {
	bc, acc := chain.NewSingle(t)
	return neotest.NewExecutor(t, bc, acc, acc)
}

// setNextTime adds a block so that the next invocation executes at exactly
// ts (invocation blocks get the previous timestamp plus one millisecond).
func setNextTime(t *testing.T, c *neotest.ContractInvoker, ts uint64) {
	b := c.NewUnsignedBlock(t)
	b.Timestamp = ts - 1
	require.NoError(t, c.Chain.AddBlock(c.SignBlock(b)))
}
