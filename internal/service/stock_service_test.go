package service

import (
	"testing"

	"github.com/sujan-mishra001/Hoteru-sub000/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentStockEmptyHistory(t *testing.T) {
	w := newTestWorld()
	p := w.product("FLOUR", "Flour", 0)

	stock, err := w.stock.CurrentStock(nil, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, stock)
}

func TestCurrentStockFoldsAllTypes(t *testing.T) {
	w := newTestWorld()
	p := w.product("FLOUR", "Flour", 0)

	w.store.appendLedger(p.ID, model.TxIn, 10)
	w.store.appendLedger(p.ID, model.TxOut, 3)
	w.store.appendLedger(p.ID, model.TxProductionIn, 5)
	w.store.appendLedger(p.ID, model.TxProductionOut, 2)
	w.store.appendLedger(p.ID, model.TxAdjustment, -1.5) // signed, folded as stored
	w.store.appendLedger(p.ID, model.TxAdd, 4)           // legacy alias
	w.store.appendLedger(p.ID, model.TxRemove, 1)        // legacy alias

	stock, err := w.stock.CurrentStock(nil, p.ID)
	require.NoError(t, err)
	assert.InDelta(t, 11.5, stock, 1e-9)
}

func TestCurrentStockMayGoNegative(t *testing.T) {
	w := newTestWorld()
	p := w.product("FLOUR", "Flour", 0)
	w.store.appendLedger(p.ID, model.TxOut, 8)

	stock, err := w.stock.CurrentStock(nil, p.ID)
	require.NoError(t, err)
	assert.Equal(t, -8.0, stock, "the projection never clamps")
}

func TestCurrentStockIdempotentRead(t *testing.T) {
	w := newTestWorld()
	p := w.product("FLOUR", "Flour", 0)
	w.store.appendLedger(p.ID, model.TxIn, 12.25)
	w.store.appendLedger(p.ID, model.TxOut, 0.75)

	first, err := w.stock.CurrentStock(nil, p.ID)
	require.NoError(t, err)
	second, err := w.stock.CurrentStock(nil, p.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSnapshotStatusThresholds(t *testing.T) {
	w := newTestWorld()
	p := w.product("RICE", "Rice", 10)

	snap, err := w.stock.Snapshot(p.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusOutOfStock, snap.Status, "zero stock is out of stock")

	w.store.appendLedger(p.ID, model.TxIn, 10)
	snap, err = w.stock.Snapshot(p.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusLowStock, snap.Status, "at the threshold is low stock")

	w.store.appendLedger(p.ID, model.TxIn, 0.5)
	snap, err = w.stock.Snapshot(p.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusInStock, snap.Status)
	assert.InDelta(t, 10.5, snap.Quantity, 1e-9)
}

func TestRecordAdjustmentAppendsSignedRow(t *testing.T) {
	w := newTestWorld()
	p := w.product("OIL", "Oil", 0)
	w.store.appendLedger(p.ID, model.TxIn, 10)

	_, err := w.stock.RecordAdjustment(&AdjustmentRequest{
		ProductID: p.ID,
		Quantity:  -2.5,
		Reason:    "spillage",
		BranchID:  w.branchID,
	}, "user-1", "Tester")
	require.NoError(t, err)

	stock, err := w.stock.CurrentStock(nil, p.ID)
	require.NoError(t, err)
	assert.InDelta(t, 7.5, stock, 1e-9)
}

func TestLowStockReport(t *testing.T) {
	w := newTestWorld()
	ok := w.product("A", "Product A", 5)
	low := w.product("B", "Product B", 5)
	out := w.product("C", "Product C", 5)

	w.store.appendLedger(ok.ID, model.TxIn, 20)
	w.store.appendLedger(low.ID, model.TxIn, 3)
	// out has no history at all

	report, err := w.stock.LowStock(w.branchID)
	require.NoError(t, err)
	require.Len(t, report, 2)

	statuses := map[string]StockStatus{}
	for _, r := range report {
		statuses[r.Product.SKU] = r.Status
	}
	assert.Equal(t, StatusLowStock, statuses[low.SKU])
	assert.Equal(t, StatusOutOfStock, statuses[out.SKU])
}
