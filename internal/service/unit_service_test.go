package service

import (
	"testing"

	"github.com/sujan-mishra001/Hoteru-sub000/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUnitBase(t *testing.T) {
	w := newTestWorld()
	svc := NewUnitService(w.units)

	err := svc.CreateUnit(&model.UnitOfMeasurement{
		Name:             "Gram",
		Abbreviation:     "g",
		ConversionFactor: 1,
		BranchID:         w.branchID,
	}, "user-1")
	require.NoError(t, err)

	units, _ := svc.GetAllUnits(w.branchID)
	assert.Len(t, units, 1)
}

func TestCreateUnitDerived(t *testing.T) {
	w := newTestWorld()
	g := w.unit("Gram", "g", nil, 1)
	svc := NewUnitService(w.units)

	err := svc.CreateUnit(&model.UnitOfMeasurement{
		Name:             "Kilogram",
		Abbreviation:     "kg",
		BaseUnitID:       &g.ID,
		ConversionFactor: 1000,
		BranchID:         w.branchID,
	}, "user-1")
	require.NoError(t, err)
}

func TestCreateUnitRejectsChainedBase(t *testing.T) {
	w := newTestWorld()
	g := w.unit("Gram", "g", nil, 1)
	kg := w.unit("Kilogram", "kg", &g.ID, 1000)
	svc := NewUnitService(w.units)

	// Tonne -> kg -> g would need two hops to resolve; conversion graphs
	// stay one level deep.
	err := svc.CreateUnit(&model.UnitOfMeasurement{
		Name:             "Tonne",
		Abbreviation:     "t",
		BaseUnitID:       &kg.ID,
		ConversionFactor: 1000,
		BranchID:         w.branchID,
	}, "user-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not itself reference")
}

func TestCreateUnitRejectsNonPositiveFactor(t *testing.T) {
	w := newTestWorld()
	svc := NewUnitService(w.units)

	err := svc.CreateUnit(&model.UnitOfMeasurement{
		Name:             "Broken",
		Abbreviation:     "x",
		ConversionFactor: 0,
		BranchID:         w.branchID,
	}, "user-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be positive")
}
