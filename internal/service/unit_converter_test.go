package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestConvertIdentity(t *testing.T) {
	w := newTestWorld()
	g := w.unit("Gram", "g", nil, 1)

	assert.Equal(t, 5.0, w.converter.Convert(nil, 5, nil, &g.ID), "unset source unit converts nothing")
	assert.Equal(t, 5.0, w.converter.Convert(nil, 5, &g.ID, &g.ID), "same unit converts nothing")
	assert.Equal(t, 5.0, w.converter.Convert(nil, 5, &g.ID, nil))
}

func TestConvertViaBaseFactors(t *testing.T) {
	w := newTestWorld()
	g := w.unit("Gram", "g", nil, 1)
	kg := w.unit("Kilogram", "kg", &g.ID, 1000)

	assert.Equal(t, 2000.0, w.converter.Convert(nil, 2, &kg.ID, &g.ID))
	assert.Equal(t, 0.5, w.converter.Convert(nil, 500, &g.ID, &kg.ID))
}

func TestConvertRoundTrip(t *testing.T) {
	w := newTestWorld()
	ml := w.unit("Millilitre", "ml", nil, 1)
	l := w.unit("Litre", "l", &ml.ID, 1000)

	x := 3.7
	back := w.converter.Convert(nil, w.converter.Convert(nil, x, &l.ID, &ml.ID), &ml.ID, &l.ID)
	assert.InDelta(t, x, back, 1e-9)
}

func TestConvertMissingUnitFallsBack(t *testing.T) {
	w := newTestWorld()
	g := w.unit("Gram", "g", nil, 1)
	ghost := uuid.New()

	// A missing unit definition must not block the caller: the quantity
	// passes through unconverted.
	assert.Equal(t, 7.0, w.converter.Convert(nil, 7, &ghost, &g.ID))
	assert.Equal(t, 7.0, w.converter.Convert(nil, 7, &g.ID, &ghost))
}

func TestConvertZeroFactorFallsBack(t *testing.T) {
	w := newTestWorld()
	g := w.unit("Gram", "g", nil, 1)
	broken := w.unit("Broken", "x", nil, 0)

	assert.Equal(t, 4.0, w.converter.Convert(nil, 4, &g.ID, &broken.ID))
}
