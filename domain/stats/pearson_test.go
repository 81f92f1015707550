package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPearsonPerfectCorrelation(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6, 7}
	y := []float64{2, 4, 6, 8, 10, 12, 14}
	c := Pearson(x, y)
	assert.Equal(t, 1.0, c.R)
	assert.Equal(t, 0.0, c.P)
	assert.Equal(t, 7, c.N)
}

func TestPearsonPerfectInverse(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6, 7}
	y := []float64{14, 12, 10, 8, 6, 4, 2}
	c := Pearson(x, y)
	assert.Equal(t, -1.0, c.R)
	assert.Equal(t, 0.0, c.P)
}

func TestPearsonSymmetry(t *testing.T) {
	x := []float64{3, 1, 4, 1, 5, 9, 2, 6}
	y := []float64{2, 7, 1, 8, 2, 8, 1, 8}
	assert.Equal(t, Pearson(x, y).R, Pearson(y, x).R)
}

func TestPearsonTooFewPoints(t *testing.T) {
	c := Pearson([]float64{1, 2, 3}, []float64{3, 2, 1})
	assert.Equal(t, 0.0, c.R)
	assert.Equal(t, 1.0, c.P)
	assert.Equal(t, 3, c.N)
}

func TestPearsonZeroVariance(t *testing.T) {
	x := []float64{5, 5, 5, 5, 5, 5, 5}
	y := []float64{1, 2, 3, 4, 5, 6, 7}
	c := Pearson(x, y)
	assert.Equal(t, 0.0, c.R)
	assert.Equal(t, 1.0, c.P)
}

func TestPearsonLengthMismatch(t *testing.T) {
	c := Pearson([]float64{1, 2, 3, 4, 5, 6, 7}, []float64{1, 2, 3})
	assert.Equal(t, 0.0, c.R)
	assert.Equal(t, 1.0, c.P)
}

func TestPearsonModerateCorrelationHasPBetweenZeroAndOne(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	y := []float64{3, 1, 5, 2, 6, 4, 8, 5, 9, 7}
	c := Pearson(x, y)
	assert.Greater(t, c.R, 0.5)
	assert.Less(t, c.R, 0.9)
	assert.Greater(t, c.P, 0.0)
	assert.Less(t, c.P, 0.01)
}
