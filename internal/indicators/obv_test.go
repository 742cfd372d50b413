package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOBV_Calculate_InsufficientData(t *testing.T) {
	obv := NewOBV()
	data := generateTestData(1)

	_, err := obv.Calculate(data)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient data")
}

func TestOBV_Calculate_RisingAccumulates(t *testing.T) {
	obv := NewOBV()
	data := generateRisingData(30)

	value, err := obv.Calculate(data)
	require.NoError(t, err)

	// 29 up-closes of 1000 volume each
	assert.Equal(t, 29*1000.0, value)
}

func TestOBV_Calculate_FallingDistributes(t *testing.T) {
	obv := NewOBV()
	data := generateFallingData(30)

	value, err := obv.Calculate(data)
	require.NoError(t, err)

	assert.Equal(t, -29*1000.0, value)
}

func TestOBV_Calculate_FlatUnchanged(t *testing.T) {
	obv := NewOBV()
	data := generateFlatData(30)

	value, err := obv.Calculate(data)
	require.NoError(t, err)

	assert.Equal(t, 0.0, value)
}

func TestOBV_CalculateSeries_Length(t *testing.T) {
	obv := NewOBV()
	data := generateTestData(50)

	series, err := obv.CalculateSeries(data)
	require.NoError(t, err)

	assert.Len(t, series, 50)
	assert.Equal(t, 0.0, series[0])
}

func TestOBV_InterfaceCompliance(t *testing.T) {
	var _ TechnicalIndicator = NewOBV()
}
