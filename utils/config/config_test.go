package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/agentsociety-econsim/utils/config"
)

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, config.Default().Validate())
}

func TestParseOverridesDefaults(t *testing.T) {
	c, err := config.Parse([]byte(`
control:
  step:
    total: 300
  cycle: 10
  seed: 7
population:
  households: 50
  companies: 8
household:
  a_connections_number: 3
  use_network: false
network:
  density: 0.2
`))
	require.NoError(t, err)
	assert.Equal(t, int32(300), c.Control.Step.Total)
	assert.Equal(t, int32(10), c.Control.Cycle)
	assert.Equal(t, uint64(7), c.Control.Seed)
	assert.Equal(t, 50, c.Population.Households)
	assert.Equal(t, 3, c.Household.AConnectionsNumber)
	assert.False(t, c.Household.UseNetwork)
	assert.True(t, c.Household.UseMarketing)
	// 未出现的字段保持默认
	assert.Equal(t, 0.9, c.Household.ConsumptionPower)
	assert.Equal(t, 330.0, c.Company.InitialPrice)
}

func TestParseRejectsUnknownField(t *testing.T) {
	_, err := config.Parse([]byte("control:\n  cycles: 10\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	c := config.Default()
	c.Population.Companies = 5
	c.Household.AConnectionsNumber = 7
	c.Company.Upsilon = 1.5
	c.Household.ProbSearchPrice = 2
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a_connections_number")
	assert.Contains(t, err.Error(), "upsilon")
	assert.Contains(t, err.Error(), "prob_search_price")
}

func TestRuntimeConfigDisablesMarketing(t *testing.T) {
	c := config.Default()
	c.Household.UseMarketing = false
	rc := config.NewRuntimeConfig(c)
	assert.False(t, rc.MarketingEnabled())
	assert.Zero(t, rc.M.MarketingInvestments)
	assert.Equal(t, 0.2, rc.All.Company.MarketingInvestments)
}
