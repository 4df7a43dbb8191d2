package company_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/agentsociety-econsim/entity"
	"github.com/tsinghua-fib-lab/agentsociety-econsim/task"
	"github.com/tsinghua-fib-lab/agentsociety-econsim/utils/config"
)

func newContext(t *testing.T, households, companies int, edit func(c *config.Config)) *task.Context {
	t.Helper()
	c := config.Default()
	c.Population.Households = households
	c.Population.Companies = companies
	c.Household.AConnectionsNumber = 1
	c.Network.Density = 0
	if edit != nil {
		edit(&c)
	}
	return task.NewContext(c)
}

func TestInitialRanges(t *testing.T) {
	ctx := newContext(t, 0, 20, nil)
	p := ctx.RuntimeConfig().M
	for _, c := range ctx.CompanyManager().Companies() {
		assert.GreaterOrEqual(t, c.Wealth(), float64(p.MinWealth))
		assert.LessOrEqual(t, c.Wealth(), float64(p.MaxWealth))
		assert.GreaterOrEqual(t, c.Wage(), float64(p.MinWage))
		assert.LessOrEqual(t, c.Wage(), float64(p.MaxWage))
		assert.GreaterOrEqual(t, c.Price(), p.InitialPrice+float64(p.MinRandomPrice))
		assert.LessOrEqual(t, c.Price(), p.InitialPrice+float64(p.MaxRandomPrice))
		assert.Equal(t, p.Inventory, c.Inventory())
		assert.Zero(t, c.NumEmployees())
		assert.False(t, c.LookingForWorker())
	}
}

func TestGetOrError(t *testing.T) {
	ctx := newContext(t, 0, 2, nil)
	c, err := ctx.CompanyManager().GetOrError(1)
	require.NoError(t, err)
	assert.Equal(t, int32(1), c.ID())
	_, err = ctx.CompanyManager().GetOrError(2)
	assert.Error(t, err)
	assert.Panics(t, func() { ctx.CompanyManager().Get(-1) })
}

func TestProduce(t *testing.T) {
	ctx := newContext(t, 2, 1, func(c *config.Config) {
		c.Household.UseMarketing = false
	})
	c := ctx.Company(0)
	ctx.Household(0).SwitchEmployer(c)
	ctx.Household(1).SwitchEmployer(c)
	c.SetInventory(0)

	c.MarketingRaise()
	c.Produce()
	assert.Equal(t, 2*ctx.RuntimeConfig().M.LambdaCoefficient, c.Inventory())
	assert.Zero(t, c.MarketingBoost())
}

func TestProduceWithMarketing(t *testing.T) {
	ctx := newContext(t, 2, 1, nil)
	c := ctx.Company(0)
	ctx.Household(0).SwitchEmployer(c)
	ctx.Household(1).SwitchEmployer(c)
	c.SetInventory(0)
	c.SetMarketingInvestments(0.25)

	c.MarketingRaise()
	c.Produce()
	assert.InDelta(t, 2*3*0.25, c.MarketingBoost(), 1e-9)
	assert.InDelta(t, 2*3*0.75, c.Inventory(), 1e-9)
}

func TestChangeMarketingInvestments(t *testing.T) {
	ctx := newContext(t, 0, 1, nil)
	c := ctx.Company(0)

	c.SetMarketingInvestments(0.2)
	c.SetInventory(100)
	c.SetSold(10)
	c.ChangeMarketingInvestments()
	assert.InDelta(t, 0.22, c.MarketingInvestments(), 1e-9)

	c.SetMarketingInvestments(0.48)
	c.ChangeMarketingInvestments()
	assert.InDelta(t, 0.5, c.MarketingInvestments(), 1e-9)

	c.SetInventory(0)
	c.SetMarketingInvestments(0.2)
	c.ChangeMarketingInvestments()
	assert.InDelta(t, 0.16, c.MarketingInvestments(), 1e-9)

	c.SetMarketingInvestments(0.011)
	c.ChangeMarketingInvestments()
	assert.InDelta(t, 0.01, c.MarketingInvestments(), 1e-9)
}

func TestPayWagesShortfall(t *testing.T) {
	ctx := newContext(t, 2, 1, nil)
	c := ctx.Company(0)
	h0, h1 := ctx.Household(0), ctx.Household(1)
	h0.SwitchEmployer(c)
	h1.SwitchEmployer(c)
	h0.SetWealth(0)
	h1.SetWealth(0)
	h0.SetReservationWage(0)
	h1.SetReservationWage(0)
	c.SetWage(30000)
	c.SetWealth(50001)

	c.PayWages()
	assert.Equal(t, 25000., c.Wage())
	assert.Equal(t, 1., c.Wealth())
	assert.Equal(t, 25000., h0.Wealth())
	assert.Equal(t, 25000., h1.Wealth())
	assert.Equal(t, 25000., h0.ReservationWage())
}

func TestPayWagesKeepsHigherReservationWage(t *testing.T) {
	ctx := newContext(t, 1, 1, nil)
	c := ctx.Company(0)
	h := ctx.Household(0)
	h.SwitchEmployer(c)
	h.SetReservationWage(40000)
	c.SetWage(30000)
	c.SetWealth(1e6)

	c.PayWages()
	assert.Equal(t, 40000., h.ReservationWage())
	assert.Equal(t, 1e6-30000, c.Wealth())
}

func TestShareLiquidity(t *testing.T) {
	ctx := newContext(t, 2, 1, nil)
	c := ctx.Company(0)
	h0, h1 := ctx.Household(0), ctx.Household(1)
	h0.SwitchEmployer(c)
	h1.SwitchEmployer(c)
	h0.SetWealth(0)
	h1.SetWealth(0)
	h0.SetReservationWage(10000)
	h1.SetReservationWage(10000)
	c.SetWage(10000)
	c.SetWealth(100000)

	c.ShareLiquidity()
	// buffer = 10000*2*0.1 = 2000, share = 49000
	assert.Equal(t, 59000., c.Wage())
	assert.Equal(t, 2000., c.Wealth())
	assert.Equal(t, 49000., h0.Wealth())
	assert.Equal(t, 59000., h1.ReservationWage())
}

func TestShareLiquidityWithoutSurplus(t *testing.T) {
	ctx := newContext(t, 1, 1, nil)
	c := ctx.Company(0)
	ctx.Household(0).SwitchEmployer(c)
	c.SetWage(10000)
	c.SetWealth(500)

	c.ShareLiquidity()
	assert.Equal(t, 10000., c.Wage())
	assert.Equal(t, 500., c.Wealth())
}

func TestCountWorkers(t *testing.T) {
	ctx := newContext(t, 1, 1, nil)
	c := ctx.Company(0)
	h := ctx.Household(0)

	c.CountWorkers()
	assert.Equal(t, int32(1), c.FullWorkplaces())
	h.SwitchEmployer(c)
	c.CountWorkers()
	assert.Equal(t, int32(2), c.FullWorkplaces())
	c.Dismiss(h)
	h.LoseJob()
	c.CountWorkers()
	assert.Zero(t, c.FullWorkplaces())
}

func TestSetWageRate(t *testing.T) {
	ctx := newContext(t, 0, 1, nil)
	c := ctx.Company(0)
	sigma := ctx.RuntimeConfig().M.Sigma

	c.SetWage(30000)
	c.SetLookingForWorker(true)
	c.SetWageRate()
	assert.GreaterOrEqual(t, c.Wage(), 30000.)
	assert.LessOrEqual(t, c.Wage(), 30000*(1+sigma))

	c.SetWage(30000)
	c.SetLookingForWorker(false)
	c.SetFullWorkplaces(ctx.RuntimeConfig().M.Gamma + 1)
	c.SetWageRate()
	assert.LessOrEqual(t, c.Wage(), 30000.)
	assert.GreaterOrEqual(t, c.Wage(), 30000*(1-sigma))

	c.SetWage(0)
	c.SetWageRate()
	assert.Zero(t, c.Wage())
}

func TestHireOrFire(t *testing.T) {
	ctx := newContext(t, 2, 1, nil)
	c := ctx.Company(0)
	h0, h1 := ctx.Household(0), ctx.Household(1)
	h0.SwitchEmployer(c)
	h1.SwitchEmployer(c)
	c.SetDemand(100)
	c.SetSold(40)
	c.SetInventory(1000)

	c.HireOrFire()
	assert.False(t, c.LookingForWorker())
	assert.Nil(t, h0.Employer())
	assert.False(t, c.HasEmployee(h0))
	assert.Equal(t, entity.ICompany(c), h1.Employer())
	assert.Equal(t, 1, c.NumEmployees())
	assert.Zero(t, c.Demand())
	assert.Zero(t, c.Sold())
}

func TestHireOrFireStartsHiring(t *testing.T) {
	ctx := newContext(t, 1, 1, nil)
	c := ctx.Company(0)
	ctx.Household(0).SwitchEmployer(c)
	c.SetDemand(100)
	c.SetInventory(10)

	c.HireOrFire()
	assert.True(t, c.LookingForWorker())
	assert.Equal(t, 1, c.NumEmployees())
}

func TestMarginalCostPricing(t *testing.T) {
	ctx := newContext(t, 0, 1, func(c *config.Config) {
		c.Company.Tau = 1
	})
	c := ctx.Company(0)
	upsilon := ctx.RuntimeConfig().M.Upsilon
	c.SetWage(30000)
	mc := c.MarginalCost()
	assert.InDelta(t, 30000./(30*3), mc, 1e-9)

	// 利润率过低，涨价
	c.SetPrice(300)
	c.ChangeGoodsPrice()
	assert.GreaterOrEqual(t, c.Price(), 300.)
	assert.LessOrEqual(t, c.Price(), 300*(1+upsilon))

	// 利润率过高，降价
	c.SetPrice(400)
	c.ChangeGoodsPrice()
	assert.LessOrEqual(t, c.Price(), 400.)
	assert.GreaterOrEqual(t, c.Price(), 400*(1-upsilon))

	// 区间内不变
	c.SetPrice(360)
	c.ChangeGoodsPrice()
	assert.Equal(t, 360., c.Price())
}

func TestMarginalCostThreshold(t *testing.T) {
	ctx := newContext(t, 0, 1, func(c *config.Config) {
		c.Company.Tau = 1
	})
	c := ctx.Company(0)
	c.SetWage(3000)
	assert.InDelta(t, 33.33, c.MarginalCost(), 0.01)

	c.SetPrice(34)
	c.ChangeGoodsPrice()
	assert.Greater(t, c.Price(), 34.)

	c.SetPrice(34.5)
	c.ChangeGoodsPrice()
	assert.Equal(t, 34.5, c.Price())
}

func TestEmploymentPanics(t *testing.T) {
	ctx := newContext(t, 1, 2, nil)
	c := ctx.Company(0)
	h := ctx.Household(0)
	assert.Panics(t, func() { c.Dismiss(h) })
	h.SwitchEmployer(c)
	assert.Panics(t, func() { c.Hire(h) })
	assert.Panics(t, func() { h.SwitchEmployer(c) })
}

func TestSell(t *testing.T) {
	ctx := newContext(t, 0, 1, nil)
	c := ctx.Company(0)
	c.SetInventory(10)
	c.SetWealth(0)
	c.SetSold(0)

	c.Sell(4, 1320)
	assert.Equal(t, 6., c.Inventory())
	assert.Equal(t, 1320., c.Wealth())
	assert.Equal(t, 4., c.Sold())
	assert.Panics(t, func() { c.Sell(7, 1) })
}

func TestState(t *testing.T) {
	ctx := newContext(t, 2, 1, nil)
	c := ctx.Company(0)
	ctx.Household(1).SwitchEmployer(c)
	ctx.Household(0).SwitchEmployer(c)

	s := c.State()
	assert.Equal(t, int32(0), s.ID)
	assert.Equal(t, []int32{1, 0}, s.Employees)
	assert.Equal(t, c.Wage(), s.Wage)
}
