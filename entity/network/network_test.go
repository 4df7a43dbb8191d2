package network_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/agentsociety-econsim/entity/network"
	"github.com/tsinghua-fib-lab/agentsociety-econsim/task"
	"github.com/tsinghua-fib-lab/agentsociety-econsim/utils/config"
)

func newContext(t *testing.T, households int, density float64) *task.Context {
	t.Helper()
	c := config.Default()
	c.Population.Households = households
	c.Population.Companies = 2
	c.Household.AConnectionsNumber = 2
	c.Household.UseMarketing = false
	c.Household.UseNetwork = false
	c.Network.Density = density
	return task.NewContext(c)
}

func TestDensityExtremes(t *testing.T) {
	full := newContext(t, 6, 1)
	assert.Equal(t, 15, full.Network().NumEdges())
	assert.Equal(t, []int32{1, 2, 3, 4, 5}, full.Network().Neighbors(0))
	assert.Equal(t, []int32{0, 1, 2, 4, 5}, full.Network().Neighbors(3))

	empty := newContext(t, 6, 0)
	assert.Zero(t, empty.Network().NumEdges())
	assert.Empty(t, empty.Network().Neighbors(2))
	assert.Empty(t, empty.Network().Influence(empty.Household(2)))
}

func TestNeighborsSymmetric(t *testing.T) {
	ctx := newContext(t, 40, 0.3)
	nw := ctx.Network()
	degrees := 0
	for i := int32(0); i < 40; i++ {
		for _, j := range nw.Neighbors(i) {
			assert.NotEqual(t, i, j)
			assert.Contains(t, nw.Neighbors(j), i)
		}
		assert.IsIncreasing(t, nw.Neighbors(i))
		degrees += len(nw.Neighbors(i))
	}
	assert.Equal(t, 2*nw.NumEdges(), degrees)
	assert.Panics(t, func() { nw.Neighbors(40) })
}

func TestInfluence(t *testing.T) {
	ctx := newContext(t, 3, 1)
	ctx.Company(0).SetPrice(100)
	ctx.Company(0).SetInventory(100)
	ctx.Company(1).SetPrice(500)

	// 邻居1在企业0成交两次
	h1 := ctx.Household(1)
	h1.SetWealth(1e6)
	h1.SetConsumption(1)
	h1.BuyGoods()
	h1.BuyGoods()
	h1.CalculateMostPreferred()

	// 邻居2没有成交，被忽略
	h2 := ctx.Household(2)
	h2.SetConsumption(0)
	h2.BuyGoods()
	h2.CalculateMostPreferred()

	scores := ctx.Network().Influence(ctx.Household(0))
	assert.Equal(t, map[int32]float64{0: 1}, scores)
}

func TestMostInfluenced(t *testing.T) {
	_, _, ok := network.MostInfluenced(nil)
	assert.False(t, ok)

	id, score, ok := network.MostInfluenced(map[int32]float64{4: 0.5, 2: 1.5, 7: 1.5, 1: 0.2})
	assert.True(t, ok)
	assert.Equal(t, int32(2), id)
	assert.Equal(t, 1.5, score)
}
