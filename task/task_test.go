package task_test

import (
	"context"
	"errors"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/agentsociety-econsim/ecosim"
	"github.com/tsinghua-fib-lab/agentsociety-econsim/task"
	"github.com/tsinghua-fib-lab/agentsociety-econsim/utils/config"
)

func smallConfig() config.Config {
	c := config.Default()
	c.Population.Households = 60
	c.Population.Companies = 8
	c.Household.AConnectionsNumber = 3
	c.Network.Density = 0.2
	c.Control.Step.Total = 120
	c.Control.CheckInvariants = true
	return c
}

func totalWealth(s ecosim.Snapshot) float64 {
	return lo.SumBy(s.Households, func(h ecosim.HouseholdState) float64 { return h.Wealth }) +
		lo.SumBy(s.Companies, func(c ecosim.CompanyState) float64 { return c.Wealth })
}

type memorySink struct {
	got []ecosim.Indicators
	err error
}

func (s *memorySink) Write(_ context.Context, ind ecosim.Indicators) error {
	s.got = append(s.got, ind)
	return s.err
}

func TestDeterminism(t *testing.T) {
	a := task.NewContext(smallConfig())
	b := task.NewContext(smallConfig())
	for i := 0; i < 95; i++ {
		a.Tick()
		b.Tick()
	}
	assert.Equal(t, a.Snapshot(), b.Snapshot())

	c := smallConfig()
	c.Control.Seed++
	other := task.NewContext(c)
	for i := 0; i < 95; i++ {
		other.Tick()
	}
	assert.NotEqual(t, a.Snapshot(), other.Snapshot())
}

func TestIntegrityDuringRun(t *testing.T) {
	ctx := task.NewContext(smallConfig())
	require.NoError(t, ctx.CheckIntegrity())
	for i := 0; i < 120; i++ {
		ctx.Tick()
		require.NoError(t, ctx.CheckIntegrity(), "day %d", i)
	}

	s := ctx.Snapshot()
	employers := map[int32]int32{}
	for _, c := range s.Companies {
		assert.GreaterOrEqual(t, c.Wage, 0.)
		assert.GreaterOrEqual(t, c.Inventory, 0.)
		for _, id := range c.Employees {
			employers[id] = c.ID
		}
	}
	for _, h := range s.Households {
		assert.Len(t, h.Suppliers, 3)
		assert.Len(t, lo.Uniq(h.Suppliers), 3)
		if h.Employed() {
			assert.Equal(t, h.EmployerID, employers[h.ID])
		} else {
			assert.NotContains(t, employers, h.ID)
		}
	}
}

func TestWealthConservation(t *testing.T) {
	ctx := task.NewContext(smallConfig())
	before := totalWealth(ctx.Snapshot())
	for i := 0; i < 120; i++ {
		ctx.Tick()
	}
	assert.InEpsilon(t, before, totalWealth(ctx.Snapshot()), 1e-9)
}

func TestEconomyDevelops(t *testing.T) {
	ctx := task.NewContext(smallConfig())
	require.NoError(t, ctx.Run(context.Background()))
	ind := ecosim.Measure(ctx.Snapshot())
	assert.Positive(t, ind.Employed)
	assert.Positive(t, ind.MeanWage)
}

func TestSkipInitialCycle(t *testing.T) {
	c := smallConfig()
	c.Control.SkipInitialCycle = true
	ctx := task.NewContext(c)
	ctx.Tick()
	// 第0天不执行月度更新，没有人求职
	s := ctx.Snapshot()
	assert.True(t, lo.EveryBy(s.Households, func(h ecosim.HouseholdState) bool { return !h.Employed() }))
	assert.True(t, lo.EveryBy(s.Households, func(h ecosim.HouseholdState) bool { return h.Consumption == 0 }))
}

func TestRunRecordsAtInterval(t *testing.T) {
	c := smallConfig()
	c.Control.Step.Total = 90
	c.Output.Interval = 30
	ctx := task.NewContext(c)
	sink := &memorySink{}
	ctx.AddSink(sink)

	require.NoError(t, ctx.Run(context.Background()))
	assert.Equal(t, int32(90), ctx.Clock().Day)
	assert.Equal(t, []int32{30, 60, 90}, lo.Map(sink.got, func(i ecosim.Indicators, _ int) int32 { return i.Day }))
	assert.Equal(t, sink.got, ctx.Recorder().History())

	latest, ok := ctx.Recorder().Latest()
	require.True(t, ok)
	assert.Equal(t, ctx.Snapshot(), latest)
}

func TestRunRecordsFinalDay(t *testing.T) {
	c := smallConfig()
	c.Control.Step.Total = 45
	c.Output.Interval = 30
	ctx := task.NewContext(c)
	require.NoError(t, ctx.Run(context.Background()))
	days := lo.Map(ctx.Recorder().History(), func(i ecosim.Indicators, _ int) int32 { return i.Day })
	assert.Equal(t, []int32{30, 45}, days)
}

func TestRunSinkError(t *testing.T) {
	c := smallConfig()
	c.Output.Interval = 10
	ctx := task.NewContext(c)
	boom := errors.New("boom")
	ctx.AddSink(&memorySink{err: boom})

	err := ctx.Run(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int32(10), ctx.Clock().Day)
}

func TestRunCancelled(t *testing.T) {
	ctx := task.NewContext(smallConfig())
	c, cancel := context.WithCancel(context.Background())
	cancel()
	err := ctx.Run(c)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, ctx.Clock().Day)
}

func TestRecorderNow(t *testing.T) {
	ctx := task.NewContext(smallConfig())
	for i := 0; i < 31; i++ {
		ctx.Tick()
	}
	day, month := ctx.Recorder().Now()
	assert.Equal(t, int32(31), day)
	assert.Equal(t, int32(1), month)
	assert.Equal(t, day, ctx.Snapshot().Day)
}

func TestNewContextRejectsInvalidConfig(t *testing.T) {
	c := smallConfig()
	c.Household.AConnectionsNumber = 9
	assert.Panics(t, func() { task.NewContext(c) })
}

func TestCheckIntegrityDetectsBrokenEmployment(t *testing.T) {
	ctx := task.NewContext(smallConfig())
	h := ctx.Household(0)
	h.SwitchEmployer(ctx.Company(0))
	require.NoError(t, ctx.CheckIntegrity())

	// 只清空一侧的引用
	h.LoseJob()
	assert.Error(t, ctx.CheckIntegrity())
}
