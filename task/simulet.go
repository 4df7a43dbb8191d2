package task

import (
	"context"
	"flag"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/tsinghua-fib-lab/agentsociety-econsim/ecosim"
)

var (
	heartBeatInterval = flag.Int("log.heartbeat_interval", 100, "心跳日志间隔天数")

	log = logrus.WithField("module", "task")
)

// prepare 准备阶段，每步执行一次
// 功能：判定今天是否为月度周期日，定期输出心跳日志
func (ctx *Context) prepare() bool {
	if *heartBeatInterval > 0 && ctx.clock.Day%int32(*heartBeatInterval) == 0 {
		ind := ecosim.Measure(ctx.Snapshot())
		log.Infof(
			"%v: unemployment %.1f%%, mean price %s, household wealth %s",
			ctx.clock,
			ind.UnemploymentRate*100,
			humanize.FormatFloat("#,###.##", ind.MeanPrice),
			humanize.Commaf(ind.HouseholdWealth),
		)
	}
	return ctx.clock.IsCycleDay()
}

// update 更新阶段，每步执行一次
// 功能：先按随机顺序激活全部企业，再按随机顺序激活全部家庭
// 说明：激活严格顺序执行，前一个智能体的修改对后一个立即可见
func (ctx *Context) update(monthly bool) {
	ctx.companyManager.Update(monthly)
	ctx.householdManager.Update(monthly)
}

// Tick 模拟一天
// 算法说明：
// 1. prepare：周期判定与心跳日志
// 2. update：企业激活，然后家庭激活
// 3. 时钟推进一天
// 4. 开启check_invariants时检查一致性，失败直接panic
func (ctx *Context) Tick() {
	monthly := ctx.prepare()
	log.Debugf("%v: update, monthly=%v", ctx.clock, monthly)
	ctx.update(monthly)
	ctx.clock.Advance()
	ctx.recorder.SetNow(ctx.clock.Day, ctx.clock.Month())
	if ctx.runtimeConfig.C.CheckInvariants {
		if err := ctx.CheckIntegrity(); err != nil {
			log.Panicf("%v: integrity check failed: %v", ctx.clock, err)
		}
	}
}

// Run 运行至结束日
// 功能：逐日模拟，每output.interval天记录一次快照，最后一天未记录时补记
// 参数：c-取消信号，只在两步之间检查
// 返回：c被取消时返回其错误，输出失败时返回输出错误
func (ctx *Context) Run(c context.Context) error {
	interval := ctx.runtimeConfig.All.Output.Interval
	recorded := false
	for !ctx.clock.Finished() {
		if err := c.Err(); err != nil {
			log.Warnf("%v: stopped: %v", ctx.clock, err)
			return err
		}
		ctx.Tick()
		recorded = false
		if interval > 0 && (ctx.clock.Day-ctx.clock.START_DAY)%interval == 0 {
			if _, err := ctx.Record(c); err != nil {
				return err
			}
			recorded = true
		}
	}
	if !recorded {
		if _, err := ctx.Record(c); err != nil {
			return err
		}
	}
	history := ctx.recorder.History()
	ind := history[len(history)-1]
	log.Infof(
		"engine complete at %v: employed %s/%s, mean wage %.2f",
		ctx.clock, humanize.Comma(int64(ind.Employed)), humanize.Comma(int64(ind.Households)), ind.MeanWage,
	)
	return nil
}
