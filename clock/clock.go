package clock

import (
	"fmt"

	"github.com/tsinghua-fib-lab/agentsociety-econsim/utils/config"
)

// Clock 仿真时钟管理器
// 功能：管理仿真系统的日期推进，判定月度周期
// 说明：一步即一天；时钟只由调度器推进
type Clock struct {
	CYCLE      int32 // 月度周期长度（天）
	START_DAY  int32 // 起始日
	END_DAY    int32 // 结束日，模拟区间[START, END)
	SKIP_FIRST bool  // 起始日不视为月度周期日

	Day int32 // 当前正在模拟（或即将模拟）的日期
}

// New 根据配置创建新的时钟实例
// 参数：control-控制配置，包含起止天数与周期长度
// 返回：初始化完成的时钟实例
func New(control config.Control) *Clock {
	c := &Clock{
		CYCLE:      control.Cycle,
		START_DAY:  control.Step.Start,
		END_DAY:    control.Step.Start + control.Step.Total,
		SKIP_FIRST: control.SkipInitialCycle,
	}
	c.Init()
	return c
}

// Init 重置时钟到起始日
func (c *Clock) Init() {
	c.Day = c.START_DAY
}

// Advance 推进一天
func (c *Clock) Advance() {
	c.Day++
}

// IsCycleDay 当前日期是否为月度周期日
// 功能：判断 day mod cycle == 0
// 说明：SKIP_FIRST为true时起始日（通常为第0天）不触发月度行为
func (c *Clock) IsCycleDay() bool {
	if c.SKIP_FIRST && c.Day == c.START_DAY {
		return false
	}
	return c.Day%c.CYCLE == 0
}

// Month 当前日期所在的月份序号
func (c *Clock) Month() int32 {
	return c.Day / c.CYCLE
}

// Finished 是否已到达结束日
func (c *Clock) Finished() bool {
	return c.Day >= c.END_DAY
}

// String 获取时钟的字符串表示（Day X (month Y, Z/cycle)）
func (c *Clock) String() string {
	return fmt.Sprintf("Day %d (month %d, %d/%d)", c.Day, c.Month(), c.Day%c.CYCLE, c.CYCLE)
}
