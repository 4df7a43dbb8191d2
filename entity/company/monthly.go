package company

import (
	"math"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/agentsociety-econsim/entity"
)

// EndOfMonth 月度更新
// 功能：按固定顺序执行企业的月度决策
// 算法说明：
// 1. 调整营销投入比例
// 2. 营销加成衰减
// 3. 支付工资
// 4. 分享超额流动性
// 5. 统计满员月数
// 6. 调整工资率
// 7. 招聘或解雇，重置需求与销量
// 8. 根据边际成本调整价格
func (c *Company) EndOfMonth() {
	c.ChangeMarketingInvestments()
	c.InvestInMarketing()
	c.PayWages()
	c.ShareLiquidity()
	c.CountWorkers()
	c.SetWageRate()
	c.HireOrFire()
	c.ChangeGoodsPrice()
}

// ChangeMarketingInvestments 调整营销投入比例
// 功能：库存相对上月销量充足时加大营销，否则减少，比例限制在[min, max]内
func (c *Company) ChangeMarketingInvestments() {
	if !c.ctx.RuntimeConfig().MarketingEnabled() {
		return
	}
	p := c.ctx.RuntimeConfig().M
	if c.inventory > p.StartMarketing*c.sold {
		c.marketingInvestments = math.Min(c.marketingInvestments*1.1, p.MaxMarketingInvestments)
	} else {
		c.marketingInvestments = math.Max(c.marketingInvestments*0.8, p.MinMarketingInvestments)
	}
}

// InvestInMarketing 营销加成按保留比例衰减
func (c *Company) InvestInMarketing() {
	c.marketingBoost *= c.ctx.RuntimeConfig().M.MarketingRetention
}

// PayWages 支付工资
// 功能：向每位员工支付工资并抬高其保留工资
// 算法说明：
// 1. 无员工时直接返回
// 2. 工资总额超过现金时，把工资降为现金的人均份额（向下取整）
// 3. 逐个支付，员工保留工资不低于所付工资
func (c *Company) PayWages() {
	n := c.employees.Len()
	if n == 0 {
		return
	}
	if float64(n)*c.wage > c.wealth {
		c.wage = math.Max(math.Floor(c.wealth/float64(n)), 0)
	}
	c.employees.Each(func(h entity.IHousehold) {
		h.ReceiveWage(c.wage)
		c.wealth -= c.wage
	})
}

// ShareLiquidity 分享超额流动性
// 功能：保留 wage*n*buffer 的储备，其余现金按人均份额加到工资与员工财富上
func (c *Company) ShareLiquidity() {
	n := c.employees.Len()
	if n == 0 {
		return
	}
	buffer := c.wage * float64(n) * c.ctx.RuntimeConfig().M.MoneyBufferCoefficient
	share := math.Floor((c.wealth - buffer) / float64(n))
	if share <= 0 {
		return
	}
	c.wage += share
	c.employees.Each(func(h entity.IHousehold) {
		h.ReceiveBonus(share)
		c.wealth -= share
	})
}

// CountWorkers 统计满员月数
// 说明：员工数未减少则计数加一，否则清零
func (c *Company) CountWorkers() {
	n := c.employees.Len()
	if n >= c.workersInPreviousMonth {
		c.fullWorkplaces++
	} else {
		c.fullWorkplaces = 0
	}
	c.workersInPreviousMonth = n
}

// SetWageRate 调整工资率
// 功能：仍在招聘则涨薪，长期满员则降薪，两者独立判断
// 说明：工资不会低于0
func (c *Company) SetWageRate() {
	p := c.ctx.RuntimeConfig().M
	e := c.ctx.Engine()
	if c.lookingForWorker {
		c.wage *= 1 + e.Uniform(0, p.Sigma)
	}
	if c.fullWorkplaces > p.Gamma {
		c.wage *= 1 - e.Uniform(0, p.Sigma)
	}
	c.wage = lo.Clamp(c.wage, 0, math.MaxFloat64)
}

// HireOrFire 招聘或解雇
// 功能：库存相对需求过低时招聘，过高时解雇最早雇佣的一名员工
// 说明：结束后重置本月需求与销量
func (c *Company) HireOrFire() {
	p := c.ctx.RuntimeConfig().M
	c.lookingForWorker = c.inventory <= p.DemandMin*c.demand
	if c.inventory > p.DemandMax*c.demand {
		if h, ok := c.employees.First(); ok {
			if h.Employer() != entity.ICompany(c) {
				log.Panicf("company %d: employee %d works for another company", c.id, h.ID())
			}
			h.LoseJob()
			c.employees.Remove(h)
			log.Debugf("company %d fired household %d", c.id, h.ID())
		}
	}
	c.demand = 0
	c.sold = 0
}

// MarginalCost 边际成本：工资除以每名员工每周期的产量
func (c *Company) MarginalCost() float64 {
	p := c.ctx.RuntimeConfig()
	return c.wage / (float64(p.C.Cycle) * p.M.LambdaCoefficient)
}

// ChangeGoodsPrice 根据边际成本调整价格
// 功能：利润率过低时以概率tau涨价，过高时以概率tau降价
// 算法说明：
// 1. 计算边际成本mc
// 2. price < phi_min*mc 且命中tau：price *= 1+U(0, upsilon)
// 3. price > phi_max*mc 且命中tau：price *= 1-U(0, upsilon)
func (c *Company) ChangeGoodsPrice() {
	p := c.ctx.RuntimeConfig().M
	e := c.ctx.Engine()
	mc := c.MarginalCost()
	if c.price < p.PhiMin*mc && e.PTrue(p.Tau) {
		c.price *= 1 + e.Uniform(0, p.Upsilon)
	}
	if c.price > p.PhiMax*mc && e.PTrue(p.Tau) {
		c.price *= 1 - e.Uniform(0, p.Upsilon)
	}
}
