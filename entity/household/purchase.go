package household

import (
	"math"
	"slices"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/agentsociety-econsim/entity"
)

// MarketingDiscount 营销加成带来的价格感知折扣
// 功能：(100-√boost)/100，不低于0.6；boost超过1600时固定为0.6
func MarketingDiscount(boost float64) float64 {
	if boost > 1600 {
		return 0.6
	}
	return math.Max((100-math.Sqrt(boost))/100, 0.6)
}

// InfluenceDiscount 社交影响力带来的价格感知折扣
// 功能：1-0.01√score，不低于0.95
func InfluenceDiscount(score float64) float64 {
	return math.Max(1-0.01*math.Sqrt(score), 0.95)
}

// EffectivePrice 家庭感知到的供应商价格
// 说明：关闭的功能对应折扣为1
func (h *Household) EffectivePrice(c entity.ICompany) float64 {
	rc := h.ctx.RuntimeConfig()
	price := c.Price()
	if rc.MarketingEnabled() {
		price *= MarketingDiscount(c.MarketingBoost())
	}
	if rc.NetworkEnabled() {
		price *= InfluenceDiscount(h.influence[c.ID()])
	}
	return price
}

// BuyGoods 每日购买
// 功能：按感知价格从低到高依次询价，第一家库存充足且买得起的供应商成交
// 算法说明：
// 1. 日消费量q<=0时不购买
// 2. 每家被询价的供应商需求累计q
// 3. 库存不足：该供应商缺货计数加一
// 4. 库存充足且 floor(q*price) <= 财富：成交，成交计数加一，结束
func (h *Household) BuyGoods() {
	if h.consumption <= 0 {
		return
	}
	q := float64(h.consumption)
	type ranked struct {
		c     entity.ICompany
		price float64
	}
	suppliers := lo.Map(h.suppliers.Values(), func(c entity.ICompany, _ int) ranked {
		return ranked{c: c, price: h.EffectivePrice(c)}
	})
	slices.SortStableFunc(suppliers, func(a, b ranked) int {
		switch {
		case a.price < b.price:
			return -1
		case a.price > b.price:
			return 1
		}
		return 0
	})
	for _, s := range suppliers {
		c := s.c
		c.AddDemand(q)
		if c.Inventory() < q {
			h.penalty[c.ID()]++
			continue
		}
		total := math.Floor(q * c.Price())
		if total > h.wealth {
			continue
		}
		h.wealth -= total
		c.Sell(q, total)
		h.preference[c.ID()]++
		return
	}
}

// IdentifyConsumption 计算日消费量
// 功能：floor((财富/(周期*供应商平均价格))^consumption_power)，财富非正时为0
func (h *Household) IdentifyConsumption() {
	n := h.suppliers.Len()
	if n == 0 {
		log.Panicf("household %d: no supplier", h.id)
	}
	if h.wealth <= 0 {
		h.consumption = 0
		return
	}
	rc := h.ctx.RuntimeConfig()
	mean := lo.SumBy(h.suppliers.Values(), func(c entity.ICompany) float64 {
		return c.Price()
	}) / float64(n)
	if mean <= 0 {
		log.Panicf("household %d: mean supplier price %v", h.id, mean)
	}
	h.consumption = int64(math.Floor(math.Pow(h.wealth/(float64(rc.C.Cycle)*mean), rc.H.ConsumptionPower)))
}

// CalculateMostPreferred 记录本月成交次数最多的供应商
// 说明：次数相同时取集合顺序中靠前者
func (h *Household) CalculateMostPreferred() {
	h.mostPreferred, h.mostPreferredCount = nil, 0
	first := true
	h.suppliers.Each(func(c entity.ICompany) {
		n := h.preference[c.ID()]
		if first || n > h.mostPreferredCount {
			h.mostPreferred, h.mostPreferredCount = c, n
			first = false
		}
	})
}

// CalculateSocialInfluence 从社交网络邻居处汇总影响力
// 说明：关闭社交网络时影响力为空
func (h *Household) CalculateSocialInfluence() {
	if !h.ctx.RuntimeConfig().NetworkEnabled() {
		h.influence = make(map[int32]float64)
		return
	}
	h.influence = h.ctx.Network().Influence(h)
}

