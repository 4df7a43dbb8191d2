package household

import (
	"slices"

	"github.com/tsinghua-fib-lab/agentsociety-econsim/entity"
	"github.com/tsinghua-fib-lab/agentsociety-econsim/entity/network"
	"github.com/tsinghua-fib-lab/agentsociety-econsim/utils/randengine"
)

// AddFirmByHouseholds 发现一家新企业
// 功能：从未知企业中按员工数加权抽取一个候选
// 返回：候选企业，没有未知企业时返回false
// 算法说明：
// 1. 按ID顺序收集不在供应商集合中的企业，分数为员工数
// 2. 按分数升序稳定排序
// 3. 按 (分数+1) 加权抽取一次
func (h *Household) AddFirmByHouseholds() (entity.ICompany, bool) {
	candidates := make([]randengine.Scored[entity.ICompany], 0)
	for _, c := range h.ctx.CompanyManager().Companies() {
		if h.suppliers.Contains(c) {
			continue
		}
		candidates = append(candidates, randengine.Scored[entity.ICompany]{
			Value: c,
			Score: float64(c.NumEmployees()),
		})
	}
	sortByScore(candidates)
	return randengine.DrawScored(h.ctx.Engine(), candidates)
}

// SearchCheaperPrices 搜索更便宜的供应商
// 功能：以prob_search_price的概率随机选一个已知供应商，与新发现的企业比价
// 说明：新企业价格低于已知供应商价格乘以critical_price_ratio时替换
func (h *Household) SearchCheaperPrices() {
	p := h.ctx.RuntimeConfig().H
	e := h.ctx.Engine()
	if !e.PTrue(p.ProbSearchPrice) {
		return
	}
	known := h.suppliers.At(e.Intn(h.suppliers.Len()))
	candidate, ok := h.AddFirmByHouseholds()
	if !ok {
		return
	}
	if candidate.Price()/known.Price() < p.CriticalPriceRatio {
		h.replaceSupplier(known, candidate)
	}
}

// SearchProductiveFirms 淘汰经常缺货的供应商
// 功能：以prob_search_prod的概率按缺货次数加权选出一个供应商，替换为新发现的企业
func (h *Household) SearchProductiveFirms() {
	e := h.ctx.Engine()
	if !e.PTrue(h.ctx.RuntimeConfig().H.ProbSearchProd) {
		return
	}
	scored := make([]randengine.Scored[entity.ICompany], 0, h.suppliers.Len())
	h.suppliers.Each(func(c entity.ICompany) {
		scored = append(scored, randengine.Scored[entity.ICompany]{
			Value: c,
			Score: float64(h.penalty[c.ID()]),
		})
	})
	sortByScore(scored)
	drop, ok := randengine.DrawScored(e, scored)
	if !ok {
		return
	}
	candidate, ok := h.AddFirmByHouseholds()
	if !ok {
		return
	}
	h.replaceSupplier(drop, candidate)
}

// SearchNetworkFirms 采纳社交网络推荐的供应商
// 功能：以prob_search_network的概率，把影响力最高且尚未认识的企业替换进供应商集合
// 说明：关闭社交网络时不消耗随机数
func (h *Household) SearchNetworkFirms() {
	rc := h.ctx.RuntimeConfig()
	if !rc.NetworkEnabled() {
		return
	}
	e := h.ctx.Engine()
	if !e.PTrue(rc.H.ProbSearchNetwork) {
		return
	}
	id, score, ok := network.MostInfluenced(h.influence)
	if !ok || score <= 0 {
		return
	}
	best := h.ctx.CompanyManager().Get(id)
	if h.suppliers.Contains(best) {
		return
	}
	known := h.suppliers.At(e.Intn(h.suppliers.Len()))
	h.replaceSupplier(known, best)
}

// SearchNewJob 求职
// 功能：最多随机访问unemployed_attempts家企业，遇到正在招聘的企业即结束搜索
// 算法说明：
// 1. 有工作：候选工资更高，且当前工资低于保留工资或以search_job_chance的概率，才跳槽
// 2. 无工作：候选工资不低于保留工资时入职
// 3. 所有尝试都未遇到可结束搜索的企业时，保留工资按wage_decreasing_coefficient衰减
func (h *Household) SearchNewJob() {
	p := h.ctx.RuntimeConfig().H
	e := h.ctx.Engine()
	cm := h.ctx.CompanyManager()
	for i := 0; i < p.UnemployedAttempts; i++ {
		c := cm.Get(int32(e.Intn(cm.Len())))
		if !c.LookingForWorker() {
			continue
		}
		if h.employer != nil {
			if c.Wage() > h.employer.Wage() && (h.employer.Wage() < h.reservationWage || e.PTrue(p.SearchJobChance)) {
				log.Debugf("household %d: company %d -> %d", h.id, h.employer.ID(), c.ID())
				h.SwitchEmployer(c)
			}
			return
		}
		if c.Wage() >= h.reservationWage {
			log.Debugf("household %d: hired by company %d", h.id, c.ID())
			h.SwitchEmployer(c)
			return
		}
	}
	h.reservationWage *= p.WageDecreasingCoefficient
}

// replaceSupplier 原位替换供应商，新供应商的计数从0开始
func (h *Household) replaceSupplier(old, c entity.ICompany) {
	if !h.suppliers.Replace(old, c) {
		log.Panicf("household %d: cannot replace supplier %d with %d", h.id, old.ID(), c.ID())
	}
	delete(h.penalty, old.ID())
	delete(h.preference, old.ID())
	h.penalty[c.ID()] = 0
	h.preference[c.ID()] = 0
}

func sortByScore(candidates []randengine.Scored[entity.ICompany]) {
	slices.SortStableFunc(candidates, func(a, b randengine.Scored[entity.ICompany]) int {
		switch {
		case a.Score < b.Score:
			return -1
		case a.Score > b.Score:
			return 1
		}
		return 0
	})
}
