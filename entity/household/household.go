package household

import (
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/agentsociety-econsim/ecosim"
	"github.com/tsinghua-fib-lab/agentsociety-econsim/entity"
	"github.com/tsinghua-fib-lab/agentsociety-econsim/utils/container"
)

// Household 家庭智能体
// 功能：在劳动市场求职、在商品市场从固定数量的供应商处购买
// 说明：供应商集合大小恒等于配置的连接数（单次替换过程中除外），不含重复企业
type Household struct {
	ctx entity.ITaskContext

	id int32

	wealth          float64 // 现金
	reservationWage float64 // 保留工资（期望工资）
	consumption     int64   // 日消费量

	suppliers *container.Set[entity.ICompany] // A类连接：可购买商品的企业
	employer  entity.ICompany                 // 雇主，失业为nil

	penalty    map[int32]int32   // 供应商ID -> 本月缺货次数
	preference map[int32]int32   // 供应商ID -> 本月成交次数
	influence  map[int32]float64 // 企业ID -> 社交网络影响力

	mostPreferred      entity.ICompany // 本月成交次数最多的供应商
	mostPreferredCount int32
}

// newHousehold 创建家庭
// 功能：随机初始化财富，无放回地抽取不重复的供应商
// 参数：ctx-任务上下文，id-家庭ID
// 说明：企业必须先于家庭初始化
func newHousehold(ctx entity.ITaskContext, id int32) *Household {
	p := ctx.RuntimeConfig().H
	e := ctx.Engine()
	h := &Household{
		ctx:             ctx,
		id:              id,
		reservationWage: p.DefaultWage,
		consumption:     p.DefaultConsumption,
		suppliers:       container.NewSet[entity.ICompany](),
		influence:       make(map[int32]float64),
	}
	h.wealth = float64(e.IntRange(p.MinWealth, p.MaxWealth))
	cm := ctx.CompanyManager()
	for _, i := range e.SampleDistinct(cm.Len(), p.AConnectionsNumber) {
		h.suppliers.Add(cm.Get(int32(i)))
	}
	h.ResetCounters()
	return h
}

func (h *Household) ID() int32                 { return h.id }
func (h *Household) Wealth() float64           { return h.wealth }
func (h *Household) ReservationWage() float64  { return h.reservationWage }
func (h *Household) Consumption() int64        { return h.consumption }
func (h *Household) Employer() entity.ICompany { return h.employer }

// Suppliers 按集合顺序返回供应商
func (h *Household) Suppliers() []entity.ICompany {
	return h.suppliers.Values()
}

// HasSupplier 是否为已知供应商
func (h *Household) HasSupplier(c entity.ICompany) bool {
	return h.suppliers.Contains(c)
}

// Penalty 某供应商本月的缺货次数
func (h *Household) Penalty(companyID int32) int32 {
	return h.penalty[companyID]
}

// Preference 某供应商本月的成交次数
func (h *Household) Preference(companyID int32) int32 {
	return h.preference[companyID]
}

// Influence 社交网络影响力副本
func (h *Household) Influence() map[int32]float64 {
	return lo.Assign(h.influence)
}

// MostPreferred 本月最偏好的供应商及成交次数
func (h *Household) MostPreferred() (entity.ICompany, int32) {
	return h.mostPreferred, h.mostPreferredCount
}

// LoseJob 被解雇
func (h *Household) LoseJob() {
	h.employer = nil
}

// ReceiveWage 领取工资，保留工资不低于所付工资
func (h *Household) ReceiveWage(wage float64) {
	h.wealth += wage
	if h.reservationWage < wage {
		h.reservationWage = wage
	}
}

// ReceiveBonus 领取企业分享的流动性
func (h *Household) ReceiveBonus(amount float64) {
	h.wealth += amount
	h.reservationWage += amount
}

// SwitchEmployer 换到新雇主
// 功能：同一步内完成双向引用的更新
// 算法说明：
// 1. 从旧雇主的员工集合中移除自己（如有）
// 2. 加入新雇主的员工集合，新雇主停止招聘
// 3. 雇主字段指向新雇主，保留工资取新雇主工资
func (h *Household) SwitchEmployer(c entity.ICompany) {
	if h.employer == c {
		log.Panicf("household %d: already works for company %d", h.id, c.ID())
	}
	if h.employer != nil {
		h.employer.Dismiss(h)
	}
	c.Hire(h)
	h.employer = c
	h.reservationWage = c.Wage()
}

// 以下Set方法供场景构造与外部干预使用

func (h *Household) SetWealth(v float64)          { h.wealth = v }
func (h *Household) SetReservationWage(v float64) { h.reservationWage = v }
func (h *Household) SetConsumption(v int64)       { h.consumption = v }

// SetSuppliers 替换全部供应商并重置计数器
// 说明：数量必须等于配置的连接数且不得重复
func (h *Household) SetSuppliers(companies ...entity.ICompany) {
	if len(companies) != h.ctx.RuntimeConfig().H.AConnectionsNumber {
		log.Panicf("household %d: %d suppliers, want %d", h.id, len(companies), h.ctx.RuntimeConfig().H.AConnectionsNumber)
	}
	suppliers := container.NewSet(companies...)
	if suppliers.Len() != len(companies) {
		log.Panicf("household %d: duplicated suppliers", h.id)
	}
	h.suppliers = suppliers
	h.ResetCounters()
}

// SetInfluence 直接设置社交影响力，下次月度传播时会被覆盖
func (h *Household) SetInfluence(scores map[int32]float64) {
	h.influence = lo.Assign(scores)
}

// State 状态快照
func (h *Household) State() ecosim.HouseholdState {
	employerID := ecosim.NoEmployer
	if h.employer != nil {
		employerID = h.employer.ID()
	}
	return ecosim.HouseholdState{
		ID:              h.id,
		Wealth:          h.wealth,
		ReservationWage: h.reservationWage,
		Consumption:     h.consumption,
		EmployerID:      employerID,
		Suppliers: lo.Map(h.suppliers.Values(), func(c entity.ICompany, _ int) int32 {
			return c.ID()
		}),
	}
}

// step 每日激活
// 功能：周期日先执行月度更新，然后每天购买
func (h *Household) step(monthly bool) {
	if monthly {
		h.EndOfMonth()
	}
	h.BuyGoods()
}

// EndOfMonth 月度更新
// 算法说明：
// 1. 记录本月最偏好的供应商（须在更换供应商之前，被换掉的供应商的成交计数会被删除）
// 2. 搜索更低价格的供应商
// 3. 淘汰经常缺货的供应商
// 4. 采纳社交网络推荐的供应商
// 5. 求职
// 6. 计算日消费量
// 7. 计算社交影响力
// 8. 重置缺货与成交计数
func (h *Household) EndOfMonth() {
	h.CalculateMostPreferred()
	h.SearchCheaperPrices()
	h.SearchProductiveFirms()
	h.SearchNetworkFirms()
	h.SearchNewJob()
	h.IdentifyConsumption()
	h.CalculateSocialInfluence()
	h.ResetCounters()
}

// ResetCounters 为当前供应商集合重置缺货与成交计数
func (h *Household) ResetCounters() {
	h.penalty = make(map[int32]int32, h.suppliers.Len())
	h.preference = make(map[int32]int32, h.suppliers.Len())
	h.suppliers.Each(func(c entity.ICompany) {
		h.penalty[c.ID()] = 0
		h.preference[c.ID()] = 0
	})
}
