package company

import (
	"github.com/tsinghua-fib-lab/agentsociety-econsim/ecosim"
	"github.com/tsinghua-fib-lab/agentsociety-econsim/entity"
	"github.com/tsinghua-fib-lab/agentsociety-econsim/utils/container"
)

// Company 企业智能体
// 功能：雇佣家庭生产商品，按月调整营销、工资、雇佣与价格
// 说明：员工集合保持雇佣顺序，解雇时总是移除最早雇佣的员工
type Company struct {
	ctx entity.ITaskContext

	id int32

	wealth    float64 // 现金
	wage      float64 // 工资率
	price     float64 // 商品价格
	inventory float64 // 库存
	demand    float64 // 本月需求累计
	sold      float64 // 本月销量累计

	lookingForWorker       bool
	employees              *container.Set[entity.IHousehold]
	fullWorkplaces         int32 // 连续未流失员工的月数
	workersInPreviousMonth int   // 上月员工数

	marketingInvestments float64 // 投入营销的劳动比例
	marketingBoost       float64 // 营销加成，每月衰减
}

// newCompany 创建企业
// 功能：按配置范围随机初始化财富、工资和价格
// 参数：ctx-任务上下文，id-企业ID
// 说明：随机数消耗顺序固定为财富、工资、价格
func newCompany(ctx entity.ITaskContext, id int32) *Company {
	p := ctx.RuntimeConfig().M
	e := ctx.Engine()
	c := &Company{
		ctx:                  ctx,
		id:                   id,
		inventory:            p.Inventory,
		demand:               p.Demand,
		employees:            container.NewSet[entity.IHousehold](),
		marketingInvestments: p.MarketingInvestments,
	}
	c.wealth = float64(e.IntRange(p.MinWealth, p.MaxWealth))
	c.wage = float64(e.IntRange(p.MinWage, p.MaxWage))
	c.price = p.InitialPrice + float64(e.IntRange(p.MinRandomPrice, p.MaxRandomPrice))
	return c
}

func (c *Company) ID() int32 { return c.id }
func (c *Company) Wealth() float64 { return c.wealth }
func (c *Company) Wage() float64 { return c.wage }
func (c *Company) Price() float64 { return c.price }
func (c *Company) Inventory() float64 { return c.inventory }
func (c *Company) Demand() float64 { return c.demand }
func (c *Company) Sold() float64 { return c.sold }
func (c *Company) LookingForWorker() bool { return c.lookingForWorker }
func (c *Company) MarketingBoost() float64 { return c.marketingBoost }
func (c *Company) MarketingInvestments() float64 { return c.marketingInvestments }
func (c *Company) FullWorkplaces() int32 { return c.fullWorkplaces }
func (c *Company) NumEmployees() int { return c.employees.Len() }

// Employees 按雇佣顺序返回员工
func (c *Company) Employees() []entity.IHousehold {
	return c.employees.Values()
}

func (c *Company) HasEmployee(h entity.IHousehold) bool {
	return c.employees.Contains(h)
}

// Hire 加入员工集合并停止招聘
// 说明：家庭一侧的雇主字段由家庭在同一次换工作中设置
func (c *Company) Hire(h entity.IHousehold) {
	if !c.employees.Add(h) {
		log.Panicf("company %d: household %d is already an employee", c.id, h.ID())
	}
	c.lookingForWorker = false
}

// Dismiss 移出员工集合
func (c *Company) Dismiss(h entity.IHousehold) {
	if !c.employees.Remove(h) {
		log.Panicf("company %d: household %d is not an employee", c.id, h.ID())
	}
}

func (c *Company) AddDemand(quantity float64) {
	c.demand += quantity
}

// Sell 完成一笔交易
func (c *Company) Sell(quantity, total float64) {
	if quantity > c.inventory {
		log.Panicf("company %d: sell %v exceeds inventory %v", c.id, quantity, c.inventory)
	}
	c.inventory -= quantity
	c.wealth += total
	c.sold += quantity
}

// 以下Set方法供场景构造与外部干预使用

func (c *Company) SetWealth(v float64) { c.wealth = v }
func (c *Company) SetWage(v float64) { c.wage = v }
func (c *Company) SetPrice(v float64) { c.price = v }
func (c *Company) SetInventory(v float64) { c.inventory = v }
func (c *Company) SetDemand(v float64) { c.demand = v }
func (c *Company) SetSold(v float64) { c.sold = v }
func (c *Company) SetLookingForWorker(v bool) { c.lookingForWorker = v }
func (c *Company) SetMarketingBoost(v float64) { c.marketingBoost = v }
func (c *Company) SetMarketingInvestments(v float64) { c.marketingInvestments = v }
func (c *Company) SetFullWorkplaces(v int32) { c.fullWorkplaces = v }

// State 状态快照
func (c *Company) State() ecosim.CompanyState {
	employees := make([]int32, 0, c.employees.Len())
	c.employees.Each(func(h entity.IHousehold) {
		employees = append(employees, h.ID())
	})
	return ecosim.CompanyState{
		ID:                   c.id,
		Wealth:               c.wealth,
		Wage:                 c.wage,
		Price:                c.price,
		Inventory:            c.inventory,
		Demand:               c.demand,
		Sold:                 c.sold,
		LookingForWorker:     c.lookingForWorker,
		Employees:            employees,
		MarketingInvestments: c.marketingInvestments,
		MarketingBoost:       c.marketingBoost,
		FullWorkplaces:       c.fullWorkplaces,
	}
}

// step 每日激活
// 功能：先营销积累与生产，周期日再执行月度更新
func (c *Company) step(monthly bool) {
	c.MarketingRaise()
	c.Produce()
	if monthly {
		c.EndOfMonth()
	}
}

// MarketingRaise 营销加成按员工数与营销投入比例累积
func (c *Company) MarketingRaise() {
	if !c.ctx.RuntimeConfig().MarketingEnabled() {
		return
	}
	c.marketingBoost += float64(c.employees.Len()) * c.marketingInvestments * c.ctx.RuntimeConfig().M.LambdaCoefficient
}

// Produce 按员工数生产，扣除投入营销的劳动
func (c *Company) Produce() {
	c.inventory += float64(c.employees.Len()) * c.ctx.RuntimeConfig().M.LambdaCoefficient * (1 - c.marketingInvestments)
}
