package task

import (
	"context"
	"errors"
	"fmt"

	"github.com/tsinghua-fib-lab/agentsociety-econsim/clock"
	"github.com/tsinghua-fib-lab/agentsociety-econsim/ecosim"
	"github.com/tsinghua-fib-lab/agentsociety-econsim/entity"
	"github.com/tsinghua-fib-lab/agentsociety-econsim/entity/company"
	"github.com/tsinghua-fib-lab/agentsociety-econsim/entity/household"
	"github.com/tsinghua-fib-lab/agentsociety-econsim/entity/network"
	"github.com/tsinghua-fib-lab/agentsociety-econsim/utils/config"
	"github.com/tsinghua-fib-lab/agentsociety-econsim/utils/randengine"
)

// Sink 指标输出目标
type Sink interface {
	Write(ctx context.Context, ind ecosim.Indicators) error
}

// Context 仿真任务上下文
// 功能：包含一次仿真任务的所有变量和状态，替代全局变量
// 说明：同一Context只能被一个goroutine驱动；并发读取请通过Recorder
type Context struct {
	// 时钟
	clock *clock.Clock
	// 随机数引擎，全部随机决策的唯一来源
	engine *randengine.Engine

	// Company管理器
	companyManager *company.CompanyManager
	// Household管理器
	householdManager *household.HouseholdManager
	// 社交网络
	network *network.Network

	// 运行时配置文件
	runtimeConfig *config.RuntimeConfig

	// 快照与指标记录
	recorder *ecosim.Recorder
	// 指标输出
	sinks []Sink
}

// NewContext 创建新的仿真任务上下文
// 功能：初始化仿真系统的所有组件并构建初始经济
// 参数：c-配置对象，非法配置直接panic
// 返回：初始化完成的Context实例
// 算法说明：
// 1. 校验配置，创建时钟、随机数引擎与运行时配置
// 2. 创建企业、家庭管理器与社交网络
// 3. 按 企业 -> 家庭 -> 社交网络 的顺序初始化，固定随机数消耗顺序
func NewContext(c config.Config) *Context {
	if err := c.Validate(); err != nil {
		log.Panicf("invalid config: %v", err)
	}
	ctx := &Context{
		clock:         clock.New(c.Control),
		engine:        randengine.New(c.Control.Seed),
		runtimeConfig: config.NewRuntimeConfig(c),
		recorder:      ecosim.NewRecorder(0),
		sinks:         make([]Sink, 0),
	}
	ctx.companyManager = company.NewManager(ctx)
	ctx.householdManager = household.NewManager(ctx)
	ctx.network = network.New(ctx)
	ctx.Init()
	return ctx
}

// Init 构建初始经济
func (ctx *Context) Init() {
	ctx.clock.Init()
	p := ctx.runtimeConfig.All
	ctx.companyManager.Init(p.Population.Companies)
	// 家庭抽取供应商依赖企业
	ctx.householdManager.Init(p.Population.Households)
	ctx.network.Init(p.Population.Households, p.Network.Density)
	ctx.recorder.SetNow(ctx.clock.Day, ctx.clock.Month())
}

func (ctx *Context) Clock() *clock.Clock {
	return ctx.clock
}

func (ctx *Context) Engine() *randengine.Engine {
	return ctx.engine
}

func (ctx *Context) RuntimeConfig() *config.RuntimeConfig {
	return ctx.runtimeConfig
}

func (ctx *Context) CompanyManager() entity.ICompanyManager {
	return ctx.companyManager
}

func (ctx *Context) HouseholdManager() entity.IHouseholdManager {
	return ctx.householdManager
}

func (ctx *Context) Network() entity.INetwork {
	return ctx.network
}

// Company 根据ID获取具体的企业，不存在则panic
func (ctx *Context) Company(id int32) *company.Company {
	return ctx.companyManager.GetCompany(id)
}

// Household 根据ID获取具体的家庭，不存在则panic
func (ctx *Context) Household(id int32) *household.Household {
	return ctx.householdManager.GetHousehold(id)
}

// Recorder 快照与指标记录器，可并发读取
func (ctx *Context) Recorder() *ecosim.Recorder {
	return ctx.recorder
}

// AddSink 添加指标输出目标
func (ctx *Context) AddSink(s Sink) {
	ctx.sinks = append(ctx.sinks, s)
}

// Snapshot 当前全体智能体的状态副本
// 说明：只应在两步之间调用；Day为已完成模拟的天数
func (ctx *Context) Snapshot() ecosim.Snapshot {
	s := ecosim.Snapshot{
		Day:        ctx.clock.Day,
		Month:      ctx.clock.Month(),
		Households: make([]ecosim.HouseholdState, 0, ctx.householdManager.Len()),
		Companies:  make([]ecosim.CompanyState, 0, ctx.companyManager.Len()),
	}
	for _, h := range ctx.householdManager.Households() {
		s.Households = append(s.Households, h.State())
	}
	for _, c := range ctx.companyManager.Companies() {
		s.Companies = append(s.Companies, c.State())
	}
	return s
}

// Record 记录当前快照并写入全部输出目标
// 返回：本次的指标和输出错误
func (ctx *Context) Record(c context.Context) (ecosim.Indicators, error) {
	ind := ctx.recorder.Record(ctx.Snapshot())
	for _, s := range ctx.sinks {
		if err := s.Write(c, ind); err != nil {
			return ind, fmt.Errorf("task: write indicators of day %d: %w", ind.Day, err)
		}
	}
	return ind, nil
}

// CheckIntegrity 检查全体智能体的一致性
// 功能：雇佣关系双向一致、供应商数量、工资与库存非负
// 返回：全部问题合并后的错误，无问题返回nil
func (ctx *Context) CheckIntegrity() error {
	var errs []error
	a := ctx.runtimeConfig.H.AConnectionsNumber
	for _, h := range ctx.householdManager.Households() {
		if c := h.Employer(); c != nil && !c.HasEmployee(h) {
			errs = append(errs, fmt.Errorf("household %d: employer %d does not list it", h.ID(), c.ID()))
		}
		if n := len(ctx.Household(h.ID()).Suppliers()); n != a {
			errs = append(errs, fmt.Errorf("household %d: %d suppliers, want %d", h.ID(), n, a))
		}
	}
	for _, c := range ctx.companyManager.Companies() {
		for _, h := range ctx.Company(c.ID()).Employees() {
			if h.Employer() != c {
				errs = append(errs, fmt.Errorf("company %d: employee %d works elsewhere", c.ID(), h.ID()))
			}
		}
		if c.Wage() < 0 {
			errs = append(errs, fmt.Errorf("company %d: negative wage %v", c.ID(), c.Wage()))
		}
		if c.Inventory() < 0 {
			errs = append(errs, fmt.Errorf("company %d: negative inventory %v", c.ID(), c.Inventory()))
		}
	}
	return errors.Join(errs...)
}
