package company

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/agentsociety-econsim/entity"
)

// CompanyManager Company管理器
// 功能：持有全部企业（下标即ID），按随机顺序逐个激活
type CompanyManager struct {
	ctx entity.ITaskContext

	companies []*Company
}

// NewManager 创建Company管理器实例
func NewManager(ctx entity.ITaskContext) *CompanyManager {
	return &CompanyManager{
		ctx:       ctx,
		companies: make([]*Company, 0),
	}
}

// Init 初始化全部企业
// 功能：按ID顺序创建n个企业
// 说明：顺序创建以保证随机数消耗顺序固定
func (m *CompanyManager) Init(n int) {
	m.companies = make([]*Company, n)
	for i := range m.companies {
		m.companies[i] = newCompany(m.ctx, int32(i))
	}
	log.Infof("Company: %v", n)
}

// Get 根据ID获取Company实例，如果不存在则panic
func (m *CompanyManager) Get(id int32) entity.ICompany {
	return m.GetCompany(id)
}

// GetCompany 根据ID获取具体的Company实例，如果不存在则panic
func (m *CompanyManager) GetCompany(id int32) *Company {
	if id < 0 || int(id) >= len(m.companies) {
		log.Panicf("no id %d in company data", id)
	}
	return m.companies[id]
}

// GetOrError 根据ID获取Company实例，如果不存在则返回错误
func (m *CompanyManager) GetOrError(id int32) (entity.ICompany, error) {
	if id < 0 || int(id) >= len(m.companies) {
		return nil, fmt.Errorf("no id %d in company data", id)
	}
	return m.companies[id], nil
}

// Companies 按ID升序的全部企业
func (m *CompanyManager) Companies() []entity.ICompany {
	return lo.Map(m.companies, func(c *Company, _ int) entity.ICompany {
		return c
	})
}

func (m *CompanyManager) Len() int {
	return len(m.companies)
}

// Update 更新阶段
// 功能：每天抽取新的随机排列，逐个激活企业
// 参数：monthly-今天是否为月度周期日
func (m *CompanyManager) Update(monthly bool) {
	for _, i := range m.ctx.Engine().Perm(len(m.companies)) {
		m.companies[i].step(monthly)
	}
}
