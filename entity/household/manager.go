package household

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/agentsociety-econsim/entity"
)

// HouseholdManager Household管理器
// 功能：持有全部家庭（下标即ID），按随机顺序逐个激活
type HouseholdManager struct {
	ctx entity.ITaskContext

	households []*Household
}

// NewManager 创建Household管理器实例
func NewManager(ctx entity.ITaskContext) *HouseholdManager {
	return &HouseholdManager{
		ctx:        ctx,
		households: make([]*Household, 0),
	}
}

// Init 初始化全部家庭
// 功能：按ID顺序创建n个家庭
// 说明：依赖企业管理器已完成初始化
func (m *HouseholdManager) Init(n int) {
	m.households = make([]*Household, n)
	for i := range m.households {
		m.households[i] = newHousehold(m.ctx, int32(i))
	}
	log.Infof("Household: %v", n)
}

// Get 根据ID获取Household实例，如果不存在则panic
func (m *HouseholdManager) Get(id int32) entity.IHousehold {
	return m.GetHousehold(id)
}

// GetHousehold 根据ID获取具体的Household实例，如果不存在则panic
func (m *HouseholdManager) GetHousehold(id int32) *Household {
	if id < 0 || int(id) >= len(m.households) {
		log.Panicf("no id %d in household data", id)
	}
	return m.households[id]
}

// GetOrError 根据ID获取Household实例，如果不存在则返回错误
func (m *HouseholdManager) GetOrError(id int32) (entity.IHousehold, error) {
	if id < 0 || int(id) >= len(m.households) {
		return nil, fmt.Errorf("no id %d in household data", id)
	}
	return m.households[id], nil
}

// Households 按ID升序的全部家庭
func (m *HouseholdManager) Households() []entity.IHousehold {
	return lo.Map(m.households, func(h *Household, _ int) entity.IHousehold {
		return h
	})
}

func (m *HouseholdManager) Len() int {
	return len(m.households)
}

// Update 更新阶段
// 功能：每天抽取新的随机排列，逐个激活家庭
// 参数：monthly-今天是否为月度周期日
func (m *HouseholdManager) Update(monthly bool) {
	for _, i := range m.ctx.Engine().Perm(len(m.households)) {
		m.households[i].step(monthly)
	}
}
