package entity

// Manager依赖倒置

// entity/company/manager.go的依赖倒置
type ICompanyManager interface {
	Init(n int) // 初始化

	// 输入Company ID，查找Company，如果不存在则panic
	Get(id int32) ICompany
	// 输入Company ID，查找Company，如果不存在则返回error
	GetOrError(id int32) (ICompany, error)
	// 按ID升序的全部企业
	Companies() []ICompany
	Len() int

	Update(monthly bool) // 更新阶段：按随机顺序激活全部企业
}

// entity/household/manager.go的依赖倒置
type IHouseholdManager interface {
	Init(n int) // 初始化

	// 输入Household ID，查找Household，如果不存在则panic
	Get(id int32) IHousehold
	// 输入Household ID，查找Household，如果不存在则返回error
	GetOrError(id int32) (IHousehold, error)
	// 按ID升序的全部家庭
	Households() []IHousehold
	Len() int

	Update(monthly bool) // 更新阶段：按随机顺序激活全部家庭
}

// entity/network的依赖倒置
type INetwork interface {
	Init(n int, density float64) // 初始化：生成G(n,p)社交图

	// 按ID升序的邻居家庭ID
	Neighbors(id int32) []int32
	// 邻居最偏好供应商的影响力得分（企业ID -> 得分）
	Influence(h IHousehold) map[int32]float64
	NumEdges() int
}
