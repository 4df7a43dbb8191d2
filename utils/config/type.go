package config

// OutputPath 指定输出数据去向的配置（MongoDB）
// 功能：定义指标与快照写入的数据库位置
// 说明：URI为空时禁用数据库输出
type OutputPath struct {
	URI      string `yaml:"uri,omitempty"`      // MongoDB连接字符串
	DB       string `yaml:"db,omitempty"`       // 数据库名
	Col      string `yaml:"col,omitempty"`      // 集合名
	Interval int32  `yaml:"interval,omitempty"` // 记录间隔（天），0表示只记录最后一天
	Batch    int    `yaml:"batch,omitempty"`    // 批量写入条数
}

// GetDb 获取数据库名
func (p OutputPath) GetDb() string {
	return p.DB
}

// GetColl 获取集合名
func (p OutputPath) GetColl() string {
	return p.Col
}

// ControlStep 指定模拟器模拟时间范围的配置项
// 功能：定义仿真时间控制参数，一步即一天
type ControlStep struct {
	Start int32 `yaml:"start"` // 开始天数
	Total int32 `yaml:"total"` // 总天数
}

// Control 模拟器控制配置
// 功能：定义仿真系统的核心控制参数
// 说明：包含时间控制、月度周期、随机种子与调试开关
type Control struct {
	Step             ControlStep `yaml:"step"`
	Cycle            int32       `yaml:"cycle"`                        // 月度周期长度（天）
	Seed             uint64      `yaml:"seed"`                         // 随机种子
	SkipInitialCycle bool        `yaml:"skip_initial_cycle,omitempty"` // 起始日不执行月度行为
	CheckInvariants  bool        `yaml:"check_invariants,omitempty"`   // 每步检查雇佣关系一致性
}

// Population 智能体数量
type Population struct {
	Households int `yaml:"households"`
	Companies  int `yaml:"companies"`
}

// Household 家庭参数
// 功能：家庭初始状态范围、搜索概率、功能开关
type Household struct {
	MinWealth                 int     `yaml:"min_wealth"`
	MaxWealth                 int     `yaml:"max_wealth"`
	DefaultWage               float64 `yaml:"default_wage"`                // 初始保留工资
	DefaultConsumption        int64   `yaml:"default_consumption"`         // 初始日消费量
	WageDecreasingCoefficient float64 `yaml:"wage_decreasing_coefficient"` // 求职失败时保留工资衰减系数
	CriticalPriceRatio        float64 `yaml:"critical_price_ratio"`        // 新供应商价格比低于该值时替换
	ConsumptionPower          float64 `yaml:"consumption_power"`           // 消费对财富的弹性（alpha）
	UnemployedAttempts        int     `yaml:"unemployed_attempts"`         // 每月求职抽取次数（beta）
	SearchJobChance           float64 `yaml:"search_job_chance"`           // 工资高于预期时仍跳槽的概率（pi）
	ProbSearchPrice           float64 `yaml:"prob_search_price"`           // 搜索更低价格的概率
	ProbSearchProd            float64 `yaml:"prob_search_prod"`            // 淘汰缺货供应商的概率
	ProbSearchNetwork         float64 `yaml:"prob_search_network"`         // 采纳社交网络推荐供应商的概率
	AConnectionsNumber        int     `yaml:"a_connections_number"`        // 供应商数量（n）
	UseMarketing              bool    `yaml:"use_marketing"`               // 营销折扣影响购买排序
	UseNetwork                bool    `yaml:"use_network"`                 // 社交影响参与排序与供应商更换
}

// Company 企业参数
// 功能：企业初始状态范围、雇佣阈值、定价与营销常数
type Company struct {
	MinWealth               int     `yaml:"min_wealth"`
	MaxWealth               int     `yaml:"max_wealth"`
	MinWage                 int     `yaml:"min_wage"`
	MaxWage                 int     `yaml:"max_wage"`
	InitialPrice            float64 `yaml:"initial_price"`
	MinRandomPrice          int     `yaml:"min_random_price"`
	MaxRandomPrice          int     `yaml:"max_random_price"`
	Inventory               float64 `yaml:"inventory"`                 // 初始库存
	Demand                  float64 `yaml:"demand"`                    // 初始需求
	DemandMin               float64 `yaml:"demand_min"`                // 库存不高于demand_min*需求时招聘
	DemandMax               float64 `yaml:"demand_max"`                // 库存高于demand_max*需求时解雇
	Sigma                   float64 `yaml:"sigma"`                     // 工资调整幅度上限
	Gamma                   int32   `yaml:"gamma"`                     // 满员月数超过该值时降薪
	PhiMin                  float64 `yaml:"phi_min"`                   // 价格低于phi_min*边际成本时涨价
	PhiMax                  float64 `yaml:"phi_max"`                   // 价格高于phi_max*边际成本时降价
	Tau                     float64 `yaml:"tau"`                       // 调价概率
	Upsilon                 float64 `yaml:"upsilon"`                   // 调价幅度上限
	LambdaCoefficient       float64 `yaml:"lambda_coefficient"`        // 每个员工每天的产量
	MoneyBufferCoefficient  float64 `yaml:"money_buffer_coefficient"`  // 流动性储备系数
	MarketingInvestments    float64 `yaml:"marketing_investments"`     // 初始营销投入比例
	StartMarketing          float64 `yaml:"start_marketing"`           // 库存高于start_marketing*销量时加大营销
	MinMarketingInvestments float64 `yaml:"min_marketing_investments"` // 营销投入比例下限
	MaxMarketingInvestments float64 `yaml:"max_marketing_investments"` // 营销投入比例上限
	MarketingRetention      float64 `yaml:"marketing_retention"`       // 营销加成每月保留比例
}

// Network 社交网络参数
type Network struct {
	Density float64 `yaml:"density"` // G(n,p)中的连边概率p
}

// Config YAML配置文件的根结构
// 功能：定义整个仿真系统的配置结构
type Config struct {
	Control    Control    `yaml:"control"`          // 模拟过程控制
	Population Population `yaml:"population"`       // 智能体数量
	Household  Household  `yaml:"household"`        // 家庭参数
	Company    Company    `yaml:"company"`          // 企业参数
	Network    Network    `yaml:"network"`          // 社交网络
	Output     OutputPath `yaml:"output,omitempty"` // 输出
}
