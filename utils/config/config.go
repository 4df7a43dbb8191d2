package config

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v2"
)

// Default 默认配置
// 功能：返回与原始模型run_model默认参数一致的配置
// 说明：YAML在此基础上覆盖，未出现的字段保持默认值
func Default() Config {
	return Config{
		Control: Control{
			Step:  ControlStep{Start: 0, Total: 3600},
			Cycle: 30,
			Seed:  42,
		},
		Population: Population{Households: 1000, Companies: 100},
		Household: Household{
			MinWealth:                 20000,
			MaxWealth:                 45000,
			DefaultWage:               0,
			DefaultConsumption:        0,
			WageDecreasingCoefficient: 0.9,
			CriticalPriceRatio:        0.99,
			ConsumptionPower:          0.9,
			UnemployedAttempts:        5,
			SearchJobChance:           0.1,
			ProbSearchPrice:           0.25,
			ProbSearchProd:            0.25,
			ProbSearchNetwork:         0.25,
			AConnectionsNumber:        7,
			UseMarketing:              true,
			UseNetwork:                true,
		},
		Company: Company{
			MinWealth:               600000,
			MaxWealth:               1000000,
			MinWage:                 29000,
			MaxWage:                 35000,
			InitialPrice:            330,
			MinRandomPrice:          0,
			MaxRandomPrice:          20,
			Inventory:               10,
			Demand:                  100,
			DemandMin:               0.25,
			DemandMax:               1,
			Sigma:                   0.019,
			Gamma:                   24,
			PhiMin:                  1.025,
			PhiMax:                  1.15,
			Tau:                     0.75,
			Upsilon:                 0.02,
			LambdaCoefficient:       3,
			MoneyBufferCoefficient:  0.1,
			MarketingInvestments:    0.2,
			StartMarketing:          0.05,
			MinMarketingInvestments: 0.01,
			MaxMarketingInvestments: 0.5,
			MarketingRetention:      0.8,
		},
		Network: Network{Density: 0.1},
		Output: OutputPath{
			DB:    "econsim",
			Col:   "indicators",
			Batch: 100,
		},
	}
}

// Parse 解析YAML配置
// 功能：在默认配置基础上严格解析YAML（未知字段报错）并校验
// 参数：data-YAML文本
// 返回：配置和错误
func Parse(data []byte) (Config, error) {
	c := Default()
	if err := yaml.UnmarshalStrict(data, &c); err != nil {
		return c, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// Validate 校验配置
// 功能：拒绝在仿真中不可能满足的参数组合
// 返回：所有问题合并后的错误，无问题返回nil
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("config: "+format, args...))
		}
	}
	prob := func(name string, p float64) {
		check(p >= 0 && p <= 1, "%s must be in [0, 1], got %v", name, p)
	}

	check(c.Control.Cycle > 0, "control.cycle must be positive, got %d", c.Control.Cycle)
	check(c.Control.Step.Total >= 0, "control.step.total must not be negative")
	check(c.Population.Companies > 0, "population.companies must be positive")
	check(c.Population.Households >= 0, "population.households must not be negative")

	h := c.Household
	check(h.MinWealth <= h.MaxWealth, "household.min_wealth > max_wealth")
	check(h.AConnectionsNumber > 0, "household.a_connections_number must be positive")
	check(h.AConnectionsNumber <= c.Population.Companies,
		"household.a_connections_number %d exceeds companies %d", h.AConnectionsNumber, c.Population.Companies)
	check(h.UnemployedAttempts >= 0, "household.unemployed_attempts must not be negative")
	check(h.WageDecreasingCoefficient > 0 && h.WageDecreasingCoefficient < 1,
		"household.wage_decreasing_coefficient must be in (0, 1)")
	check(h.ConsumptionPower > 0, "household.consumption_power must be positive")
	prob("household.search_job_chance", h.SearchJobChance)
	prob("household.prob_search_price", h.ProbSearchPrice)
	prob("household.prob_search_prod", h.ProbSearchProd)
	prob("household.prob_search_network", h.ProbSearchNetwork)

	m := c.Company
	check(m.MinWealth <= m.MaxWealth, "company.min_wealth > max_wealth")
	check(m.MinWage >= 0 && m.MinWage <= m.MaxWage, "company wage range [%d, %d] invalid", m.MinWage, m.MaxWage)
	check(m.MinRandomPrice <= m.MaxRandomPrice, "company.min_random_price > max_random_price")
	check(m.InitialPrice+float64(m.MinRandomPrice) > 0, "company initial price must be positive")
	check(m.Inventory >= 0, "company.inventory must not be negative")
	check(m.LambdaCoefficient > 0, "company.lambda_coefficient must be positive")
	check(m.Sigma >= 0 && m.Sigma < 1, "company.sigma must be in [0, 1)")
	check(m.Upsilon >= 0 && m.Upsilon < 1, "company.upsilon must be in [0, 1)")
	check(m.PhiMin <= m.PhiMax, "company.phi_min > phi_max")
	prob("company.tau", m.Tau)
	prob("company.marketing_investments", m.MarketingInvestments)
	prob("company.marketing_retention", m.MarketingRetention)
	check(m.MinMarketingInvestments <= m.MaxMarketingInvestments && m.MaxMarketingInvestments < 1,
		"company marketing investment bounds invalid")

	prob("network.density", c.Network.Density)
	check(c.Output.Interval >= 0, "output.interval must not be negative")

	return errors.Join(errs...)
}

// RuntimeConfig 运行时配置
// 功能：存储仿真运行时的配置信息，供各管理器与智能体读取
type RuntimeConfig struct {
	All Config    // 全部配置
	C   Control   // 全局控制配置
	H   Household // 家庭参数
	M   Company   // 企业参数
}

// NewRuntimeConfig 根据配置初始化运行时配置
// 功能：创建运行时配置对象
// 参数：config-已校验的配置对象
// 说明：关闭营销功能时企业初始营销投入按0处理
func NewRuntimeConfig(config Config) *RuntimeConfig {
	rc := &RuntimeConfig{
		All: config,
		C:   config.Control,
		H:   config.Household,
		M:   config.Company,
	}
	if !rc.H.UseMarketing {
		rc.M.MarketingInvestments = 0
	}
	return rc
}

// MarketingEnabled 是否启用营销机制
func (rc *RuntimeConfig) MarketingEnabled() bool {
	return rc.H.UseMarketing
}

// NetworkEnabled 是否启用社交网络影响
func (rc *RuntimeConfig) NetworkEnabled() bool {
	return rc.H.UseNetwork
}
