package ecosim

import "github.com/samber/lo"

// Indicators 统计局口径的宏观指标
// 说明：由Snapshot计算得到，用于日志、RPC查询与持久化
type Indicators struct {
	Day   int32 `bson:"day"`
	Month int32 `bson:"month"`

	Households       int     `bson:"households"`
	Companies        int     `bson:"companies"`
	Employed         int     `bson:"employed"`
	UnemploymentRate float64 `bson:"unemployment_rate"`
	MeanWage         float64 `bson:"mean_wage"` // 就业家庭所在企业的平均工资
	MeanPrice        float64 `bson:"mean_price"`
	MeanConsumption  float64 `bson:"mean_consumption"`
	TotalInventory   float64 `bson:"total_inventory"`
	UnitsSold        float64 `bson:"units_sold"` // 本月迄今销量
	HouseholdWealth  float64 `bson:"household_wealth"`
	CompanyWealth    float64 `bson:"company_wealth"`
}

// TotalWealth 全社会现金总量
func (i Indicators) TotalWealth() float64 {
	return i.HouseholdWealth + i.CompanyWealth
}

// Measure 计算快照的宏观指标
// 功能：统计就业、工资、价格、库存与现金分布
// 说明：没有家庭或企业时对应的比率与均值为0
func Measure(s Snapshot) Indicators {
	ind := Indicators{
		Day:        s.Day,
		Month:      s.Month,
		Households: len(s.Households),
		Companies:  len(s.Companies),
	}
	wages := lo.SliceToMap(s.Companies, func(c CompanyState) (int32, float64) {
		return c.ID, c.Wage
	})
	wageSum := 0.
	for _, h := range s.Households {
		if h.Employed() {
			ind.Employed++
			wageSum += wages[h.EmployerID]
		}
		ind.HouseholdWealth += h.Wealth
	}
	if ind.Employed > 0 {
		ind.MeanWage = wageSum / float64(ind.Employed)
	}
	if ind.Households > 0 {
		ind.UnemploymentRate = 1 - float64(ind.Employed)/float64(ind.Households)
		ind.MeanConsumption = float64(lo.SumBy(s.Households, func(h HouseholdState) int64 {
			return h.Consumption
		})) / float64(ind.Households)
	}
	for _, c := range s.Companies {
		ind.TotalInventory += c.Inventory
		ind.UnitsSold += c.Sold
		ind.CompanyWealth += c.Wealth
	}
	if ind.Companies > 0 {
		ind.MeanPrice = lo.SumBy(s.Companies, func(c CompanyState) float64 {
			return c.Price
		}) / float64(ind.Companies)
	}
	return ind
}

// asMap 转为structpb可接受的通用结构
func (i Indicators) asMap() map[string]any {
	return map[string]any{
		"day":               i.Day,
		"month":             i.Month,
		"households":        i.Households,
		"companies":         i.Companies,
		"employed":          i.Employed,
		"unemployment_rate": i.UnemploymentRate,
		"mean_wage":         i.MeanWage,
		"mean_price":        i.MeanPrice,
		"mean_consumption":  i.MeanConsumption,
		"total_inventory":   i.TotalInventory,
		"units_sold":        i.UnitsSold,
		"household_wealth":  i.HouseholdWealth,
		"company_wealth":    i.CompanyWealth,
	}
}
