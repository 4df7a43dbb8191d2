package ecosim

// NoEmployer 失业家庭的雇主ID
const NoEmployer int32 = -1

// HouseholdState 家庭在某一时刻的状态副本
type HouseholdState struct {
	ID              int32   `bson:"id"`
	Wealth          float64 `bson:"wealth"`
	ReservationWage float64 `bson:"reservation_wage"`
	Consumption     int64   `bson:"consumption"`
	EmployerID      int32   `bson:"employer_id"` // 失业为NoEmployer
	Suppliers       []int32 `bson:"suppliers"`
}

// Employed 是否就业
func (h HouseholdState) Employed() bool {
	return h.EmployerID != NoEmployer
}

// CompanyState 企业在某一时刻的状态副本
type CompanyState struct {
	ID                   int32   `bson:"id"`
	Wealth               float64 `bson:"wealth"`
	Wage                 float64 `bson:"wage"`
	Price                float64 `bson:"price"`
	Inventory            float64 `bson:"inventory"`
	Demand               float64 `bson:"demand"`
	Sold                 float64 `bson:"sold"`
	LookingForWorker     bool    `bson:"looking_for_worker"`
	Employees            []int32 `bson:"employees"`
	MarketingInvestments float64 `bson:"marketing_investments"`
	MarketingBoost       float64 `bson:"marketing_boost"`
	FullWorkplaces       int32   `bson:"full_workplaces"`
}

// Snapshot 全体智能体在两步之间的一致快照
// 说明：Day为已完成的模拟天数，Households与Companies按ID升序
type Snapshot struct {
	Day        int32            `bson:"day"`
	Month      int32            `bson:"month"`
	Households []HouseholdState `bson:"households"`
	Companies  []CompanyState   `bson:"companies"`
}
