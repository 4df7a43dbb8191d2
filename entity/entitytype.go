package entity

import "github.com/tsinghua-fib-lab/agentsociety-econsim/ecosim"

// 企业的依赖倒置，供家庭与社交网络模块使用
type ICompany interface {
	ID() int32
	Wealth() float64
	Wage() float64
	Price() float64
	Inventory() float64
	MarketingBoost() float64
	LookingForWorker() bool

	NumEmployees() int
	HasEmployee(h IHousehold) bool
	// 加入员工集合并停止招聘，不修改家庭的雇主字段
	Hire(h IHousehold)
	// 移出员工集合，不修改家庭的雇主字段
	Dismiss(h IHousehold)

	// 累计本月需求量
	AddDemand(quantity float64)
	// 完成一笔交易：库存减少quantity，财富增加total，本月销量增加quantity
	Sell(quantity, total float64)

	State() ecosim.CompanyState
}

// 家庭的依赖倒置，供企业与社交网络模块使用
type IHousehold interface {
	ID() int32
	Wealth() float64
	ReservationWage() float64
	Employer() ICompany

	// 被企业解雇：清空雇主字段，不修改企业的员工集合
	LoseJob()
	// 领取工资：财富增加wage，保留工资不低于wage
	ReceiveWage(wage float64)
	// 领取分红：财富与保留工资同时增加amount
	ReceiveBonus(amount float64)

	// 本月最偏好的供应商及其购买次数，尚未统计时返回nil
	MostPreferred() (ICompany, int32)

	State() ecosim.HouseholdState
}
