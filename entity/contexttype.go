package entity

import (
	"github.com/tsinghua-fib-lab/agentsociety-econsim/clock"
	"github.com/tsinghua-fib-lab/agentsociety-econsim/utils/config"
	"github.com/tsinghua-fib-lab/agentsociety-econsim/utils/randengine"
)

type ITaskContext interface {
	Clock() *clock.Clock
	Engine() *randengine.Engine
	RuntimeConfig() *config.RuntimeConfig
	CompanyManager() ICompanyManager
	HouseholdManager() IHouseholdManager
	Network() INetwork
}
