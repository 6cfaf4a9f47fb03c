package provider

import (
	"github.com/google/wire"
	"github.com/xh-polaris/psych-crisis/biz/application/service"
	"github.com/xh-polaris/psych-crisis/biz/domain"
	"github.com/xh-polaris/psych-crisis/biz/domain/crisis"
	"github.com/xh-polaris/psych-crisis/biz/infrastructure/config"
	"github.com/xh-polaris/psych-crisis/biz/infrastructure/mapper/assessment"
	"github.com/xh-polaris/psych-crisis/biz/infrastructure/mapper/session"
)

var provider *Provider

func Init() {
	var err error
	provider, err = NewProvider()
	if err != nil {
		panic(err)
	}
}

// Provider 提供controller依赖的对象
type Provider struct {
	Config         *config.Config
	CrisisService  service.CrisisService
	HistoryService service.HistoryService
}

func Get() *Provider {
	return provider
}

// NewSafetyResolver 从配置目录构造安全措施解析器
func NewSafetyResolver(c *config.Config) *crisis.SafetyResolver {
	return crisis.NewSafetyResolver(c.Safety)
}

var ApplicationSet = wire.NewSet(
	service.CrisisServiceSet,
	service.HistoryServiceSet,
)

var DomainSet = wire.NewSet(
	crisis.NewMemoryStore,
	wire.Bind(new(crisis.SessionStore), new(*crisis.MemoryStore)),
	crisis.NewUUIDGenerator,
	wire.Bind(new(crisis.IdGenerator), new(*crisis.UUIDGenerator)),
	crisis.NewRiskScorer,
	crisis.NewScriptGenerator,
	crisis.NewEngine,
	NewSafetyResolver,
	domain.NewRedisHelper,
	wire.Bind(new(crisis.FactorHistoryProvider), new(*domain.RedisHelper)),
)

var InfrastructureSet = wire.NewSet(
	config.NewConfig,
	session.NewMongoMapper,
	assessment.NewMongoMapper,
)

var AllProvider = wire.NewSet(
	ApplicationSet,
	DomainSet,
	InfrastructureSet,
)
