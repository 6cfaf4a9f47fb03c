package consts

// 数据库相关
const (
	CreateTime = "create_time"
	StartTime  = "start_time"
	AssessedAt = "assessed_at"
	UserId     = "user_id"
)

// ws命令
const (
	EndCmd = -1
	Ping   = 1
)

// mq相关
const (
	AlertExchange   = "crisis_alert"
	AlertQueue      = "crisis_alert"
	AlertRoutingKey = "crisis.session.alert"
)
