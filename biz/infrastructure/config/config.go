package config

import (
	"github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/redis"
	"os"

	"github.com/zeromicro/go-zero/core/service"

	"github.com/zeromicro/go-zero/core/conf"
)

var config *Config

type SMTP struct {
	Username string
	Password string
	Host     string
	Port     int
	Alert    string
}

type Config struct {
	service.ServiceConf
	ListenOn string
	State    string
	Auth     Auth
	Mongo    struct {
		URL string
		DB  string
	}
	Cache    cache.CacheConf
	Redis    *redis.RedisConf
	RabbitMQ RabbitMQ
	SMTP     SMTP
	Safety   Safety
}

type Auth struct {
	SecretKey    string
	PublicKey    string
	AccessExpire int64
}

type RabbitMQ struct {
	Url string
}

// EmergencyContact 紧急联系资源, 如热线和急救电话
type EmergencyContact struct {
	Name      string
	Phone     string
	Available string
}

// Safety 安全措施目录, 按风险等级配置, 不依赖自由文本
type Safety struct {
	// Hotlines 危机热线与急救电话, CRITICAL时至少需要两条
	Hotlines []EmergencyContact
	// CrisisResources CRITICAL/HIGH时下发的资源清单
	CrisisResources []string
	// GeneralResources MEDIUM/LOW时下发的自助资源
	GeneralResources []string
}

func NewConfig() (*Config, error) {
	c := new(Config)
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "etc/config.yaml"
	}
	err := conf.Load(path, c)
	if err != nil {
		return nil, err
	}
	err = c.SetUp()
	if err != nil {
		return nil, err
	}
	config = c
	return c, nil
}

func GetConfig() *Config {
	return config
}
