package domain

import (
	"strconv"
	"sync"

	"github.com/xh-polaris/psych-crisis/biz/domain/crisis"
	"github.com/xh-polaris/psych-crisis/biz/infrastructure/config"
	"github.com/zeromicro/go-zero/core/stores/redis"
)

var (
	instance *RedisHelper
	once     sync.Once
)

// RedisHelper 维护每个用户各因子类别的滚动历史样本
// key为factor:{userId}:{category}, 旧样本在队头
type RedisHelper struct {
	rs *redis.Redis
}

func NewRedisHelper(c *config.Config) *RedisHelper {
	return &RedisHelper{rs: redis.MustNewRedis(*c.Redis)}
}

func GetRedisHelper() *RedisHelper {
	once.Do(func() {
		instance = NewRedisHelper(config.GetConfig())
	})
	return instance
}

func factorKey(userId string, cat crisis.FactorCategory) string {
	return "factor:" + userId + ":" + string(cat)
}

// Record 追加一个因子样本到队列尾部
func (r *RedisHelper) Record(userId string, cat crisis.FactorCategory, severity float64) error {
	_, err := r.rs.Rpush(factorKey(userId, cat), strconv.FormatFloat(severity, 'f', 4, 64))
	return err
}

// Load 读取用户全部类别的因子历史
func (r *RedisHelper) Load(userId string) (crisis.FactorHistory, error) {
	history := make(crisis.FactorHistory)
	for _, cat := range []crisis.FactorCategory{
		crisis.FactorMood, crisis.FactorSleep, crisis.FactorStress,
		crisis.FactorSocialSupport, crisis.FactorTriggerExposure,
	} {
		data, err := r.rs.Lrange(factorKey(userId, cat), 0, -1)
		if err != nil {
			return nil, err
		}
		if len(data) == 0 {
			continue
		}
		samples := make([]float64, 0, len(data))
		for _, v := range data {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, err
			}
			samples = append(samples, f)
		}
		history[cat] = samples
	}
	return history, nil
}

// Remove 删除用户的全部因子历史
func (r *RedisHelper) Remove(userId string) error {
	for _, cat := range []crisis.FactorCategory{
		crisis.FactorMood, crisis.FactorSleep, crisis.FactorStress,
		crisis.FactorSocialSupport, crisis.FactorTriggerExposure,
	} {
		if _, err := r.rs.Del(factorKey(userId, cat)); err != nil {
			return err
		}
	}
	return nil
}
