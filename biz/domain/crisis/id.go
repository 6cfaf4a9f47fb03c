package crisis

import "github.com/google/uuid"

// IdGenerator 生成会话和脚本的唯一标识
// 注入接口是为了让测试可以使用确定性的实现
type IdGenerator interface {
	NewId() string
}

// UUIDGenerator 基于uuid的默认实现
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator { return &UUIDGenerator{} }

func (g *UUIDGenerator) NewId() string {
	return uuid.NewString()
}
