package crisis

import (
	"context"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/xh-polaris/gopkg/util/log"
	"github.com/xh-polaris/psych-crisis/biz/adaptor"
	"github.com/xh-polaris/psych-crisis/provider"
)

// SessionChat 开启一轮长干预会话
// @router /crisis/session/ws [GET]
func SessionChat(ctx context.Context, c *app.RequestContext) {
	// 尝试升级协议, 并处理
	p := provider.Get()
	err := adaptor.UpgradeWs(ctx, c, p.CrisisService.ChatHandler)
	if err != nil {
		log.Error(err.Error())
	}
}
