package crisis

import (
	"context"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/xh-polaris/psych-crisis/biz/adaptor"
	"github.com/xh-polaris/psych-crisis/biz/adaptor/cmd"
	"github.com/xh-polaris/psych-crisis/provider"
)

// Assess 风险评估
// @router /crisis/assess [POST]
func Assess(ctx context.Context, c *app.RequestContext) {
	var err error
	var req cmd.AssessReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	p := provider.Get()
	resp, err := p.CrisisService.AssessCrisisLevel(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// CreateSession 创建干预会话
// @router /crisis/session [POST]
func CreateSession(ctx context.Context, c *app.RequestContext) {
	var err error
	var req cmd.SessionCreateReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	p := provider.Get()
	resp, err := p.CrisisService.CreateSession(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// ExecuteStep 执行干预步骤
// @router /crisis/session/step [POST]
func ExecuteStep(ctx context.Context, c *app.RequestContext) {
	var err error
	var req cmd.StepReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	p := provider.Get()
	resp, err := p.CrisisService.ExecuteStep(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// AdaptSession 按最新响应调整会话
// @router /crisis/session/adapt [POST]
func AdaptSession(ctx context.Context, c *app.RequestContext) {
	var err error
	var req cmd.AdaptReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	p := provider.Get()
	resp, err := p.CrisisService.AdaptSession(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// MonitorProgress 查询会话进度
// @router /crisis/session/progress [GET]
func MonitorProgress(ctx context.Context, c *app.RequestContext) {
	var err error
	var req cmd.ProgressReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	p := provider.Get()
	resp, err := p.CrisisService.MonitorProgress(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// CompleteSession 结束会话
// @router /crisis/session/complete [POST]
func CompleteSession(ctx context.Context, c *app.RequestContext) {
	var err error
	var req cmd.CompleteReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	p := provider.Get()
	resp, err := p.CrisisService.CompleteSession(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// CancelSession 取消会话
// @router /crisis/session/cancel [POST]
func CancelSession(ctx context.Context, c *app.RequestContext) {
	var err error
	var req cmd.CancelReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	p := provider.Get()
	resp, err := p.CrisisService.CancelSession(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// SafetyMeasures 获取安全措施
// @router /crisis/safety [POST]
func SafetyMeasures(ctx context.Context, c *app.RequestContext) {
	var err error
	var req cmd.SafetyReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	p := provider.Get()
	resp, err := p.CrisisService.GetSafetyMeasures(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}
