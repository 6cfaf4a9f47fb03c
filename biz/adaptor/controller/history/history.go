package history

import (
	"context"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/xh-polaris/psych-crisis/biz/adaptor"
	"github.com/xh-polaris/psych-crisis/biz/adaptor/cmd"
	"github.com/xh-polaris/psych-crisis/provider"
)

// ListSession .
// @router /history/session/list [GET]
func ListSession(ctx context.Context, c *app.RequestContext) {
	var err error
	var req cmd.ListSessionReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	p := provider.Get()
	resp, err := p.HistoryService.ListSession(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// ListAssessment .
// @router /history/assessment/list [GET]
func ListAssessment(ctx context.Context, c *app.RequestContext) {
	var err error
	var req cmd.ListAssessmentReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	p := provider.Get()
	resp, err := p.HistoryService.ListAssessment(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}
