package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/xh-polaris/psych-crisis/biz/adaptor/controller/crisis"
	"github.com/xh-polaris/psych-crisis/biz/adaptor/controller/history"
)

func Register(r *server.Hertz) {
	root := r.Group("/", _rootMw()...)
	{
		_crisis := root.Group("/crisis")
		_crisis.POST("/assess", crisis.Assess)
		_crisis.POST("/safety", crisis.SafetyMeasures)

		_session := _crisis.Group("/session")
		_session.POST("/", crisis.CreateSession)
		_session.POST("/step", crisis.ExecuteStep)
		_session.POST("/adapt", crisis.AdaptSession)
		_session.GET("/progress", crisis.MonitorProgress)
		_session.POST("/complete", crisis.CompleteSession)
		_session.POST("/cancel", crisis.CancelSession)
		_session.GET("/ws", append(_sessionWsMw(), crisis.SessionChat)...)
	}
	{
		// 督导端只读接口, 需要鉴权
		_history := root.Group("/history", _historyMw()...)
		_history.GET("/session/list", history.ListSession)
		_history.GET("/assessment/list", history.ListAssessment)
	}
}
