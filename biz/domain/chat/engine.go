package chat

import (
	"context"
	"time"

	"github.com/hertz-contrib/websocket"
	"github.com/xh-polaris/gopkg/util/log"
	"github.com/xh-polaris/psych-crisis/biz/application/dto"
	"github.com/xh-polaris/psych-crisis/biz/domain"
	"github.com/xh-polaris/psych-crisis/biz/domain/crisis"
	"github.com/xh-polaris/psych-crisis/biz/infrastructure/consts"
	"github.com/xh-polaris/psych-crisis/biz/infrastructure/mq"
)

// Engine 是处理一轮干预会话的核心对象
// 首条消息创建危机会话并下发第一个干预步骤,
// 之后每条消息执行当前步骤, 重新评估并按需升降级脚本
type Engine struct {
	// ctx 上下文
	ctx context.Context

	// cancel 取消goroutine的广播函数
	cancel context.CancelFunc

	// ws 提供WebSocket的读写功能
	ws *domain.WsHelper

	// ce 危机干预状态机
	ce *crisis.Engine

	// rs 因子历史记录
	rs *domain.RedisHelper

	// session 本轮对应的干预会话
	session *crisis.Session

	// provider 告警消息生产者
	provider *mq.AlertProducer

	// startTime 开始对话时间
	startTime time.Time

	// round 对话轮数
	round int
}

// NewEngine 初始化一个干预会话Engine
func NewEngine(ctx context.Context, conn *websocket.Conn, ce *crisis.Engine) *Engine {
	ctx, cancel := context.WithCancel(context.Background())
	return &Engine{
		ctx:       ctx,
		cancel:    cancel,
		ws:        domain.NewWsHelper(conn),
		ce:        ce,
		rs:        domain.GetRedisHelper(),
		provider:  mq.GetAlertProducer(),
		startTime: time.Now(),
		round:     0,
	}
}

// Start 读取首条消息, 创建会话并下发第一个步骤
func (e *Engine) Start() error {
	var startReq dto.SessionStartReq
	if err := e.ws.ReadJSON(&startReq); err != nil {
		log.Error("read json err:", err)
		_ = e.ws.Error(consts.ErrInvalidInput)
		return consts.ErrInvalidInput
	}
	log.Info("调用方: %s, 调用时间: %s", startReq.From, time.Unix(startReq.Timestamp, 0).String())

	session, err := e.ce.CreateSession(startReq.UserId, startReq.Msg)
	if err != nil {
		_ = e.ws.Error(consts.ErrInvalidInput)
		return err
	}
	e.session = session
	e.record(session.InitialAssessment)
	return e.sendStep()
}

// Chat 会话主循环
func (e *Engine) Chat() {
	var req dto.SessionReq
	var err error
	defer func() {
		if err != nil {
			log.Error("session chat err:", err)
		}
	}()

	for {
		// 获取前端对话内容
		err = e.ws.ReadJSON(&req)
		if err != nil {
			return
		}
		switch req.Cmd {
		case consts.EndCmd:
			return
		case consts.Ping:
			if err = e.ws.WriteBytes([]byte{}); err != nil {
				return
			}
			continue
		}
		e.round++
		if err = e.handle(req.Msg); err != nil {
			return
		}
	}
}

// handle 执行当前步骤, 重新评估并推进脚本
func (e *Engine) handle(msg string) error {
	idx := len(e.session.CompletedSteps)
	if idx < len(e.session.Script.Steps) {
		result, err := e.ce.ExecuteStep(e.session.Id, idx, msg)
		if err != nil {
			return err
		}
		if result.NewAssessment != nil {
			e.record(result.NewAssessment)
		}
	}

	// 每条响应都重新评估, 升级时脚本会被整体替换
	session, err := e.ce.AdaptSession(e.session.Id, msg)
	if err != nil {
		return err
	}
	e.session = session
	return e.sendStep()
}

// sendStep 下发当前待执行的步骤
// 脚本为空或已走完时下发一条通用支持性提示, 而不是保持沉默
func (e *Engine) sendStep() error {
	s := e.session
	idx := len(s.CompletedSteps)
	total := len(s.Script.Steps)

	data := &dto.StepData{
		SessionId: s.Id,
		Level:     s.CurrentAssessment.Level.String(),
		Escalated: s.Escalated,
		Timestamp: time.Now().Unix(),
	}
	if total == 0 || idx >= total {
		data.StepIndex = total
		data.Prompt = "谢谢你愿意和我聊这些, 我会一直在这里, 随时可以继续"
		data.Progress = 100
		data.IsCompleted = true
		return e.ws.WriteJSON(data)
	}

	step := s.Script.Steps[idx]
	data.StepIndex = idx
	data.StepType = string(step.Type)
	data.Prompt = step.Prompt
	data.Progress = float64(idx) / float64(total) * 100
	return e.ws.WriteJSON(data)
}

// record 把本次评估写入因子滚动历史, 供早期预警使用
func (e *Engine) record(a *crisis.RiskAssessment) {
	if err := e.rs.Record(e.session.UserId, crisis.FactorMood, a.Score/100); err != nil {
		log.Error("record factor history err:", err)
	}
}

// Close 结束本轮会话
func (e *Engine) Close() {
	if e.session != nil {
		// 以当前评估收束会话, 已终止的会话保持原状
		session, err := e.ce.CompleteSession(e.session.Id, e.session.CurrentAssessment)
		if err == nil {
			e.session = session
		}

		// 发送归档与告警消息, 是否触达人工由告警侧决定
		if err = e.provider.Produce(e.ctx, e.session); err != nil {
			log.Error("消息发送失败, sessionId: ", e.session.Id)
		}

		_ = e.ws.WriteJSON(&dto.SessionEndResp{
			Code:      0,
			Msg:       "会话结束",
			SessionId: e.session.Id,
			Level:     e.session.CurrentAssessment.Level.String(),
		})
	}

	// 关闭所有协程和连接
	e.cancel()
	if err := e.ws.Close(); err != nil {
		log.Error("close ws err:", err)
	}
}
