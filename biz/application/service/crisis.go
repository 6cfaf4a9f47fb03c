package service

import (
	"context"

	"github.com/google/wire"
	"github.com/hertz-contrib/websocket"
	"github.com/xh-polaris/gopkg/util/log"
	"github.com/xh-polaris/psych-crisis/biz/adaptor/cmd"
	"github.com/xh-polaris/psych-crisis/biz/domain"
	"github.com/xh-polaris/psych-crisis/biz/domain/chat"
	"github.com/xh-polaris/psych-crisis/biz/domain/crisis"
	"github.com/xh-polaris/psych-crisis/biz/infrastructure/consts"
	"github.com/xh-polaris/psych-crisis/biz/infrastructure/mapper/assessment"
	"github.com/xh-polaris/psych-crisis/biz/infrastructure/mq"
)

type ICrisisService interface {
	AssessCrisisLevel(ctx context.Context, req *cmd.AssessReq) (*cmd.AssessResp, error)
	CreateSession(ctx context.Context, req *cmd.SessionCreateReq) (*cmd.SessionResp, error)
	ExecuteStep(ctx context.Context, req *cmd.StepReq) (*cmd.StepResp, error)
	AdaptSession(ctx context.Context, req *cmd.AdaptReq) (*cmd.SessionResp, error)
	MonitorProgress(ctx context.Context, req *cmd.ProgressReq) (*cmd.ProgressResp, error)
	CompleteSession(ctx context.Context, req *cmd.CompleteReq) (*cmd.SessionResp, error)
	CancelSession(ctx context.Context, req *cmd.CancelReq) (*cmd.SessionResp, error)
	GetSafetyMeasures(ctx context.Context, req *cmd.SafetyReq) (*cmd.SafetyResp, error)
}

type CrisisService struct {
	Engine           *crisis.Engine
	Scorer           *crisis.RiskScorer
	Resolver         *crisis.SafetyResolver
	AssessmentMapper *assessment.MongoMapper
	Redis            *domain.RedisHelper
}

var CrisisServiceSet = wire.NewSet(
	wire.Struct(new(CrisisService), "*"),
	wire.Bind(new(ICrisisService), new(*CrisisService)),
)

// AssessCrisisLevel 对一条消息做风险评估并归档
func (s *CrisisService) AssessCrisisLevel(ctx context.Context, req *cmd.AssessReq) (*cmd.AssessResp, error) {
	if req.Text == "" || req.UserId == "" {
		return nil, consts.ErrInvalidInput
	}

	var a *crisis.RiskAssessment
	if req.WithHistory {
		a = s.Engine.Assess(req.Text, req.UserId)
	} else {
		a = s.Scorer.Assess(req.Text, req.UserId, nil)
	}

	// 写入因子滚动历史并归档评估记录, 失败只记日志不影响评估结果
	if err := s.Redis.Record(req.UserId, crisis.FactorMood, a.Score/100); err != nil {
		log.Error("record factor history err:", err)
	}
	if err := s.archive(ctx, req.UserId, a); err != nil {
		log.Error("archive assessment err:", err)
	}

	return &cmd.AssessResp{
		Code:       0,
		Msg:        "success",
		Assessment: toAssessment(a),
	}, nil
}

// CreateSession 以首条危机相关输入创建干预会话
func (s *CrisisService) CreateSession(ctx context.Context, req *cmd.SessionCreateReq) (*cmd.SessionResp, error) {
	session, err := s.Engine.CreateSession(req.UserId, req.Text)
	if err != nil {
		return nil, err
	}
	if err = s.archive(ctx, req.UserId, session.InitialAssessment); err != nil {
		log.Error("archive assessment err:", err)
	}
	return sessionResp(session), nil
}

// ExecuteStep 执行会话脚本中的一个步骤
func (s *CrisisService) ExecuteStep(ctx context.Context, req *cmd.StepReq) (*cmd.StepResp, error) {
	result, err := s.Engine.ExecuteStep(req.SessionId, req.StepIndex, req.Response)
	if err != nil {
		return nil, err
	}

	r := &cmd.StepResult{
		SessionId:   result.SessionId,
		StepIndex:   result.StepIndex,
		StepType:    string(result.Step.Type),
		Prompt:      result.Step.Prompt,
		Response:    result.Response,
		IsCompleted: result.IsCompleted,
		Progress:    result.Progress,
	}
	if result.NewAssessment != nil {
		r.NewAssessment = toAssessment(result.NewAssessment)
	}
	return &cmd.StepResp{Code: 0, Msg: "success", Result: r}, nil
}

// AdaptSession 基于最新响应调整会话脚本
func (s *CrisisService) AdaptSession(ctx context.Context, req *cmd.AdaptReq) (*cmd.SessionResp, error) {
	session, err := s.Engine.AdaptSession(req.SessionId, req.Response)
	if err != nil {
		return nil, err
	}
	return sessionResp(session), nil
}

// MonitorProgress 查询会话进度
func (s *CrisisService) MonitorProgress(ctx context.Context, req *cmd.ProgressReq) (*cmd.ProgressResp, error) {
	p, err := s.Engine.MonitorProgress(req.SessionId)
	if err != nil {
		return nil, err
	}
	return &cmd.ProgressResp{
		Code: 0,
		Msg:  "success",
		Progress: &cmd.Progress{
			SessionId:          p.SessionId,
			InitialLevel:       p.InitialLevel.String(),
			CurrentLevel:       p.CurrentLevel.String(),
			ProgressPercentage: p.ProgressPercentage,
			StepsCompleted:     p.StepsCompleted,
			TotalSteps:         p.TotalSteps,
			TimeElapsedSeconds: int64(p.TimeElapsed.Seconds()),
			IsStable:           p.IsStable,
		},
	}, nil
}

// CompleteSession 结束会话
// final_text非空时用它重新评估作为最终评估, 否则沿用当前评估
func (s *CrisisService) CompleteSession(ctx context.Context, req *cmd.CompleteReq) (*cmd.SessionResp, error) {
	session, err := s.Engine.GetSession(req.SessionId)
	if err != nil {
		return nil, err
	}

	final := session.CurrentAssessment
	if req.FinalText != "" {
		final = s.Engine.Assess(req.FinalText, session.UserId)
	}
	session, err = s.Engine.CompleteSession(req.SessionId, final)
	if err != nil {
		return nil, err
	}
	s.produce(ctx, session)
	return sessionResp(session), nil
}

// CancelSession 取消会话
func (s *CrisisService) CancelSession(ctx context.Context, req *cmd.CancelReq) (*cmd.SessionResp, error) {
	session, err := s.Engine.CancelSession(req.SessionId)
	if err != nil {
		return nil, err
	}
	s.produce(ctx, session)
	return sessionResp(session), nil
}

// GetSafetyMeasures 解析安全措施
// 优先按会话当前评估, 其次对text做即时评估
func (s *CrisisService) GetSafetyMeasures(ctx context.Context, req *cmd.SafetyReq) (*cmd.SafetyResp, error) {
	var a *crisis.RiskAssessment
	switch {
	case req.SessionId != "":
		session, err := s.Engine.GetSession(req.SessionId)
		if err != nil {
			return nil, err
		}
		a = session.CurrentAssessment
	case req.Text != "":
		a = s.Engine.Assess(req.Text, req.UserId)
	default:
		return nil, consts.ErrInvalidInput
	}

	m := s.Resolver.Resolve(a)
	resp := &cmd.SafetyMeasures{
		ImmediateActions: m.ImmediateActions,
		Resources:        m.Resources,
	}
	if m.SafetyPlan != nil {
		contacts := make([]*cmd.EmergencyContact, 0, len(m.SafetyPlan.EmergencyContacts))
		for _, c := range m.SafetyPlan.EmergencyContacts {
			contacts = append(contacts, &cmd.EmergencyContact{
				Name:      c.Name,
				Phone:     c.Phone,
				Available: c.Available,
			})
		}
		resp.SafetyPlan = &cmd.SafetyPlan{
			EmergencyContacts:    contacts,
			CopingStrategies:     m.SafetyPlan.CopingStrategies,
			WarningSigns:         m.SafetyPlan.WarningSigns,
			PersonalizedTriggers: m.SafetyPlan.PersonalizedTriggers,
		}
	}
	return &cmd.SafetyResp{Code: 0, Msg: "success", Measures: resp}, nil
}

// ChatHandler 处理长干预会话
func (s *CrisisService) ChatHandler(ctx context.Context, conn *websocket.Conn) {
	engine := chat.NewEngine(ctx, conn, s.Engine)
	defer func() { engine.Close() }()

	if err := engine.Start(); err != nil {
		return
	}
	engine.Chat()
}

// archive 落库评估记录
func (s *CrisisService) archive(ctx context.Context, userId string, a *crisis.RiskAssessment) error {
	inds := make([]string, 0, len(a.Indicators))
	for _, ind := range a.Indicators {
		inds = append(inds, string(ind))
	}
	warns := make([]string, 0, len(a.EarlyWarnings))
	for _, w := range a.EarlyWarnings {
		warns = append(warns, string(w.Category)+":"+w.Severity.String())
	}
	return s.AssessmentMapper.Insert(ctx, &assessment.Assessment{
		UserId:                userId,
		Level:                 a.Level.String(),
		Score:                 a.Score,
		Indicators:            inds,
		EarlyWarnings:         warns,
		Recommendations:       a.Recommendations,
		InterventionTriggered: a.InterventionTriggered,
		AssessedAt:            a.AssessedAt,
	})
}

// produce 发送归档与告警消息
func (s *CrisisService) produce(ctx context.Context, session *crisis.Session) {
	if err := mq.GetAlertProducer().Produce(ctx, session); err != nil {
		log.Error("消息发送失败, sessionId: ", session.Id)
	}
}

// toAssessment 领域评估转DTO
func toAssessment(a *crisis.RiskAssessment) *cmd.RiskAssessment {
	inds := make([]string, 0, len(a.Indicators))
	for _, ind := range a.Indicators {
		inds = append(inds, string(ind))
	}
	factors := make([]*cmd.RiskFactor, 0, len(a.RiskFactors))
	for _, f := range a.RiskFactors {
		factors = append(factors, &cmd.RiskFactor{
			Category:    string(f.Category),
			Severity:    f.Severity,
			Description: f.Description,
		})
	}
	warns := make([]*cmd.EarlyWarning, 0, len(a.EarlyWarnings))
	for _, w := range a.EarlyWarnings {
		warns = append(warns, &cmd.EarlyWarning{
			Category:    string(w.Category),
			Severity:    w.Severity.String(),
			Description: w.Description,
		})
	}
	return &cmd.RiskAssessment{
		Level:                 a.Level.String(),
		Score:                 a.Score,
		Indicators:            inds,
		RiskFactors:           factors,
		EarlyWarnings:         warns,
		Recommendations:       a.Recommendations,
		InterventionTriggered: a.InterventionTriggered,
		AssessedAt:            a.AssessedAt.Unix(),
	}
}

// toSession 领域会话转DTO
func toSession(s *crisis.Session) *cmd.Session {
	steps := make([]*cmd.InterventionStep, 0, len(s.Script.Steps))
	for _, st := range s.Script.Steps {
		steps = append(steps, &cmd.InterventionStep{
			Order:                st.Order,
			Type:                 string(st.Type),
			Prompt:               st.Prompt,
			ExpectedResponseKind: st.ExpectedResponseKind,
		})
	}
	out := &cmd.Session{
		Id:                s.Id,
		UserId:            s.UserId,
		Status:            string(s.Status),
		Escalated:         s.Escalated,
		InitialAssessment: toAssessment(s.InitialAssessment),
		CurrentAssessment: toAssessment(s.CurrentAssessment),
		Script: &cmd.InterventionScript{
			Id:               s.Script.Id,
			CrisisLevel:      s.Script.CrisisLevel.String(),
			Steps:            steps,
			EstimatedMinutes: s.Script.EstimatedMinutes,
		},
		StepsCompleted: len(s.CompletedSteps),
		StartedAt:      s.StartedAt.Unix(),
	}
	if s.CompletedAt != nil {
		out.CompletedAt = s.CompletedAt.Unix()
	}
	return out
}

func sessionResp(s *crisis.Session) *cmd.SessionResp {
	return &cmd.SessionResp{Code: 0, Msg: "success", Session: toSession(s)}
}
