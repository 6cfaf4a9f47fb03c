package crisis

import (
	"sync"
	"time"

	"github.com/xh-polaris/gopkg/util/log"
	"github.com/xh-polaris/psych-crisis/biz/infrastructure/consts"
)

// Engine 是危机干预会话的状态机
// 所有公开操作都是短同步计算, 内部不做IO, 持久化和告警由调用方处理
type Engine struct {
	mu      sync.Mutex
	store   SessionStore
	scorer  *RiskScorer
	gen     *ScriptGenerator
	history FactorHistoryProvider
}

// NewEngine history可以为nil, 此时评估只依据消息本身
func NewEngine(store SessionStore, scorer *RiskScorer, gen *ScriptGenerator, history FactorHistoryProvider) *Engine {
	return &Engine{
		store:   store,
		scorer:  scorer,
		gen:     gen,
		history: history,
	}
}

// Assess 对一条消息做完整风险评估
func (e *Engine) Assess(text, userId string) *RiskAssessment {
	var his FactorHistory
	if e.history != nil {
		loaded, err := e.history.Load(userId)
		if err != nil {
			// 历史加载失败时降级为无历史评估, 评估本身永不失败
			log.Error("load factor history err:", err)
		} else {
			his = loaded
		}
	}
	return e.scorer.Assess(text, userId, his)
}

// CreateSession 以首条危机相关输入创建会话, 初始状态ACTIVE
func (e *Engine) CreateSession(userId, initialText string) (*Session, error) {
	if userId == "" || initialText == "" {
		return nil, consts.ErrInvalidInput
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	assessment := e.Assess(initialText, userId)
	session := &Session{
		Id:                e.gen.idg.NewId(),
		UserId:            userId,
		InitialAssessment: assessment,
		CurrentAssessment: assessment,
		Script:            e.gen.Generate(userId, assessment.Level),
		CompletedSteps:    make([]*StepExecutionResult, 0),
		Status:            StatusActive,
		StartedAt:         time.Now(),
	}
	e.store.Put(session)
	return session, nil
}

// ExecuteStep 执行脚本中指定下标的步骤
// 用户响应非空时会基于响应重新评估, 但不直接改写会话的当前评估,
// 是否升降级由调用方通过AdaptSession决定
func (e *Engine) ExecuteStep(sessionId string, stepIndex int, userResponse string) (*StepExecutionResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	session, ok := e.store.Get(sessionId)
	if !ok {
		return nil, consts.ErrSessionNotFound
	}
	if session.Status != StatusActive {
		return nil, consts.ErrSessionFinished
	}
	total := len(session.Script.Steps)
	if stepIndex < 0 || stepIndex >= total {
		return nil, consts.ErrStepOutOfRange
	}

	result := &StepExecutionResult{
		SessionId:   sessionId,
		StepIndex:   stepIndex,
		Step:        session.Script.Steps[stepIndex],
		Response:    userResponse,
		IsCompleted: stepIndex == total-1,
		Progress:    float64(stepIndex+1) / float64(total) * 100,
		ExecutedAt:  time.Now(),
	}
	if userResponse != "" {
		result.NewAssessment = e.Assess(userResponse, session.UserId)
	}

	// 顺序推进时记录执行结果, 保证已完成步骤数不超过脚本长度
	if stepIndex == len(session.CompletedSteps) {
		session.CompletedSteps = append(session.CompletedSteps, result)
		e.store.Put(session)
	}
	return result, nil
}

// AdaptSession 基于最新响应重新评估并调整脚本
// 升级: 丢弃旧脚本, 按新等级重新生成, 并打上升级标记
// 降级: 仅在新评估给出明确的更低严重度时整体重新生成,
// 绝不在没有新证据的情况下降到NONE
func (e *Engine) AdaptSession(sessionId, userResponse string) (*Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	session, ok := e.store.Get(sessionId)
	if !ok {
		return nil, consts.ErrSessionNotFound
	}
	if session.Status != StatusActive {
		return nil, consts.ErrSessionFinished
	}
	if userResponse == "" {
		// 空响应不构成新证据, 会话保持原样
		return session, nil
	}

	assessment := e.Assess(userResponse, session.UserId)
	current := session.Script.CrisisLevel
	switch {
	case assessment.Level.Rank() > current.Rank():
		session.Script = e.gen.Generate(session.UserId, assessment.Level)
		session.CompletedSteps = session.CompletedSteps[:0]
		session.CurrentAssessment = assessment
		session.Escalated = true
		log.Info("session %s escalated: %s -> %s", sessionId, current.String(), assessment.Level.String())
	case assessment.Level.Rank() < current.Rank():
		if assessment.Level == RiskNone && (len(assessment.Indicators) > 0 || len(assessment.RiskFactors) > 0) {
			// 非零信号不允许降到NONE
			return session, nil
		}
		session.Script = e.gen.Generate(session.UserId, assessment.Level)
		session.CompletedSteps = session.CompletedSteps[:0]
		session.CurrentAssessment = assessment
	default:
		return session, nil
	}
	e.store.Put(session)
	return session, nil
}

// CompleteSession 以最终评估结束会话, 终态之后的操作都会失败
func (e *Engine) CompleteSession(sessionId string, final *RiskAssessment) (*Session, error) {
	if final == nil {
		return nil, consts.ErrInvalidInput
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	session, ok := e.store.Get(sessionId)
	if !ok {
		return nil, consts.ErrSessionNotFound
	}
	if session.Status != StatusActive {
		return nil, consts.ErrSessionFinished
	}
	now := time.Now()
	session.CurrentAssessment = final
	session.Status = StatusCompleted
	session.CompletedAt = &now
	e.store.Put(session)
	return session, nil
}

// CancelSession 取消会话, 同样是终态
func (e *Engine) CancelSession(sessionId string) (*Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	session, ok := e.store.Get(sessionId)
	if !ok {
		return nil, consts.ErrSessionNotFound
	}
	if session.Status != StatusActive {
		return nil, consts.ErrSessionFinished
	}
	now := time.Now()
	session.Status = StatusCancelled
	session.CompletedAt = &now
	e.store.Put(session)
	return session, nil
}

// GetSession 按id读取会话
func (e *Engine) GetSession(sessionId string) (*Session, error) {
	session, ok := e.store.Get(sessionId)
	if !ok {
		return nil, consts.ErrSessionNotFound
	}
	return session, nil
}
