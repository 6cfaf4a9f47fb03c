package crisis

import (
	"time"

	"github.com/xh-polaris/psych-crisis/biz/infrastructure/consts"
)

// MonitorProgress 计算会话的归一化进度与稳定性指标
// 进度按风险等级相对最高等级的改善比例计算并截断到[0,100],
// 分母为零(初始即最高等级无改善空间)时按100处理, 避免除零
func (e *Engine) MonitorProgress(sessionId string) (*Progress, error) {
	session, ok := e.store.Get(sessionId)
	if !ok {
		return nil, consts.ErrSessionNotFound
	}

	initial := session.InitialAssessment.Level
	current := session.CurrentAssessment.Level

	var pct float64
	denom := float64(maxRiskRank - initial.Rank())
	if denom == 0 {
		pct = 100
	} else {
		pct = float64(maxRiskRank-current.Rank()) / denom * 100
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	return &Progress{
		SessionId:          session.Id,
		InitialLevel:       initial,
		CurrentLevel:       current,
		ProgressPercentage: pct,
		StepsCompleted:     len(session.CompletedSteps),
		TotalSteps:         len(session.Script.Steps),
		TimeElapsed:        time.Since(session.StartedAt),
		IsStable:           current.Rank() <= RiskLow.Rank(),
	}, nil
}
