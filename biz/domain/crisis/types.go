package crisis

import (
	"time"

	"github.com/xh-polaris/psych-crisis/biz/infrastructure/config"
)

// RiskLevel 风险等级, 显式整数rank保证全序比较, 不依赖声明顺序
type RiskLevel int

const (
	RiskNone RiskLevel = iota
	RiskLow
	RiskMedium
	RiskHigh
	RiskCritical
)

// maxRiskRank 是最高风险等级对应的rank
const maxRiskRank = int(RiskCritical)

// Rank 返回等级的整数序
func (l RiskLevel) Rank() int { return int(l) }

func (l RiskLevel) String() string {
	switch l {
	case RiskNone:
		return "NONE"
	case RiskLow:
		return "LOW"
	case RiskMedium:
		return "MEDIUM"
	case RiskHigh:
		return "HIGH"
	case RiskCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// SentimentType 情感分类, 按严重程度排序
type SentimentType int

const (
	SentimentNone SentimentType = iota
	SentimentNeutral
	SentimentPositive
	SentimentVeryPositive
	SentimentNegative
	SentimentVeryNegative
)

func (t SentimentType) String() string {
	switch t {
	case SentimentNone:
		return "NONE"
	case SentimentNeutral:
		return "NEUTRAL"
	case SentimentPositive:
		return "POSITIVE"
	case SentimentVeryPositive:
		return "VERY_POSITIVE"
	case SentimentNegative:
		return "NEGATIVE"
	case SentimentVeryNegative:
		return "VERY_NEGATIVE"
	default:
		return "UNKNOWN"
	}
}

// CrisisIndicator 文本中检测到的安全相关信号
type CrisisIndicator string

const (
	IndicatorSuicidalIdeation CrisisIndicator = "suicidal_ideation"
	IndicatorSelfHarmRisk     CrisisIndicator = "self_harm_risk"
	IndicatorSevereDistress   CrisisIndicator = "severe_distress"
	IndicatorIsolation        CrisisIndicator = "isolation"
	IndicatorSubstanceAbuse   CrisisIndicator = "substance_abuse"
)

// FactorCategory 风险因子类别
type FactorCategory string

const (
	FactorMood            FactorCategory = "mood"
	FactorSleep           FactorCategory = "sleep"
	FactorStress          FactorCategory = "stress"
	FactorSocialSupport   FactorCategory = "social_support"
	FactorTriggerExposure FactorCategory = "trigger_exposure"
)

// factorCategories 固定类别全集, 补默认值时按此遍历
var factorCategories = []FactorCategory{
	FactorMood, FactorSleep, FactorStress, FactorSocialSupport, FactorTriggerExposure,
}

// SentimentAssessment 单条消息的情感评估, 每条消息重新计算, 不做修改
type SentimentAssessment struct {
	Type       SentimentType `json:"type"`
	Confidence float64       `json:"confidence"`
	Intensity  float64       `json:"intensity"`
	Keywords   []string      `json:"keywords"`
	DetectedAt time.Time     `json:"detected_at"`
}

// RiskFactor 单个风险因子, severity取值0~1, 越大风险越高
type RiskFactor struct {
	Category    FactorCategory `json:"category"`
	Severity    float64        `json:"severity"`
	Description string         `json:"description"`
	DetectedAt  time.Time      `json:"detected_at"`
}

// EarlyWarning 风险因子滚动历史中的持续恶化信号
type EarlyWarning struct {
	Category    FactorCategory `json:"category"`
	Severity    RiskLevel      `json:"severity"`
	Description string         `json:"description"`
	DetectedAt  time.Time      `json:"detected_at"`
}

// RiskAssessment 综合风险评估, 不可变值对象
type RiskAssessment struct {
	Level                 RiskLevel         `json:"level"`
	Score                 float64           `json:"score"`
	Indicators            []CrisisIndicator `json:"indicators"`
	RiskFactors           []RiskFactor      `json:"risk_factors"`
	EarlyWarnings         []EarlyWarning    `json:"early_warnings"`
	Recommendations       []string          `json:"recommendations"`
	InterventionTriggered bool              `json:"intervention_triggered"`
	AssessedAt            time.Time         `json:"assessed_at"`
}

// HasIndicator 判断是否包含某个危机信号
func (a *RiskAssessment) HasIndicator(ind CrisisIndicator) bool {
	for _, i := range a.Indicators {
		if i == ind {
			return true
		}
	}
	return false
}

// StepType 干预步骤类型
type StepType string

const (
	StepImmediateSafety   StepType = "immediate_safety"
	StepCrisisHotline     StepType = "crisis_hotline"
	StepSafetyPlanning    StepType = "safety_planning"
	StepValidation        StepType = "validation"
	StepExploration       StepType = "exploration"
	StepCopingStrategies  StepType = "coping_strategies"
	StepSupportNetwork    StepType = "support_network"
	StepResourceProvision StepType = "resource_provision"
	StepGrounding         StepType = "grounding"
	StepFollowUp          StepType = "follow_up"
)

// InterventionStep 单个干预步骤, Order从1开始连续编号
type InterventionStep struct {
	Order                int      `json:"order"`
	Type                 StepType `json:"type"`
	Prompt               string   `json:"prompt"`
	ExpectedResponseKind string   `json:"expected_response_kind"`
}

// InterventionScript 一次干预的完整脚本, 由创建它的会话独占
// 升级时整体替换, 不做原地修改
type InterventionScript struct {
	Id               string              `json:"id"`
	UserId           string              `json:"user_id"`
	CrisisLevel      RiskLevel           `json:"crisis_level"`
	Steps            []*InterventionStep `json:"steps"`
	EstimatedMinutes int                 `json:"estimated_minutes"`
	CreatedAt        time.Time           `json:"created_at"`
}

// StepExecutionResult 一次步骤执行的结果
type StepExecutionResult struct {
	SessionId     string            `json:"session_id"`
	StepIndex     int               `json:"step_index"`
	Step          *InterventionStep `json:"step"`
	Response      string            `json:"response"`
	NewAssessment *RiskAssessment   `json:"new_assessment,omitempty"`
	IsCompleted   bool              `json:"is_completed"`
	Progress      float64           `json:"progress"`
	ExecutedAt    time.Time         `json:"executed_at"`
}

// SessionStatus 会话状态, ACTIVE为初始态, COMPLETED/CANCELLED为终态
type SessionStatus string

const (
	StatusActive    SessionStatus = "active"
	StatusCompleted SessionStatus = "completed"
	StatusCancelled SessionStatus = "cancelled"
)

// Session 干预会话
// Escalated 是叠加在ACTIVE之上的升级标记, 不替换状态本身
type Session struct {
	Id                string                 `json:"id"`
	UserId            string                 `json:"user_id"`
	InitialAssessment *RiskAssessment        `json:"initial_assessment"`
	CurrentAssessment *RiskAssessment        `json:"current_assessment"`
	Script            *InterventionScript    `json:"script"`
	CompletedSteps    []*StepExecutionResult `json:"completed_steps"`
	Status            SessionStatus          `json:"status"`
	Escalated         bool                   `json:"escalated"`
	StartedAt         time.Time              `json:"started_at"`
	CompletedAt       *time.Time             `json:"completed_at,omitempty"`
}

// SafetyPlan 高风险时生成的安全计划, 生成后不再修改
type SafetyPlan struct {
	EmergencyContacts    []config.EmergencyContact `json:"emergency_contacts"`
	CopingStrategies     []string                  `json:"coping_strategies"`
	WarningSigns         []string                  `json:"warning_signs"`
	PersonalizedTriggers []string                  `json:"personalized_triggers"`
}

// SafetyMeasures 按风险等级解析出的安全措施
type SafetyMeasures struct {
	ImmediateActions []string    `json:"immediate_actions"`
	SafetyPlan       *SafetyPlan `json:"safety_plan,omitempty"`
	Resources        []string    `json:"resources"`
}

// Progress 会话进度指标
type Progress struct {
	SessionId          string        `json:"session_id"`
	InitialLevel       RiskLevel     `json:"initial_level"`
	CurrentLevel       RiskLevel     `json:"current_level"`
	ProgressPercentage float64       `json:"progress_percentage"`
	StepsCompleted     int           `json:"steps_completed"`
	TotalSteps         int           `json:"total_steps"`
	TimeElapsed        time.Duration `json:"time_elapsed"`
	IsStable           bool          `json:"is_stable"`
}

// FactorHistory 按类别组织的因子历史样本, 旧样本在前
type FactorHistory map[FactorCategory][]float64

// FactorHistoryProvider 提供用户的因子历史, 由调用方注入
// 测试中使用确定性的内存实现, 生产中由redis提供
type FactorHistoryProvider interface {
	Load(userId string) (FactorHistory, error)
}
