package crisis

import "github.com/xh-polaris/psych-crisis/biz/infrastructure/config"

// 目录未配置时的兜底资源, 危机场景下不允许出现空目录
var defaultHotlines = []config.EmergencyContact{
	{Name: "全国心理援助热线", Phone: "12356", Available: "24小时"},
	{Name: "急救电话", Phone: "120", Available: "24小时"},
}

var defaultCrisisResources = []string{
	"危机干预热线使用指引",
	"附近的24小时心理急诊信息",
}

var defaultGeneralResources = []string{
	"情绪调节练习合集",
	"正念与呼吸放松音频",
}

// SafetyResolver 按风险等级解析安全措施
// 固定查表, 不依赖自由文本
type SafetyResolver struct {
	catalog config.Safety
}

func NewSafetyResolver(catalog config.Safety) *SafetyResolver {
	if len(catalog.Hotlines) < 2 {
		catalog.Hotlines = defaultHotlines
	}
	if len(catalog.CrisisResources) == 0 {
		catalog.CrisisResources = defaultCrisisResources
	}
	if len(catalog.GeneralResources) == 0 {
		catalog.GeneralResources = defaultGeneralResources
	}
	return &SafetyResolver{catalog: catalog}
}

// Resolve 解析评估对应的安全措施
// CRITICAL一定携带含至少两个紧急联系方式的安全计划,
// HIGH提供行动与资源但安全计划可为空, MEDIUM/LOW只给自助指引
func (r *SafetyResolver) Resolve(assessment *RiskAssessment) *SafetyMeasures {
	switch assessment.Level {
	case RiskCritical:
		return &SafetyMeasures{
			ImmediateActions: []string{
				"立即拨打危机干预热线",
				"确保当前环境安全, 移除危险物品",
				"联系紧急联系人, 避免独处",
			},
			SafetyPlan: r.buildPlan(assessment),
			Resources:  r.catalog.CrisisResources,
		}
	case RiskHigh:
		return &SafetyMeasures{
			ImmediateActions: []string{
				"联系信任的亲友陪伴",
				"今天内预约心理咨询",
			},
			Resources: r.catalog.CrisisResources,
		}
	default:
		return &SafetyMeasures{
			ImmediateActions: []string{"保持规律作息, 关注自己的情绪变化"},
			Resources:        r.catalog.GeneralResources,
		}
	}
}

// buildPlan 每次评估生成全新的安全计划
// 预警信号来自检测到的危机信号, 个性化触发源来自高危因子
func (r *SafetyResolver) buildPlan(assessment *RiskAssessment) *SafetyPlan {
	warnings := make([]string, 0, len(assessment.Indicators))
	for _, ind := range assessment.Indicators {
		warnings = append(warnings, warningSign(ind))
	}
	triggers := make([]string, 0)
	for _, f := range assessment.RiskFactors {
		if f.Severity >= 0.7 {
			triggers = append(triggers, f.Description)
		}
	}
	return &SafetyPlan{
		EmergencyContacts: r.catalog.Hotlines,
		CopingStrategies: []string{
			"着地练习: 说出身边能看到的5样东西",
			"深呼吸: 吸气4秒, 屏住4秒, 呼气6秒",
			"给信任的人打一个电话",
		},
		WarningSigns:         warnings,
		PersonalizedTriggers: triggers,
	}
}

func warningSign(ind CrisisIndicator) string {
	switch ind {
	case IndicatorSuicidalIdeation:
		return "出现自杀相关念头"
	case IndicatorSelfHarmRisk:
		return "出现自伤冲动"
	case IndicatorSevereDistress:
		return "强烈而难以承受的痛苦感"
	case IndicatorIsolation:
		return "回避与他人联系"
	case IndicatorSubstanceAbuse:
		return "依赖酒精或药物缓解情绪"
	default:
		return string(ind)
	}
}
