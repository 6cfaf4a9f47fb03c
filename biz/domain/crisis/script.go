package crisis

import "time"

// stepSpec 步骤目录项, 每个等级一份固定顺序的目录
type stepSpec struct {
	typ    StepType
	prompt string
	expect string
}

// 各等级的干预步骤目录, 顺序即执行顺序
var stepCatalog = map[RiskLevel][]stepSpec{
	RiskCritical: {
		{StepImmediateSafety, "你现在安全吗? 请告诉我你目前所在的位置和身边的情况", "safety_status"},
		{StepCrisisHotline, "我非常担心你, 请现在拨打危机干预热线, 拨通后告诉我", "acknowledgement"},
		{StepSafetyPlanning, "我们一起制定一份安全计划: 接下来一小时你可以联系谁?", "safety_plan"},
		{StepGrounding, "跟我做一次着地练习: 说出你现在能看到的5样东西", "grounding_response"},
	},
	RiskHigh: {
		{StepValidation, "听起来你正在经历非常艰难的时刻, 愿意多说一些吗?", "free_text"},
		{StepCopingStrategies, "以前遇到类似的感受时, 有什么方法曾经让你好受一点?", "coping_response"},
		{StepSupportNetwork, "你身边有可以倾诉的人吗? 现在可以联系谁?", "support_contact"},
		{StepResourceProvision, "这里有一些可以帮到你的资源, 需要我介绍一下吗?", "acknowledgement"},
	},
	RiskMedium: {
		{StepValidation, "谢谢你愿意说出这些感受, 这并不容易", "free_text"},
		{StepExploration, "是什么让你最近有这样的感受?", "free_text"},
		{StepCopingStrategies, "我们可以试试一个简单的放松练习, 愿意吗?", "coping_response"},
	},
	RiskLow: {
		{StepValidation, "听起来你最近有些起伏, 愿意聊聊吗?", "free_text"},
		{StepCopingStrategies, "保持你现在的节奏, 要不要试试今天记录一件让你平静的小事?", "coping_response"},
	},
	RiskNone: {},
}

// 各等级的预计时长(分钟)
var durationCatalog = map[RiskLevel]int{
	RiskCritical: 60,
	RiskHigh:     45,
	RiskMedium:   30,
	RiskLow:      15,
	RiskNone:     0,
}

// ScriptGenerator 按风险等级生成干预脚本
type ScriptGenerator struct {
	idg IdGenerator
}

func NewScriptGenerator(idg IdGenerator) *ScriptGenerator {
	return &ScriptGenerator{idg: idg}
}

// Generate 生成一份全新脚本
// 确定性映射: 同一等级总是产出同样的步骤序列, 序号从1连续编号
// 每次调用都构造新的步骤实例, 不复用旧脚本
func (g *ScriptGenerator) Generate(userId string, level RiskLevel) *InterventionScript {
	specs := stepCatalog[level]
	steps := make([]*InterventionStep, 0, len(specs))
	for i, sp := range specs {
		steps = append(steps, &InterventionStep{
			Order:                i + 1,
			Type:                 sp.typ,
			Prompt:               sp.prompt,
			ExpectedResponseKind: sp.expect,
		})
	}
	return &InterventionScript{
		Id:               g.idg.NewId(),
		UserId:           userId,
		CrisisLevel:      level,
		Steps:            steps,
		EstimatedMinutes: durationCatalog[level],
		CreatedAt:        time.Now(),
	}
}
