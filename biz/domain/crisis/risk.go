package crisis

import (
	"math"
	"time"
)

// neutralSeverity 缺数据因子的中性默认值, 避免均值被缺失项拉偏
const neutralSeverity = 0.45

// recentWindow 早期预警的滚动窗口大小
const recentWindow = 3

// RiskScorer 多因子风险评分器, 所有方法都是纯计算, 永不报错
type RiskScorer struct{}

func NewRiskScorer() *RiskScorer { return &RiskScorer{} }

// Score 仅基于因子集合计算综合评估
// 聚合使用均值, 与因子顺序无关
func (s *RiskScorer) Score(factors []RiskFactor) *RiskAssessment {
	return s.compose(factors, nil, nil)
}

// Assess 组合信号提取与因子分析, 产出完整的风险评估
// history为nil时只依据消息本身推导情绪因子
func (s *RiskScorer) Assess(text, userId string, history FactorHistory) *RiskAssessment {
	sentiment, indicators := Extract(text)
	factors := s.buildFactors(text, sentiment, history)
	warnings := s.earlyWarnings(history)
	a := s.compose(factors, indicators, warnings)
	return a
}

// compose 聚合因子均值并套用阈值, 自杀意念无条件置CRITICAL
func (s *RiskScorer) compose(factors []RiskFactor, indicators []CrisisIndicator, warnings []EarlyWarning) *RiskAssessment {
	var score float64
	if len(factors) > 0 {
		var sum float64
		for _, f := range factors {
			sum += f.Severity
		}
		score = math.Round(sum / float64(len(factors)) * 100)
	}

	var level RiskLevel
	switch {
	case len(factors) == 0 && len(indicators) == 0:
		level = RiskNone
	default:
		level = levelForScore(score)
	}

	// 自杀意念强制CRITICAL, 不允许被均值稀释
	// 这是安全关键规则, 任何改动都需要临床侧确认
	for _, ind := range indicators {
		if ind == IndicatorSuicidalIdeation {
			level = RiskCritical
			break
		}
	}

	if indicators == nil {
		indicators = []CrisisIndicator{}
	}
	if warnings == nil {
		warnings = []EarlyWarning{}
	}
	return &RiskAssessment{
		Level:                 level,
		Score:                 score,
		Indicators:            indicators,
		RiskFactors:           factors,
		EarlyWarnings:         warnings,
		Recommendations:       recommendFor(level, factors),
		InterventionTriggered: level.Rank() >= RiskHigh.Rank(),
		AssessedAt:            time.Now(),
	}
}

// levelForScore 阈值映射, 边界取下限
func levelForScore(score float64) RiskLevel {
	switch {
	case score >= 80:
		return RiskCritical
	case score >= 60:
		return RiskHigh
	case score >= 40:
		return RiskMedium
	default:
		return RiskLow
	}
}

// buildFactors 从消息情绪和历史样本构造因子集合
// 提供了历史时, 五个类别都参与均值, 缺样本的类别取中性默认值,
// 防止除零, 也避免数据缺失被误判成低风险
func (s *RiskScorer) buildFactors(text string, sentiment *SentimentAssessment, history FactorHistory) []RiskFactor {
	now := time.Now()
	factors := make([]RiskFactor, 0, len(factorCategories))

	if len(history) > 0 {
		for _, cat := range factorCategories {
			if cat == FactorMood && text != "" {
				// 情绪因子优先采用本条消息的新鲜证据
				continue
			}
			severity := neutralSeverity
			desc := "历史数据不足, 取中性默认值"
			if samples := history[cat]; len(samples) > 0 {
				severity = meanOf(tail(samples, recentWindow))
				desc = factorDesc(cat)
			}
			factors = append(factors, RiskFactor{
				Category:    cat,
				Severity:    severity,
				Description: desc,
				DetectedAt:  now,
			})
		}
	}

	if text != "" {
		factors = append(factors, RiskFactor{
			Category:    FactorMood,
			Severity:    moodSeverity(sentiment),
			Description: factorDesc(FactorMood),
			DetectedAt:  now,
		})
	}
	return factors
}

// moodSeverity 把情感分类映射为情绪因子强度
func moodSeverity(sentiment *SentimentAssessment) float64 {
	switch sentiment.Type {
	case SentimentVeryNegative:
		return 0.9
	case SentimentNegative:
		return 0.55
	case SentimentNeutral:
		return 0.35
	case SentimentPositive:
		return 0.2
	case SentimentVeryPositive:
		return 0.1
	default:
		return neutralSeverity
	}
}

func factorDesc(cat FactorCategory) string {
	switch cat {
	case FactorMood:
		return "近期情绪状态"
	case FactorSleep:
		return "睡眠质量"
	case FactorStress:
		return "压力水平"
	case FactorSocialSupport:
		return "社会支持缺失程度"
	case FactorTriggerExposure:
		return "触发因素暴露程度"
	default:
		return string(cat)
	}
}

// earlyWarnings 对比每个类别最近3个样本与之前3个样本的均值
// 恶化幅度≥0.3记MEDIUM预警, ≥0.5记HIGH预警
func (s *RiskScorer) earlyWarnings(history FactorHistory) []EarlyWarning {
	if len(history) == 0 {
		return nil
	}
	now := time.Now()
	warnings := make([]EarlyWarning, 0)
	for _, cat := range factorCategories {
		samples := history[cat]
		if len(samples) < recentWindow*2 {
			continue
		}
		recent := meanOf(samples[len(samples)-recentWindow:])
		prior := meanOf(samples[len(samples)-recentWindow*2 : len(samples)-recentWindow])
		delta := recent - prior
		if delta >= 0.5 {
			warnings = append(warnings, EarlyWarning{
				Category:    cat,
				Severity:    RiskHigh,
				Description: "该因子近期持续显著恶化",
				DetectedAt:  now,
			})
		} else if delta >= 0.3 {
			warnings = append(warnings, EarlyWarning{
				Category:    cat,
				Severity:    RiskMedium,
				Description: "该因子近期持续恶化",
				DetectedAt:  now,
			})
		}
	}
	return warnings
}

// recommendFor 按等级和高危因子查固定建议表
func recommendFor(level RiskLevel, factors []RiskFactor) []string {
	recs := make([]string, 0, 4)
	switch level {
	case RiskCritical:
		recs = append(recs,
			"请立即拨打危机干预热线",
			"不要独处, 立刻联系紧急联系人或前往安全场所")
	case RiskHigh:
		recs = append(recs,
			"建议今天内联系心理咨询师",
			"与信任的亲友保持联系")
	case RiskMedium:
		recs = append(recs,
			"尝试记录情绪日记, 关注情绪变化",
			"安排一次放松活动")
	case RiskLow:
		recs = append(recs, "保持当前的自我照顾习惯")
	}
	for _, f := range factors {
		if f.Severity < 0.7 {
			continue
		}
		switch f.Category {
		case FactorSleep:
			recs = append(recs, "睡眠状况较差, 建议调整作息并减少睡前屏幕时间")
		case FactorStress:
			recs = append(recs, "压力水平偏高, 建议练习呼吸放松")
		case FactorSocialSupport:
			recs = append(recs, "社会支持不足, 建议主动联系信任的亲友")
		case FactorTriggerExposure:
			recs = append(recs, "近期触发源暴露较多, 建议暂时远离相关场景")
		case FactorMood:
			recs = append(recs, "情绪持续低落, 建议尽快与专业人士沟通")
		}
	}
	return recs
}

func meanOf(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, v := range samples {
		sum += v
	}
	return sum / float64(len(samples))
}

func tail(samples []float64, n int) []float64 {
	if len(samples) <= n {
		return samples
	}
	return samples[len(samples)-n:]
}
