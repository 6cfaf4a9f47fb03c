package crisis

import (
	"strings"
	"time"
	"unicode"
)

// 词典采用三档: 积极, 消极, 危机短语
// 中英混合是为了兼容双语输入, 匹配时统一转小写做子串匹配

var positiveLexicon = []string{
	"happy", "good", "great", "wonderful", "amazing", "excited", "grateful",
	"thankful", "joy", "love", "calm", "peaceful", "hopeful", "better",
	"proud", "relaxed", "fantastic", "excellent", "enjoy",
	"开心", "高兴", "放松", "平静", "感激", "希望", "好多了",
}

var negativeLexicon = []string{
	"sad", "angry", "anxious", "worried", "stressed", "tired", "upset",
	"frustrated", "scared", "afraid", "depressed", "miserable", "terrible",
	"awful", "hate", "overwhelmed", "exhausted", "lonely", "alone",
	"难过", "焦虑", "压力", "崩溃", "害怕", "孤独", "疲惫",
}

// crisisLexicon 危机档, 命中即判定VERY_NEGATIVE
var crisisLexicon = []string{
	"kill myself", "end my life", "want to die", "end it all", "suicide",
	"better off dead", "no reason to live", "hurt myself", "cut myself",
	"self-harm", "self harm", "harm myself", "hopeless", "can't go on",
	"cant go on", "no way out", "unbearable",
	"想死", "自杀", "活不下去", "伤害自己", "绝望",
}

// suicidalPhrases 自杀意念短语, 是危机档的固定子集
var suicidalPhrases = []string{
	"kill myself", "end my life", "want to die", "end it all", "suicide",
	"better off dead", "no reason to live",
	"想死", "自杀", "活不下去",
}

// selfHarmPhrases 自伤短语
var selfHarmPhrases = []string{
	"hurt myself", "cut myself", "self-harm", "self harm", "harm myself",
	"伤害自己",
}

// isolationPhrases 孤立信号
var isolationPhrases = []string{
	"all alone", "nobody cares", "no one cares", "so lonely",
	"no one to talk", "没人在乎", "没有人理我",
}

// substancePhrases 物质滥用信号
var substancePhrases = []string{
	"drinking too much", "drink to forget", "getting drunk", "using drugs",
	"get high", "靠酒", "喝到断片",
}

const maxKeywords = 5

// Extract 对单条消息做情感分类和危机信号提取
// 纯函数, 永不失败: 空白文本返回NEUTRAL和空信号集
func Extract(text string) (*SentimentAssessment, []CrisisIndicator) {
	now := time.Now()
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return &SentimentAssessment{
			Type:       SentimentNeutral,
			Confidence: 0.5,
			Intensity:  0.5,
			Keywords:   []string{},
			DetectedAt: now,
		}, nil
	}

	var keywords []string
	indicators := make([]CrisisIndicator, 0, 2)
	seen := make(map[CrisisIndicator]bool)
	addIndicator := func(ind CrisisIndicator) {
		if !seen[ind] {
			seen[ind] = true
			indicators = append(indicators, ind)
		}
	}

	crisisHits := countHits(lower, crisisLexicon, &keywords)
	negHits := countHits(lower, negativeLexicon, &keywords)
	posHits := countHits(lower, positiveLexicon, &keywords)

	// 分类优先级自上而下, 危机档命中优先于计数规则
	var typ SentimentType
	switch {
	case crisisHits > 0:
		typ = SentimentVeryNegative
	case negHits > posHits && negHits > 2:
		typ = SentimentNegative
	case posHits > negHits && posHits > 3:
		typ = SentimentVeryPositive
	case posHits > negHits && posHits > 2:
		typ = SentimentPositive
	case negHits > 0:
		typ = SentimentNegative
	case posHits > 0:
		typ = SentimentPositive
	default:
		typ = SentimentNeutral
	}

	if crisisHits > 0 {
		if matchAny(lower, suicidalPhrases) {
			addIndicator(IndicatorSuicidalIdeation)
		}
		if matchAny(lower, selfHarmPhrases) {
			addIndicator(IndicatorSelfHarmRisk)
		}
	}
	if matchAny(lower, isolationPhrases) {
		addIndicator(IndicatorIsolation)
	}
	if matchAny(lower, substancePhrases) {
		addIndicator(IndicatorSubstanceAbuse)
	}

	intensity := intensityOf(typ, text)
	// 极端负面且强度超过0.9时, 额外标记严重痛苦
	if typ == SentimentVeryNegative && intensity > 0.9 {
		addIndicator(IndicatorSevereDistress)
	}

	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}
	return &SentimentAssessment{
		Type:       typ,
		Confidence: confidenceOf(typ),
		Intensity:  intensity,
		Keywords:   keywords,
		DetectedAt: now,
	}, indicators
}

// countHits 统计词典命中数并记录命中词
func countHits(lower string, lexicon []string, keywords *[]string) int {
	hits := 0
	for _, w := range lexicon {
		if strings.Contains(lower, w) {
			hits++
			*keywords = append(*keywords, w)
		}
	}
	return hits
}

func matchAny(lower string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// confidenceOf 按分类结果查固定置信度表
func confidenceOf(typ SentimentType) float64 {
	switch typ {
	case SentimentVeryNegative, SentimentVeryPositive:
		return 0.9
	case SentimentNegative, SentimentPositive:
		return 0.75
	default:
		return 0.5
	}
}

// intensityOf 基础强度加上标点和大写比例的有界加成, 上限1.0
func intensityOf(typ SentimentType, text string) float64 {
	var base float64
	switch typ {
	case SentimentVeryNegative, SentimentVeryPositive:
		base = 0.9
	case SentimentNegative, SentimentPositive:
		base = 0.7
	default:
		base = 0.5
	}

	// 感叹号加成, 每个+0.02, 封顶0.1
	exclaim := float64(strings.Count(text, "!")+strings.Count(text, "！")) * 0.02
	if exclaim > 0.1 {
		exclaim = 0.1
	}

	// 大写字母比例加成, 封顶0.2
	var upper, letters int
	for _, r := range text {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	var caps float64
	if letters > 0 {
		caps = float64(upper) / float64(letters) * 0.2
	}
	if caps > 0.2 {
		caps = 0.2
	}

	intensity := base + exclaim + caps
	if intensity > 1.0 {
		intensity = 1.0
	}
	return intensity
}
