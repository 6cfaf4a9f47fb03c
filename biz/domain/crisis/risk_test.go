package crisis

import (
	"testing"
	"time"
)

func factor(cat FactorCategory, severity float64) RiskFactor {
	return RiskFactor{Category: cat, Severity: severity, DetectedAt: time.Now()}
}

func TestLevelForScore_Boundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  RiskLevel
	}{
		{0, RiskLow},
		{39.9, RiskLow},
		{40.0, RiskMedium},
		{59.9, RiskMedium},
		{60.0, RiskHigh},
		{79.9, RiskHigh},
		{80.0, RiskCritical},
		{100, RiskCritical},
	}
	for _, c := range cases {
		if got := levelForScore(c.score); got != c.want {
			t.Fatalf("levelForScore(%v) = %s, want %s", c.score, got, c.want)
		}
	}
}

func TestScore_Empty(t *testing.T) {
	a := NewRiskScorer().Score(nil)
	if a.Level != RiskNone {
		t.Fatalf("level = %s, want NONE", a.Level)
	}
	if a.Score != 0 || a.InterventionTriggered {
		t.Fatalf("score = %v, triggered = %v", a.Score, a.InterventionTriggered)
	}
}

func TestScore_Mean(t *testing.T) {
	s := NewRiskScorer()
	a := s.Score([]RiskFactor{
		factor(FactorMood, 0.8),
		factor(FactorSleep, 0.6),
	})
	if a.Score != 70 {
		t.Fatalf("score = %v, want 70", a.Score)
	}
	if a.Level != RiskHigh {
		t.Fatalf("level = %s, want HIGH", a.Level)
	}
	if !a.InterventionTriggered {
		t.Fatal("interventionTriggered = false, want true")
	}
}

func TestScore_OrderIndependent(t *testing.T) {
	s := NewRiskScorer()
	f1 := []RiskFactor{factor(FactorMood, 0.9), factor(FactorSleep, 0.3), factor(FactorStress, 0.6)}
	f2 := []RiskFactor{factor(FactorStress, 0.6), factor(FactorMood, 0.9), factor(FactorSleep, 0.3)}
	if s.Score(f1).Score != s.Score(f2).Score {
		t.Fatal("score depends on factor order")
	}
}

func TestAssess_NoHits(t *testing.T) {
	a := NewRiskScorer().Assess("the meeting is at noon tomorrow", "u1", nil)
	if a.Level != RiskNone && a.Level != RiskLow {
		t.Fatalf("level = %s, want NONE or LOW", a.Level)
	}
	if a.InterventionTriggered {
		t.Fatal("interventionTriggered = true, want false")
	}
	if len(a.Indicators) != 0 {
		t.Fatalf("indicators = %v, want empty", a.Indicators)
	}
}

func TestAssess_BlankText(t *testing.T) {
	a := NewRiskScorer().Assess("", "u1", nil)
	if a.Level != RiskNone {
		t.Fatalf("level = %s, want NONE", a.Level)
	}
}

func TestAssess_SuicidalOverride(t *testing.T) {
	a := NewRiskScorer().Assess("I want to Kill Myself", "u1", nil)
	if a.Level != RiskCritical {
		t.Fatalf("level = %s, want CRITICAL", a.Level)
	}
	if !a.HasIndicator(IndicatorSuicidalIdeation) {
		t.Fatalf("indicators = %v, want suicidal_ideation", a.Indicators)
	}
	if !a.InterventionTriggered {
		t.Fatal("interventionTriggered = false, want true")
	}
}

// 即使历史因子都很低, 自杀意念也必须强制CRITICAL
func TestAssess_OverrideBeatsAveraging(t *testing.T) {
	history := FactorHistory{
		FactorSleep:         {0.1, 0.1, 0.1},
		FactorStress:        {0.1, 0.1, 0.1},
		FactorSocialSupport: {0.1, 0.1, 0.1},
	}
	a := NewRiskScorer().Assess("I want to end it all", "u1", history)
	if a.Level != RiskCritical {
		t.Fatalf("level = %s, want CRITICAL", a.Level)
	}
}

func TestAssess_Idempotent(t *testing.T) {
	s := NewRiskScorer()
	a1 := s.Assess("I feel hopeless and want to end it all", "u1", nil)
	a2 := s.Assess("I feel hopeless and want to end it all", "u1", nil)
	if a1.Level != a2.Level || a1.Score != a2.Score {
		t.Fatalf("assessments differ: %v/%v vs %v/%v", a1.Level, a1.Score, a2.Level, a2.Score)
	}
	if len(a1.Indicators) != len(a2.Indicators) {
		t.Fatalf("indicators differ: %v vs %v", a1.Indicators, a2.Indicators)
	}
	for i := range a1.Indicators {
		if a1.Indicators[i] != a2.Indicators[i] {
			t.Fatalf("indicators differ: %v vs %v", a1.Indicators, a2.Indicators)
		}
	}
}

func TestAssess_PositiveDay(t *testing.T) {
	a := NewRiskScorer().Assess("I had a good day at work", "u1", nil)
	if a.Level != RiskNone && a.Level != RiskLow {
		t.Fatalf("level = %s, want NONE or LOW", a.Level)
	}
	if len(a.Indicators) != 0 {
		t.Fatalf("indicators = %v, want empty", a.Indicators)
	}
}

// 提供历史时五个类别都参与均值, 缺样本的取中性默认值
func TestAssess_NeutralDefaultFillsMissing(t *testing.T) {
	history := FactorHistory{
		FactorSleep: {0.8, 0.8, 0.8},
	}
	a := NewRiskScorer().Assess("I feel sad today", "u1", history)
	if len(a.RiskFactors) != len(factorCategories) {
		t.Fatalf("factors = %d, want %d", len(a.RiskFactors), len(factorCategories))
	}
	var defaults int
	for _, f := range a.RiskFactors {
		if f.Severity == neutralSeverity {
			defaults++
		}
	}
	if defaults != 3 {
		t.Fatalf("default factors = %d, want 3", defaults)
	}
}

func TestEarlyWarnings(t *testing.T) {
	s := NewRiskScorer()
	history := FactorHistory{
		FactorSleep:  {0.2, 0.2, 0.2, 0.55, 0.55, 0.55},
		FactorStress: {0.1, 0.1, 0.1, 0.7, 0.7, 0.7},
		FactorMood:   {0.4, 0.4, 0.4, 0.45, 0.45, 0.45},
	}
	warnings := s.earlyWarnings(history)
	if len(warnings) != 2 {
		t.Fatalf("warnings = %d, want 2", len(warnings))
	}
	for _, w := range warnings {
		switch w.Category {
		case FactorSleep:
			if w.Severity != RiskMedium {
				t.Fatalf("sleep warning severity = %s, want MEDIUM", w.Severity)
			}
		case FactorStress:
			if w.Severity != RiskHigh {
				t.Fatalf("stress warning severity = %s, want HIGH", w.Severity)
			}
		default:
			t.Fatalf("unexpected warning category %s", w.Category)
		}
	}
}

func TestEarlyWarnings_InsufficientSamples(t *testing.T) {
	warnings := NewRiskScorer().earlyWarnings(FactorHistory{
		FactorSleep: {0.1, 0.9},
	})
	if len(warnings) != 0 {
		t.Fatalf("warnings = %v, want empty", warnings)
	}
}

func TestRecommendations_HighSeverityFactor(t *testing.T) {
	a := NewRiskScorer().Score([]RiskFactor{
		factor(FactorSleep, 0.9),
		factor(FactorMood, 0.2),
	})
	if len(a.Recommendations) == 0 {
		t.Fatal("recommendations empty")
	}
	var hasSleep bool
	for _, r := range a.Recommendations {
		if r == "睡眠状况较差, 建议调整作息并减少睡前屏幕时间" {
			hasSleep = true
		}
	}
	if !hasSleep {
		t.Fatalf("recommendations = %v, want sleep advice", a.Recommendations)
	}
}
