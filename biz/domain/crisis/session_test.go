package crisis

import (
	"errors"
	"testing"

	"github.com/xh-polaris/psych-crisis/biz/infrastructure/consts"
)

// fakeHistory 确定性的因子历史实现
type fakeHistory struct {
	data map[string]FactorHistory
}

func (f *fakeHistory) Load(userId string) (FactorHistory, error) {
	return f.data[userId], nil
}

func newTestEngine() *Engine {
	return NewEngine(NewMemoryStore(), NewRiskScorer(), NewScriptGenerator(&seqGen{}), nil)
}

func TestCreateSession(t *testing.T) {
	e := newTestEngine()
	s, err := e.CreateSession("u1", "I feel hopeless and want to end it all")
	if err != nil {
		t.Fatal(err)
	}
	if s.Status != StatusActive {
		t.Fatalf("status = %s, want active", s.Status)
	}
	if s.CurrentAssessment != s.InitialAssessment {
		t.Fatal("currentAssessment != initialAssessment")
	}
	if s.InitialAssessment.Level != RiskCritical {
		t.Fatalf("level = %s, want CRITICAL", s.InitialAssessment.Level)
	}
	if s.Script.CrisisLevel != RiskCritical {
		t.Fatalf("script level = %s, want CRITICAL", s.Script.CrisisLevel)
	}
	if s.Escalated {
		t.Fatal("escalated on creation")
	}
}

func TestCreateSession_Invalid(t *testing.T) {
	e := newTestEngine()
	if _, err := e.CreateSession("", "hello"); !errors.Is(err, consts.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
	if _, err := e.CreateSession("u1", ""); !errors.Is(err, consts.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestExecuteStep(t *testing.T) {
	e := newTestEngine()
	s, _ := e.CreateSession("u1", "I feel hopeless and want to end it all")
	total := len(s.Script.Steps)

	result, err := e.ExecuteStep(s.Id, 0, "I'm at home and feel a bit safer")
	if err != nil {
		t.Fatal(err)
	}
	if result.IsCompleted {
		t.Fatal("first step marked completed")
	}
	want := 100.0 / float64(total)
	if result.Progress != want {
		t.Fatalf("progress = %v, want %v", result.Progress, want)
	}
	if result.NewAssessment == nil {
		t.Fatal("newAssessment nil for non-empty response")
	}
	// 执行步骤本身不改写会话当前评估
	if s.CurrentAssessment.Level != RiskCritical {
		t.Fatalf("currentAssessment mutated to %s", s.CurrentAssessment.Level)
	}
	if s.Status != StatusActive {
		t.Fatalf("status = %s, want active", s.Status)
	}
	if len(s.CompletedSteps) != 1 {
		t.Fatalf("completedSteps = %d, want 1", len(s.CompletedSteps))
	}
}

func TestExecuteStep_FinalIndex(t *testing.T) {
	e := newTestEngine()
	s, _ := e.CreateSession("u1", "I feel hopeless and want to end it all")
	last := len(s.Script.Steps) - 1

	result, err := e.ExecuteStep(s.Id, last, "")
	if err != nil {
		t.Fatal(err)
	}
	if !result.IsCompleted {
		t.Fatal("isCompleted = false on final index")
	}
	if result.Progress != 100 {
		t.Fatalf("progress = %v, want 100", result.Progress)
	}
	if result.NewAssessment != nil {
		t.Fatal("newAssessment set for empty response")
	}
}

func TestExecuteStep_OutOfRange(t *testing.T) {
	e := newTestEngine()
	s, _ := e.CreateSession("u1", "I feel hopeless and want to end it all")

	for _, idx := range []int{-1, len(s.Script.Steps)} {
		_, err := e.ExecuteStep(s.Id, idx, "x")
		if !errors.Is(err, consts.ErrStepOutOfRange) {
			t.Fatalf("err = %v, want ErrStepOutOfRange", err)
		}
	}
	if len(s.CompletedSteps) != 0 {
		t.Fatalf("completedSteps = %d, want unchanged 0", len(s.CompletedSteps))
	}
}

func TestExecuteStep_NotFound(t *testing.T) {
	e := newTestEngine()
	if _, err := e.ExecuteStep("missing", 0, ""); !errors.Is(err, consts.ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestAdaptSession_Escalates(t *testing.T) {
	e := newTestEngine()
	s, _ := e.CreateSession("u1", "I'm stressed about work")
	if s.Script.CrisisLevel != RiskMedium {
		t.Fatalf("initial level = %s, want MEDIUM", s.Script.CrisisLevel)
	}
	oldScript := s.Script

	s2, err := e.AdaptSession(s.Id, "I want to end it all")
	if err != nil {
		t.Fatal(err)
	}
	if s2.Script.CrisisLevel != RiskCritical {
		t.Fatalf("script level = %s, want CRITICAL", s2.Script.CrisisLevel)
	}
	if s2.Script == oldScript {
		t.Fatal("script not replaced on escalation")
	}
	if !s2.Escalated {
		t.Fatal("escalated flag not set")
	}
	if s2.Status != StatusActive {
		t.Fatalf("status = %s, want active", s2.Status)
	}
	if s2.CurrentAssessment.Level != RiskCritical {
		t.Fatalf("currentAssessment = %s, want CRITICAL", s2.CurrentAssessment.Level)
	}
}

func TestAdaptSession_SameLevelUnchanged(t *testing.T) {
	e := newTestEngine()
	s, _ := e.CreateSession("u1", "I'm stressed about work")
	oldScript := s.Script

	s2, err := e.AdaptSession(s.Id, "still stressed about work")
	if err != nil {
		t.Fatal(err)
	}
	if s2.Script != oldScript {
		t.Fatal("script replaced without level change")
	}
}

// 空响应不构成新证据, 不允许降低严重度
func TestAdaptSession_EmptyResponse(t *testing.T) {
	e := newTestEngine()
	s, _ := e.CreateSession("u1", "I feel hopeless and want to end it all")

	s2, err := e.AdaptSession(s.Id, "")
	if err != nil {
		t.Fatal(err)
	}
	if s2.Script.CrisisLevel != RiskCritical {
		t.Fatalf("level dropped to %s without evidence", s2.Script.CrisisLevel)
	}
}

func TestAdaptSession_DeEscalates(t *testing.T) {
	e := newTestEngine()
	s, _ := e.CreateSession("u1", "I feel hopeless and want to end it all")

	s2, err := e.AdaptSession(s.Id, "talking helped, I feel calm and hopeful now")
	if err != nil {
		t.Fatal(err)
	}
	if s2.Script.CrisisLevel.Rank() >= RiskCritical.Rank() {
		t.Fatalf("script level = %s, want lower than CRITICAL", s2.Script.CrisisLevel)
	}
	if s2.Escalated {
		t.Fatal("escalated flag set on de-escalation")
	}
}

func TestCompleteSession(t *testing.T) {
	e := newTestEngine()
	s, _ := e.CreateSession("u1", "I'm stressed about work")
	final := e.Assess("I feel calm and hopeful now", "u1")

	s2, err := e.CompleteSession(s.Id, final)
	if err != nil {
		t.Fatal(err)
	}
	if s2.Status != StatusCompleted {
		t.Fatalf("status = %s, want completed", s2.Status)
	}
	if s2.CompletedAt == nil {
		t.Fatal("completedAt nil")
	}
	if s2.CurrentAssessment != final {
		t.Fatal("currentAssessment != final assessment")
	}

	// 终态之后的操作都应失败
	if _, err = e.ExecuteStep(s.Id, 0, "x"); !errors.Is(err, consts.ErrSessionFinished) {
		t.Fatalf("executeStep err = %v, want ErrSessionFinished", err)
	}
	if _, err = e.AdaptSession(s.Id, "x"); !errors.Is(err, consts.ErrSessionFinished) {
		t.Fatalf("adaptSession err = %v, want ErrSessionFinished", err)
	}
	if _, err = e.CompleteSession(s.Id, final); !errors.Is(err, consts.ErrSessionFinished) {
		t.Fatalf("completeSession err = %v, want ErrSessionFinished", err)
	}
}

func TestCancelSession(t *testing.T) {
	e := newTestEngine()
	s, _ := e.CreateSession("u1", "I'm stressed about work")

	s2, err := e.CancelSession(s.Id)
	if err != nil {
		t.Fatal(err)
	}
	if s2.Status != StatusCancelled {
		t.Fatalf("status = %s, want cancelled", s2.Status)
	}
	if _, err = e.CancelSession(s.Id); !errors.Is(err, consts.ErrSessionFinished) {
		t.Fatalf("err = %v, want ErrSessionFinished", err)
	}
}

func TestEngine_WithHistoryProvider(t *testing.T) {
	provider := &fakeHistory{data: map[string]FactorHistory{
		"u1": {FactorSleep: {0.9, 0.9, 0.9}},
	}}
	e := NewEngine(NewMemoryStore(), NewRiskScorer(), NewScriptGenerator(&seqGen{}), provider)

	a := e.Assess("I feel sad today", "u1")
	if len(a.RiskFactors) != len(factorCategories) {
		t.Fatalf("factors = %d, want %d", len(a.RiskFactors), len(factorCategories))
	}
}
