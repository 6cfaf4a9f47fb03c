package crisis

import (
	"errors"
	"testing"

	"github.com/xh-polaris/psych-crisis/biz/infrastructure/consts"
)

func TestMonitorProgress_NotFound(t *testing.T) {
	e := newTestEngine()
	if _, err := e.MonitorProgress("missing"); !errors.Is(err, consts.ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestMonitorProgress_InitialCritical(t *testing.T) {
	e := newTestEngine()
	s, _ := e.CreateSession("u1", "I feel hopeless and want to end it all")

	// 初始即最高等级, 分母为零, 按100处理
	p, err := e.MonitorProgress(s.Id)
	if err != nil {
		t.Fatal(err)
	}
	if p.ProgressPercentage != 100 {
		t.Fatalf("progress = %v, want 100", p.ProgressPercentage)
	}
	if p.InitialLevel != RiskCritical || p.CurrentLevel != RiskCritical {
		t.Fatalf("levels = %s/%s, want CRITICAL/CRITICAL", p.InitialLevel, p.CurrentLevel)
	}
	if p.IsStable {
		t.Fatal("isStable true at CRITICAL")
	}
	if p.TotalSteps != len(s.Script.Steps) {
		t.Fatalf("totalSteps = %d, want %d", p.TotalSteps, len(s.Script.Steps))
	}
}

func TestMonitorProgress_Improvement(t *testing.T) {
	e := newTestEngine()
	s, _ := e.CreateSession("u1", "I'm stressed about work")
	if s.InitialAssessment.Level != RiskMedium {
		t.Fatalf("initial level = %s, want MEDIUM", s.InitialAssessment.Level)
	}

	if _, err := e.AdaptSession(s.Id, "talking helped, I feel calm and hopeful now"); err != nil {
		t.Fatal(err)
	}
	p, err := e.MonitorProgress(s.Id)
	if err != nil {
		t.Fatal(err)
	}
	if p.CurrentLevel.Rank() >= RiskMedium.Rank() {
		t.Fatalf("currentLevel = %s, want below MEDIUM", p.CurrentLevel)
	}
	if p.ProgressPercentage != 100 {
		t.Fatalf("progress = %v, want clamped to 100", p.ProgressPercentage)
	}
	if !p.IsStable {
		t.Fatal("isStable false at LOW or below")
	}
}

func TestMonitorProgress_Escalation(t *testing.T) {
	e := newTestEngine()
	s, _ := e.CreateSession("u1", "I'm stressed about work")

	if _, err := e.AdaptSession(s.Id, "I want to end it all"); err != nil {
		t.Fatal(err)
	}
	p, err := e.MonitorProgress(s.Id)
	if err != nil {
		t.Fatal(err)
	}
	// (4-4)/(4-2)*100 = 0
	if p.ProgressPercentage != 0 {
		t.Fatalf("progress = %v, want 0", p.ProgressPercentage)
	}
	if p.IsStable {
		t.Fatal("isStable true at CRITICAL")
	}
}

func TestMonitorProgress_Range(t *testing.T) {
	e := newTestEngine()
	texts := []string{
		"I feel hopeless and want to end it all",
		"I'm stressed about work",
		"I feel calm and hopeful now",
	}
	responses := []string{
		"", "I want to die", "talking helped, I feel calm and hopeful now", "still stressed",
	}
	for _, text := range texts {
		s, err := e.CreateSession("u1", text)
		if err != nil {
			t.Fatal(err)
		}
		for _, resp := range responses {
			if resp != "" {
				if _, err = e.AdaptSession(s.Id, resp); err != nil {
					t.Fatal(err)
				}
			}
			p, err := e.MonitorProgress(s.Id)
			if err != nil {
				t.Fatal(err)
			}
			if p.ProgressPercentage < 0 || p.ProgressPercentage > 100 {
				t.Fatalf("progress %v out of [0,100] for %q/%q", p.ProgressPercentage, text, resp)
			}
			stable := p.CurrentLevel.Rank() <= RiskLow.Rank()
			if p.IsStable != stable {
				t.Fatalf("isStable = %v, want %v at %s", p.IsStable, stable, p.CurrentLevel)
			}
		}
	}
}

func TestMonitorProgress_StepCounting(t *testing.T) {
	e := newTestEngine()
	s, _ := e.CreateSession("u1", "I'm stressed about work")

	if _, err := e.ExecuteStep(s.Id, 0, ""); err != nil {
		t.Fatal(err)
	}
	p, err := e.MonitorProgress(s.Id)
	if err != nil {
		t.Fatal(err)
	}
	if p.StepsCompleted != 1 {
		t.Fatalf("stepsCompleted = %d, want 1", p.StepsCompleted)
	}
	if p.TimeElapsed < 0 {
		t.Fatalf("timeElapsed = %v, want non-negative", p.TimeElapsed)
	}
}
