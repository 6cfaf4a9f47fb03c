package crisis

import (
	"fmt"
	"testing"
)

// seqGen 测试用的确定性id生成器
type seqGen struct{ n int }

func (g *seqGen) NewId() string {
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

func TestGenerate_OrdersContiguous(t *testing.T) {
	g := NewScriptGenerator(&seqGen{})
	for _, level := range []RiskLevel{RiskNone, RiskLow, RiskMedium, RiskHigh, RiskCritical} {
		script := g.Generate("u1", level)
		for i, step := range script.Steps {
			if step.Order != i+1 {
				t.Fatalf("%s: step[%d].Order = %d, want %d", level, i, step.Order, i+1)
			}
		}
	}
}

func TestGenerate_NoneEmpty(t *testing.T) {
	script := NewScriptGenerator(&seqGen{}).Generate("u1", RiskNone)
	if len(script.Steps) != 0 {
		t.Fatalf("steps = %d, want 0", len(script.Steps))
	}
	if script.EstimatedMinutes != 0 {
		t.Fatalf("duration = %d, want 0", script.EstimatedMinutes)
	}
}

func TestGenerate_CriticalCatalog(t *testing.T) {
	script := NewScriptGenerator(&seqGen{}).Generate("u1", RiskCritical)
	want := []StepType{StepImmediateSafety, StepCrisisHotline, StepSafetyPlanning, StepGrounding}
	if len(script.Steps) != len(want) {
		t.Fatalf("steps = %d, want %d", len(script.Steps), len(want))
	}
	for i, typ := range want {
		if script.Steps[i].Type != typ {
			t.Fatalf("step[%d].Type = %s, want %s", i, script.Steps[i].Type, typ)
		}
	}
	if script.EstimatedMinutes != 60 {
		t.Fatalf("duration = %d, want 60", script.EstimatedMinutes)
	}
}

func TestGenerate_Durations(t *testing.T) {
	g := NewScriptGenerator(&seqGen{})
	cases := map[RiskLevel]int{
		RiskCritical: 60,
		RiskHigh:     45,
		RiskMedium:   30,
		RiskLow:      15,
		RiskNone:     0,
	}
	for level, want := range cases {
		if got := g.Generate("u1", level).EstimatedMinutes; got != want {
			t.Fatalf("%s: duration = %d, want %d", level, got, want)
		}
	}
}

// 重新生成不得复用旧脚本的步骤实例
func TestGenerate_FreshInstances(t *testing.T) {
	g := NewScriptGenerator(&seqGen{})
	s1 := g.Generate("u1", RiskHigh)
	s2 := g.Generate("u1", RiskHigh)
	if s1.Id == s2.Id {
		t.Fatal("script ids equal, want fresh id")
	}
	for i := range s1.Steps {
		if s1.Steps[i] == s2.Steps[i] {
			t.Fatalf("step[%d] instance reused", i)
		}
	}
}
