package crisis

import "testing"

func hasIndicator(inds []CrisisIndicator, want CrisisIndicator) bool {
	for _, i := range inds {
		if i == want {
			return true
		}
	}
	return false
}

func TestExtract_Blank(t *testing.T) {
	s, inds := Extract("   ")
	if s.Type != SentimentNeutral {
		t.Fatalf("type = %s, want NEUTRAL", s.Type)
	}
	if len(inds) != 0 {
		t.Fatalf("indicators = %v, want empty", inds)
	}
}

func TestExtract_NoHits(t *testing.T) {
	s, inds := Extract("the meeting is at noon tomorrow")
	if s.Type != SentimentNeutral {
		t.Fatalf("type = %s, want NEUTRAL", s.Type)
	}
	if s.Confidence != 0.5 || s.Intensity < 0.5 {
		t.Fatalf("confidence = %v, intensity = %v", s.Confidence, s.Intensity)
	}
	if len(inds) != 0 {
		t.Fatalf("indicators = %v, want empty", inds)
	}
}

func TestExtract_SuicidalPhrase(t *testing.T) {
	for _, text := range []string{
		"I want to kill myself",
		"I WANT TO KILL MYSELF",
		"sometimes I think I'd be better off dead",
	} {
		s, inds := Extract(text)
		if s.Type != SentimentVeryNegative {
			t.Fatalf("%q: type = %s, want VERY_NEGATIVE", text, s.Type)
		}
		if !hasIndicator(inds, IndicatorSuicidalIdeation) {
			t.Fatalf("%q: indicators = %v, want suicidal_ideation", text, inds)
		}
		if s.Intensity < 0.9 {
			t.Fatalf("%q: intensity = %v, want >= 0.9", text, s.Intensity)
		}
	}
}

func TestExtract_SelfHarm(t *testing.T) {
	_, inds := Extract("I keep thinking about how I could hurt myself")
	if !hasIndicator(inds, IndicatorSelfHarmRisk) {
		t.Fatalf("indicators = %v, want self_harm_risk", inds)
	}
}

func TestExtract_IsolationAndSubstance(t *testing.T) {
	_, inds := Extract("I'm all alone and I've been drinking too much")
	if !hasIndicator(inds, IndicatorIsolation) {
		t.Fatalf("indicators = %v, want isolation", inds)
	}
	if !hasIndicator(inds, IndicatorSubstanceAbuse) {
		t.Fatalf("indicators = %v, want substance_abuse", inds)
	}
}

func TestExtract_Positive(t *testing.T) {
	s, inds := Extract("I had a good day at work")
	if s.Type != SentimentPositive {
		t.Fatalf("type = %s, want POSITIVE", s.Type)
	}
	if len(inds) != 0 {
		t.Fatalf("indicators = %v, want empty", inds)
	}
}

func TestExtract_VeryPositive(t *testing.T) {
	s, _ := Extract("what a wonderful amazing day, I feel happy and grateful and proud")
	if s.Type != SentimentVeryPositive {
		t.Fatalf("type = %s, want VERY_POSITIVE", s.Type)
	}
	if s.Confidence != 0.9 {
		t.Fatalf("confidence = %v, want 0.9", s.Confidence)
	}
}

func TestExtract_NegativeMajority(t *testing.T) {
	s, _ := Extract("I'm sad, anxious, tired and so worried about everything")
	if s.Type != SentimentNegative {
		t.Fatalf("type = %s, want NEGATIVE", s.Type)
	}
	if s.Confidence != 0.75 {
		t.Fatalf("confidence = %v, want 0.75", s.Confidence)
	}
}

func TestExtract_IntensityBounded(t *testing.T) {
	s, _ := Extract("I WANT TO KILL MYSELF!!!!!!!!!!")
	if s.Intensity > 1.0 {
		t.Fatalf("intensity = %v, want <= 1.0", s.Intensity)
	}
	if s.Intensity <= 0.9 {
		t.Fatalf("intensity = %v, want bonus above base", s.Intensity)
	}
}

func TestExtract_SevereDistress(t *testing.T) {
	_, inds := Extract("EVERYTHING IS HOPELESS!!!")
	if !hasIndicator(inds, IndicatorSevereDistress) {
		t.Fatalf("indicators = %v, want severe_distress", inds)
	}
}

func TestExtract_KeywordsCapped(t *testing.T) {
	s, _ := Extract("sad angry anxious worried stressed tired upset frustrated scared")
	if len(s.Keywords) > maxKeywords {
		t.Fatalf("keywords = %d, want <= %d", len(s.Keywords), maxKeywords)
	}
}
