package matching

import (
	"errors"
	"math"
	"testing"
)

func TestNewDefaultRegistry_WeightsSumToOne(t *testing.T) {
	reg, err := NewDefaultRegistry()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	signals := reg.Signals()
	if len(signals) != 6 {
		t.Fatalf("expected 6 signals, got %d", len(signals))
	}

	sum := 0.0
	for _, sig := range signals {
		sum += sig.Weight
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Fatalf("expected weights to sum to 1.0 within 1e-9, got %v", sum)
	}
}

func TestNewSkillOverlapRegistry_Valid(t *testing.T) {
	reg, err := NewSkillOverlapRegistry()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	signals := reg.Signals()
	if len(signals) != 1 || signals[0].Name != SignalSkillsAlignment {
		t.Fatalf("expected single skills_alignment signal, got %v", signals)
	}
}

func TestNewRegistry_RejectsBadWeightSum(t *testing.T) {
	_, err := NewRegistry([]Signal{
		{Name: SignalSkillsAlignment, Weight: 0.5, Evaluate: SkillsAlignment},
		{Name: SignalTemporalFit, Weight: 0.4, Evaluate: TemporalFit},
	})
	if !errors.Is(err, ErrInvalidRegistry) {
		t.Fatalf("expected ErrInvalidRegistry, got %v", err)
	}
}

func TestNewRegistry_RejectsUnknownSignal(t *testing.T) {
	_, err := NewRegistry([]Signal{
		{Name: SignalName("astrology"), Weight: 1.0, Evaluate: SkillsAlignment},
	})
	if !errors.Is(err, ErrInvalidRegistry) {
		t.Fatalf("expected ErrInvalidRegistry, got %v", err)
	}
}

func TestNewRegistry_RejectsDuplicateSignal(t *testing.T) {
	_, err := NewRegistry([]Signal{
		{Name: SignalSkillsAlignment, Weight: 0.5, Evaluate: SkillsAlignment},
		{Name: SignalSkillsAlignment, Weight: 0.5, Evaluate: SkillsAlignment},
	})
	if !errors.Is(err, ErrInvalidRegistry) {
		t.Fatalf("expected ErrInvalidRegistry, got %v", err)
	}
}

func TestNewRegistry_RejectsNonPositiveWeight(t *testing.T) {
	_, err := NewRegistry([]Signal{
		{Name: SignalSkillsAlignment, Weight: 0, Evaluate: SkillsAlignment},
		{Name: SignalTemporalFit, Weight: 1.0, Evaluate: TemporalFit},
	})
	if !errors.Is(err, ErrInvalidRegistry) {
		t.Fatalf("expected ErrInvalidRegistry, got %v", err)
	}
}

func TestNewRegistry_RejectsEmpty(t *testing.T) {
	_, err := NewRegistry(nil)
	if !errors.Is(err, ErrInvalidRegistry) {
		t.Fatalf("expected ErrInvalidRegistry, got %v", err)
	}
}

func TestNewRegistryForProfile(t *testing.T) {
	if _, err := NewRegistryForProfile(ProfileFull); err != nil {
		t.Fatalf("full profile: unexpected err: %v", err)
	}
	if _, err := NewRegistryForProfile(""); err != nil {
		t.Fatalf("default profile: unexpected err: %v", err)
	}
	if _, err := NewRegistryForProfile(ProfileSkillOverlap); err != nil {
		t.Fatalf("skills_only profile: unexpected err: %v", err)
	}
	if _, err := NewRegistryForProfile("bogus"); !errors.Is(err, ErrInvalidRegistry) {
		t.Fatalf("expected ErrInvalidRegistry for bogus profile, got %v", err)
	}
}
