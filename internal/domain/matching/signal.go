package matching

import (
	"errors"
	"fmt"
	"math"
	"time"
)

type SignalName string

const (
	SignalSkillsAlignment  SignalName = "skills_alignment"
	SignalTemporalFit      SignalName = "temporal_fit"
	SignalSustainability   SignalName = "sustainability"
	SignalGrowthTrajectory SignalName = "growth_trajectory"
	SignalTrustReliability SignalName = "trust_reliability"
	SignalNetworkAffinity  SignalName = "network_affinity"
)

// weightSumTolerance bounds the floating-point slack allowed when checking
// that registry weights sum to exactly 1.0.
const weightSumTolerance = 1e-9

var knownSignalNames = map[SignalName]bool{
	SignalSkillsAlignment:  true,
	SignalTemporalFit:      true,
	SignalSustainability:   true,
	SignalGrowthTrajectory: true,
	SignalTrustReliability: true,
	SignalNetworkAffinity:  true,
}

var ErrInvalidRegistry = errors.New("invalid signal registry")

// SignalResult carries a normalized score plus evidence. Evidence feeds the
// explainability breakdown only; it never influences ranking.
type SignalResult struct {
	Score         float64
	MatchedSkills []string
	MissingSkills []string
}

// Extractor evaluates one signal for a (student, listing) pair. Extractors
// are pure: the evaluation time is passed in so repeated runs over the same
// inputs produce identical scores.
type Extractor func(s StudentProfile, l ProjectListing, at time.Time) SignalResult

type Signal struct {
	Name     SignalName
	Weight   float64
	Evaluate Extractor
}

// Registry is the scoring profile: the fixed set of signals a ranker applies
// and their weights. Construct one per process at startup; a registry that
// fails validation is a configuration defect, never a request-time condition.
type Registry struct {
	signals []Signal
}

func NewRegistry(signals []Signal) (*Registry, error) {
	if len(signals) == 0 {
		return nil, fmt.Errorf("%w: no signals", ErrInvalidRegistry)
	}

	seen := make(map[SignalName]bool, len(signals))
	sum := 0.0
	for _, sig := range signals {
		if !knownSignalNames[sig.Name] {
			return nil, fmt.Errorf("%w: unknown signal %q", ErrInvalidRegistry, sig.Name)
		}
		if seen[sig.Name] {
			return nil, fmt.Errorf("%w: duplicate signal %q", ErrInvalidRegistry, sig.Name)
		}
		seen[sig.Name] = true

		if sig.Weight <= 0 || sig.Weight > 1 {
			return nil, fmt.Errorf("%w: signal %q weight %.4f outside (0,1]", ErrInvalidRegistry, sig.Name, sig.Weight)
		}
		if sig.Evaluate == nil {
			return nil, fmt.Errorf("%w: signal %q has no extractor", ErrInvalidRegistry, sig.Name)
		}
		sum += sig.Weight
	}

	if math.Abs(sum-1.0) > weightSumTolerance {
		return nil, fmt.Errorf("%w: weights sum to %.12f, want 1.0", ErrInvalidRegistry, sum)
	}

	out := make([]Signal, len(signals))
	copy(out, signals)
	return &Registry{signals: out}, nil
}

// Signals returns the registered signals in evaluation order.
func (r *Registry) Signals() []Signal {
	if r == nil {
		return nil
	}
	out := make([]Signal, len(r.signals))
	copy(out, r.signals)
	return out
}

// NewDefaultRegistry builds the full six-signal scoring profile.
func NewDefaultRegistry() (*Registry, error) {
	return NewRegistry([]Signal{
		{Name: SignalSkillsAlignment, Weight: 0.30, Evaluate: SkillsAlignment},
		{Name: SignalTemporalFit, Weight: 0.25, Evaluate: TemporalFit},
		{Name: SignalSustainability, Weight: 0.15, Evaluate: Sustainability},
		{Name: SignalGrowthTrajectory, Weight: 0.10, Evaluate: GrowthTrajectory},
		{Name: SignalTrustReliability, Weight: 0.10, Evaluate: TrustReliability},
		{Name: SignalNetworkAffinity, Weight: 0.10, Evaluate: NetworkAffinity},
	})
}

// NewSkillOverlapRegistry builds the fallback scoring profile: skill overlap
// only, for tenants that have not enabled the full engine.
func NewSkillOverlapRegistry() (*Registry, error) {
	return NewRegistry([]Signal{
		{Name: SignalSkillsAlignment, Weight: 1.0, Evaluate: SkillsAlignment},
	})
}

const (
	ProfileFull         = "full"
	ProfileSkillOverlap = "skills_only"
)

// NewRegistryForProfile resolves a configured profile name to a registry.
func NewRegistryForProfile(profile string) (*Registry, error) {
	switch profile {
	case "", ProfileFull:
		return NewDefaultRegistry()
	case ProfileSkillOverlap:
		return NewSkillOverlapRegistry()
	default:
		return nil, fmt.Errorf("%w: unknown scoring profile %q", ErrInvalidRegistry, profile)
	}
}
