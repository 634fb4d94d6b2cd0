package domain

// Stage is the pipeline phase of a deal.
type Stage string

const (
	StageProspect    Stage = "prospect"
	StageQualified   Stage = "qualified"
	StageProposal    Stage = "proposal"
	StageNegotiation Stage = "negotiation"
	StageClosedWon   Stage = "closed_won"
	StageClosedLost  Stage = "closed_lost"
)

// DefaultStageProbability applies to stages outside the pipeline vocabulary.
const DefaultStageProbability = 0.1

// Stages lists the pipeline vocabulary in funnel order.
var Stages = []Stage{
	StageProspect,
	StageQualified,
	StageProposal,
	StageNegotiation,
	StageClosedWon,
	StageClosedLost,
}

// Known reports whether s belongs to the pipeline vocabulary.
func (s Stage) Known() bool {
	switch s {
	case StageProspect, StageQualified, StageProposal, StageNegotiation, StageClosedWon, StageClosedLost:
		return true
	default:
		return false
	}
}

// Closed reports whether the deal reached a final outcome.
func (s Stage) Closed() bool {
	return s == StageClosedWon || s == StageClosedLost
}

// Probability returns the historical close probability of the stage.
func (s Stage) Probability() float64 {
	switch s {
	case StageProspect:
		return 0.05
	case StageQualified:
		return 0.15
	case StageProposal:
		return 0.30
	case StageNegotiation:
		return 0.60
	case StageClosedWon:
		return 1.0
	case StageClosedLost:
		return 0.0
	default:
		return DefaultStageProbability
	}
}

func (s Stage) String() string {
	return string(s)
}
