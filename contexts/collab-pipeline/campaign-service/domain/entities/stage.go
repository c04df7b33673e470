package entities

// Pipeline stages. Each stage gates the operations that become legal
// once it is reached.
const (
	StageSourcing   = 1 // sourcing open, nothing else unlocked
	StagePlanning   = 2 // at least one confirmed subject
	StageProduction = 3 // every confirmed subject has an approved plan
	StageSettlement = 4 // every confirmed subject has an approved submission
	StageCompleted  = 5 // settlement completed
)

// StageInputs carries the completion facts ComputeStage derives from.
type StageInputs struct {
	ConfirmedSubjectIDs []string
	ApprovedPlans       map[string]bool // by subject id
	ApprovedSubmissions map[string]bool // by subject id
	SettlementCompleted bool
}

// ComputeStage derives the campaign's current stage from its collections.
// Pure and idempotent: recomputing on unchanged inputs returns the same
// stage, so callers may invoke it opportunistically.
func ComputeStage(in StageInputs) int {
	stage := StageSourcing
	if len(in.ConfirmedSubjectIDs) == 0 {
		return stage
	}
	stage = StagePlanning

	for _, subjectID := range in.ConfirmedSubjectIDs {
		if !in.ApprovedPlans[subjectID] {
			return stage
		}
	}
	stage = StageProduction

	for _, subjectID := range in.ConfirmedSubjectIDs {
		if !in.ApprovedSubmissions[subjectID] {
			return stage
		}
	}
	stage = StageSettlement

	if in.SettlementCompleted {
		stage = StageCompleted
	}
	return stage
}
