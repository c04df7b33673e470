package entities

import "testing"

func TestComputeStageProgression(t *testing.T) {
	inputs := StageInputs{
		ApprovedPlans:       map[string]bool{},
		ApprovedSubmissions: map[string]bool{},
	}
	if got := ComputeStage(inputs); got != StageSourcing {
		t.Fatalf("no confirmed subjects: expected stage %d, got %d", StageSourcing, got)
	}

	inputs.ConfirmedSubjectIDs = []string{"subj-1", "subj-2"}
	if got := ComputeStage(inputs); got != StagePlanning {
		t.Fatalf("confirmed subjects only: expected stage %d, got %d", StagePlanning, got)
	}

	inputs.ApprovedPlans["subj-1"] = true
	if got := ComputeStage(inputs); got != StagePlanning {
		t.Fatalf("partial plan approval: expected stage %d, got %d", StagePlanning, got)
	}

	inputs.ApprovedPlans["subj-2"] = true
	if got := ComputeStage(inputs); got != StageProduction {
		t.Fatalf("all plans approved: expected stage %d, got %d", StageProduction, got)
	}

	inputs.ApprovedSubmissions["subj-1"] = true
	inputs.ApprovedSubmissions["subj-2"] = true
	if got := ComputeStage(inputs); got != StageSettlement {
		t.Fatalf("all submissions approved: expected stage %d, got %d", StageSettlement, got)
	}

	inputs.SettlementCompleted = true
	if got := ComputeStage(inputs); got != StageCompleted {
		t.Fatalf("settlement completed: expected stage %d, got %d", StageCompleted, got)
	}
}

func TestComputeStageIgnoresUnconfirmedSubjects(t *testing.T) {
	inputs := StageInputs{
		ConfirmedSubjectIDs: []string{"subj-1"},
		ApprovedPlans:       map[string]bool{"subj-1": true, "subj-ghost": true},
		ApprovedSubmissions: map[string]bool{"subj-1": true},
	}
	if got := ComputeStage(inputs); got != StageSettlement {
		t.Fatalf("expected stage %d, got %d", StageSettlement, got)
	}
}

func TestComputeStageIsIdempotent(t *testing.T) {
	inputs := StageInputs{
		ConfirmedSubjectIDs: []string{"subj-1"},
		ApprovedPlans:       map[string]bool{"subj-1": true},
		ApprovedSubmissions: map[string]bool{},
	}
	first := ComputeStage(inputs)
	second := ComputeStage(inputs)
	if first != second {
		t.Fatalf("expected identical stage on recompute, got %d then %d", first, second)
	}
}
