package pipeline

// Stage identifies one state in the analysis run.
// Transitions are strictly forward; Failed is terminal and reachable
// from any non-terminal stage, and Reset is the only way back to Idle.
type Stage int

// Pipeline stages in transition order.
const (
	StageIdle Stage = iota
	StageUploading
	StageExtractingText
	StageAnalyzingClauses
	StageCalculatingRisk
	StageComplete
	StageFailed
)

// totalSteps is the number of user-visible steps in a successful run.
const totalSteps = 5

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageUploading:
		return "uploading"
	case StageExtractingText:
		return "extracting_text"
	case StageAnalyzingClauses:
		return "analyzing_clauses"
	case StageCalculatingRisk:
		return "calculating_risk"
	case StageComplete:
		return "complete"
	case StageFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Step returns the 1-based display index for an active or completed
// stage. Idle and Failed carry no step.
func (s Stage) Step() int {
	if s < StageUploading || s > StageComplete {
		return 0
	}
	return int(s)
}

// Percent returns the monotonic progress percentage for the stage.
// There is no fractional progress within a stage.
func (s Stage) Percent() int {
	return s.Step() * 100 / totalSteps
}

// Terminal reports whether the stage ends a run.
func (s Stage) Terminal() bool {
	return s == StageComplete || s == StageFailed
}
