package domain

// ConcentrationScore is the historical completion ratio for one hour of the
// day, produced by the analytics subsystem.
type ConcentrationScore struct {
	Hour  int
	Score float64
}

// TaskDurationLearning is the observed average duration for a task name.
type TaskDurationLearning struct {
	TaskName        string
	AverageDuration float64
	SampleSize      int
	Accuracy        float64
}
