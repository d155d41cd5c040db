package commander

import "time"

// GenerateCommand requests campaign generation of a configured target.
type GenerateCommand struct {
	Target string `json:"target"`
}

// GenerationFinished is published when generation run is finished.
type GenerationFinished struct {
	RunID        int       `json:"runId"`
	Target       string    `json:"target"`
	Success      bool      `json:"success"`
	Message      string    `json:"message,omitempty"`
	Products     int32     `json:"products"`
	AdGroups     int32     `json:"adGroups"`
	Images       int32     `json:"images"`
	SweptObjects int32     `json:"sweptObjects"`
	OutputPath   string    `json:"outputPath,omitempty"`
	FinishedAt   time.Time `json:"finishedAt"`
}
