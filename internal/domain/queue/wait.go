package queue

// DefaultServiceDuration is used when an entry's service cannot be resolved.
const DefaultServiceDuration = 15

type WaitEstimate struct {
	Minutes int  `json:"estimatedWaitMinutes"`
	IsNext  bool `json:"isNext"`
}

// EstimatedWait is (position-1) * duration; position <= 1 means "you're next".
func EstimatedWait(position int, durationMin int) WaitEstimate {
	if durationMin <= 0 {
		durationMin = DefaultServiceDuration
	}
	if position <= 1 {
		return WaitEstimate{Minutes: 0, IsNext: true}
	}
	return WaitEstimate{Minutes: (position - 1) * durationMin}
}
