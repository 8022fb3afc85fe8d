package app

// DefaultMaxHighPriority is the number of high priority tasks a session may hold
const DefaultMaxHighPriority = 3

// Session enforces the per-session high priority budget across processed inputs
type Session struct {
	maxHigh int
	high    int
}

// NewSession creates a session; maxHigh <= 0 selects DefaultMaxHighPriority
func NewSession(maxHigh int) *Session {
	if maxHigh <= 0 {
		maxHigh = DefaultMaxHighPriority
	}
	return &Session{maxHigh: maxHigh}
}

// Admit counts a categorized task against the budget. A high priority task
// past the budget is downgraded to medium and Admit reports true.
func (s *Session) Admit(task *TaskCategorization) bool {
	if task.Priority != PriorityHigh {
		return false
	}
	if s.high >= s.maxHigh {
		task.Priority = PriorityMedium
		return true
	}
	s.high++
	return false
}

// HighCount returns how many high priority tasks have been admitted
func (s *Session) HighCount() int {
	return s.high
}
