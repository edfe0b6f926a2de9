package portal

import "sync"

// Latch admits one in-flight run per action name. It may be shared by
// controllers that drive the same physical gate.
type Latch struct {
	mu       sync.Mutex
	inFlight map[string]bool
}

func NewLatch() *Latch {
	return &Latch{inFlight: make(map[string]bool)}
}

// Acquire marks action as in flight and disables ctl. ok is false when the
// action is already running; release must be called exactly once otherwise.
func (l *Latch) Acquire(action string, ctl Control) (release func(), ok bool) {
	l.mu.Lock()
	if l.inFlight[action] {
		l.mu.Unlock()
		return nil, false
	}
	l.inFlight[action] = true
	l.mu.Unlock()

	if ctl != nil {
		ctl.SetDisabled(true)
	}
	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.inFlight, action)
			l.mu.Unlock()
			if ctl != nil {
				ctl.SetDisabled(false)
			}
		})
	}, true
}

// InFlight reports whether action is currently running.
func (l *Latch) InFlight(action string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inFlight[action]
}
