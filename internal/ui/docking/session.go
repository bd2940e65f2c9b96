package docking

import "fmt"

// dragSession tracks one logical drag across frames and viewports.
type dragSession struct {
	nextID   uint64
	active   *activeSession
	observed bool
	// releaseFrame is the last frame a release was turned into an action,
	// kept outside activeSession so orphan releases are guarded too.
	releaseFrame uint64
}

type activeSession struct {
	id           uint64
	startedFrame uint64
	lastSource   string
}

func (s *dragSession) beginFrame() {
	s.observed = false
}

// observeActive marks the session alive this frame, starting one when
// idle. Returns a debug line on start.
func (s *dragSession) observeActive(frame uint64, source string) string {
	s.observed = true
	if s.active != nil {
		s.active.lastSource = source
		return ""
	}
	id := max(s.nextID, 1)
	s.nextID = id + 1
	s.active = &activeSession{id: id, startedFrame: frame, lastSource: source}
	return fmt.Sprintf("session START id=%d source=%s", id, source)
}

// takeReleaseAction allows at most one release action per frame.
func (s *dragSession) takeReleaseAction(frame uint64, kind string) (bool, string) {
	if s.releaseFrame == frame {
		if s.active == nil {
			return false, fmt.Sprintf("session RELEASE ignored kind=%s (no active session)", kind)
		}
		return false, fmt.Sprintf("session RELEASE ignored id=%d kind=%s", s.active.id, kind)
	}
	s.releaseFrame = frame
	if s.active == nil {
		return true, fmt.Sprintf("session RELEASE kind=%s (no active session)", kind)
	}
	return true, fmt.Sprintf("session RELEASE id=%d kind=%s source=%s", s.active.id, kind, s.active.lastSource)
}

// endFrame ends a session nobody observed this frame.
func (s *dragSession) endFrame(frame uint64) (bool, string) {
	if s.active == nil || s.observed {
		return false, ""
	}
	ended := s.active
	s.active = nil
	return true, fmt.Sprintf("session END id=%d started_frame=%d end_frame=%d", ended.id, ended.startedFrame, frame)
}

func (s *dragSession) isActive() bool {
	return s.active != nil
}
