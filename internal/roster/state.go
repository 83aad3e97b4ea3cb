// Package roster holds the view-local roster state and the rendering rule
// that maps it to one of three mutually exclusive views.
package roster

import "studentroster/internal/student"

// Phase is the observable projection of a State.
type Phase int

const (
	// Disconnected: no response stored. Also covers "still pending" and
	// "fetch failed"; the three are not distinguished.
	Disconnected Phase = iota
	// Empty: a response was stored and it holds no students.
	Empty
	// Populated: a response was stored with at least one student.
	Populated
)

func (p Phase) String() string {
	switch p {
	case Empty:
		return "empty"
	case Populated:
		return "populated"
	default:
		return "disconnected"
	}
}

// State is an optional collection of students. It starts absent and may be
// set once; later sets are ignored.
type State struct {
	students []student.Student
	present  bool
}

// Set stores the fetched roster. It reports false, leaving the state
// unchanged, if a roster was already stored.
func (s *State) Set(students []student.Student) bool {
	if s.present {
		return false
	}
	if students == nil {
		students = []student.Student{}
	}
	s.students = students
	s.present = true
	return true
}

// Connected reports whether a response has been stored.
func (s State) Connected() bool { return s.present }

// Empty reports whether a response was stored and it holds no students.
func (s State) Empty() bool { return s.present && len(s.students) == 0 }

// Students returns the stored roster in server order, or nil when absent.
func (s State) Students() []student.Student { return s.students }

// Phase projects the state onto the three rendered views.
func (s State) Phase() Phase {
	switch {
	case !s.Connected():
		return Disconnected
	case s.Empty():
		return Empty
	default:
		return Populated
	}
}
