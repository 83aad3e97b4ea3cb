package roster

// Texts shown by every front-end.
const (
	DisconnectedTitle = "Frontend and Backend are not connected!"
	DisconnectedHint  = "Please, review your code and check if the Backend is running properly."
	EmptyTitle        = "You have no students in your database..!"
	EmptyHintPrefix   = "You can add students using"
	AdminLinkText     = "Django Admin"
	PopulatedTitle    = "Students List"
)

// Item is one rendered roster entry, keyed by the student's id.
type Item struct {
	Key  string
	Name string
}

// Content is the front-end neutral rendering of a State. Exactly one of
// Hint, AdminURL or Items is meaningful, depending on Phase.
type Content struct {
	Phase    Phase
	Title    string
	Hint     string
	AdminURL string
	Items    []Item
}

// Render maps state to its view. It is a pure function of its inputs.
func Render(s State, adminURL string) Content {
	switch s.Phase() {
	case Empty:
		return Content{
			Phase:    Empty,
			Title:    EmptyTitle,
			Hint:     EmptyHintPrefix,
			AdminURL: adminURL,
		}
	case Populated:
		students := s.Students()
		items := make([]Item, len(students))
		for i, st := range students {
			items[i] = Item{Key: st.ID.String(), Name: st.Name}
		}
		return Content{
			Phase: Populated,
			Title: PopulatedTitle,
			Items: items,
		}
	default:
		return Content{
			Phase: Disconnected,
			Title: DisconnectedTitle,
			Hint:  DisconnectedHint,
		}
	}
}
