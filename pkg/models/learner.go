package models

// Learner holds the identity fields captured for display. They never
// influence grading.
type Learner struct {
	Name  string `json:"name"`
	Class string `json:"class"`
	Seat  string `json:"seat"`
}

// IsEmpty reports whether no identity field was filled in
func (l Learner) IsEmpty() bool {
	return l.Name == "" && l.Class == "" && l.Seat == ""
}
