// Package intent names the skills a turn can be routed to and keeps the short
// history the router looks back on.
package intent

type Label string

const (
	Booking           Label = "booking"
	NameManagement    Label = "name_management"
	QuestionAnswering Label = "question_answering"
	SmallTalk         Label = "small_talk"
	Discovery         Label = "discovery"
	Unknown           Label = "unknown"
)

// Labels are the classifier targets. Unknown is never a target.
var Labels = []Label{Booking, NameManagement, QuestionAnswering, SmallTalk, Discovery}

func ParseLabel(s string) (Label, bool) {
	if Label(s) == Unknown {
		return Unknown, true
	}
	for _, l := range Labels {
		if string(l) == s {
			return l, true
		}
	}
	return "", false
}

// Describe is how the label reads in prompts such as the discovery question.
func (l Label) Describe() string {
	switch l {
	case Booking:
		return "restaurant booking"
	case NameManagement:
		return "name management"
	case QuestionAnswering:
		return "question answering"
	case SmallTalk:
		return "small talk"
	case Discovery:
		return "discovery"
	}
	return string(l)
}

const historySize = 2

// History is a fixed window of the last resolved labels. The zero value is
// empty and ready to use.
type History struct {
	entries [historySize]Label
	n       int
}

// Push records label, evicting the oldest entry once the window is full.
func (h *History) Push(label Label) {
	if h.n < historySize {
		h.entries[h.n] = label
		h.n++
		return
	}
	copy(h.entries[:], h.entries[1:])
	h.entries[historySize-1] = label
}

// Last is the most recently resolved label.
func (h *History) Last() (Label, bool) {
	if h.n == 0 {
		return "", false
	}
	return h.entries[h.n-1], true
}

// Previous is the label resolved before Last.
func (h *History) Previous() (Label, bool) {
	if h.n < 2 {
		return "", false
	}
	return h.entries[h.n-2], true
}

func (h *History) Len() int {
	return h.n
}
