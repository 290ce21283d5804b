package dashboard

import (
	"github.com/julianstephens/habitdash/internal/constants"
	"github.com/julianstephens/habitdash/internal/models"
)

// Card is one rendered habit with its two actions
type Card struct {
	ID        int64
	Name      string
	Frequency string
	Streak    int
	CanLog    bool // false once the server reports today's check-off
	LogLabel  string
}

// View is a complete habit list render. It is rebuilt from scratch on every
// fetch; nothing carries over from the previous View.
type View struct {
	Cards       []Card
	Empty       bool
	Placeholder string
}

// EmptyView is what a failed or empty fetch renders
func EmptyView() View {
	return View{Empty: true, Placeholder: constants.PlaceholderNoHabits}
}

// Project turns the server's habit list into cards
func Project(habits []models.Habit) View {
	if len(habits) == 0 {
		return EmptyView()
	}

	cards := make([]Card, 0, len(habits))
	for _, h := range habits {
		label := constants.LabelCheckOff
		if h.LoggedToday {
			label = constants.LabelLogged
		}
		cards = append(cards, Card{
			ID:        h.ID,
			Name:      h.Name,
			Frequency: h.Frequency,
			Streak:    h.Streak,
			CanLog:    !h.LoggedToday,
			LogLabel:  label,
		})
	}
	return View{Cards: cards}
}

// Find returns the card with the given id
func (v View) Find(id int64) (Card, bool) {
	for _, c := range v.Cards {
		if c.ID == id {
			return c, true
		}
	}
	return Card{}, false
}
