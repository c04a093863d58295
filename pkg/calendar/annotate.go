package calendar

import "tableflip.dev/diary/pkg/datekey"

// State is the single visual state a renderer should give a cell.
type State int

const (
	StateBlank State = iota
	StatePlain
	StateEntry
	StateToday
	StateSelected
)

func (s State) String() string {
	switch s {
	case StateBlank:
		return "blank"
	case StatePlain:
		return "plain"
	case StateEntry:
		return "entry"
	case StateToday:
		return "today"
	case StateSelected:
		return "selected"
	}
	return "unknown"
}

// Day is a grid cell with everything a renderer needs to style it.
type Day struct {
	Cell
	Date       datekey.Key
	HasEntry   bool
	IsToday    bool
	IsSelected bool
}

// State resolves the cell's flags. Selected wins over today, today over having
// an entry.
func (d Day) State() State {
	switch {
	case d.Blank():
		return StateBlank
	case d.IsSelected:
		return StateSelected
	case d.IsToday:
		return StateToday
	case d.HasEntry:
		return StateEntry
	default:
		return StatePlain
	}
}

// Annotate marks every cell of g against the selected date, today, and the
// dates that have entries.
func Annotate(g MonthGrid, selected, today datekey.Key, saved []datekey.Key) [GridSize]Day {
	has := make(map[datekey.Key]bool, len(saved))
	for _, d := range saved {
		has[d] = true
	}
	var out [GridSize]Day
	for i, c := range g.Cells {
		out[i] = Day{Cell: c}
		if c.Blank() {
			continue
		}
		date := datekey.New(g.Year, g.Month, c.Day)
		out[i].Date = date
		out[i].HasEntry = has[date]
		out[i].IsToday = date == today
		out[i].IsSelected = date == selected
	}
	return out
}
