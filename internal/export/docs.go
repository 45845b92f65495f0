package export

import (
	"time"

	"github.com/thurmanmarka/suntrack"
	"github.com/thurmanmarka/suntrack/internal/reference"
)

const dateLayout = "2006-01-02"

// StatsDoc is the encoded form of suntrack.Stats.
type StatsDoc struct {
	Column string  `json:"column" yaml:"column"`
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
	Avg    float64 `json:"avg" yaml:"avg"`
	Count  int     `json:"count" yaml:"count"`
}

func NewStatsDoc(st suntrack.Stats) StatsDoc {
	return StatsDoc{Column: string(st.Column), Min: st.Min, Max: st.Max, Avg: st.Avg, Count: st.Count}
}

// MarkerDoc is a named instant.
type MarkerDoc struct {
	Name string    `json:"name" yaml:"name"`
	Time time.Time `json:"time" yaml:"time"`
}

// EventsDoc is the encoded form of suntrack.Events, with dates as
// YYYY-MM-DD strings.
type EventsDoc struct {
	SummerSolstice string      `json:"summerSolstice,omitempty" yaml:"summerSolstice,omitempty"`
	WinterSolstice string      `json:"winterSolstice,omitempty" yaml:"winterSolstice,omitempty"`
	Equinoxes      []string    `json:"equinoxes" yaml:"equinoxes"`
	Crossings      []string    `json:"crossings" yaml:"crossings"`
	Reference      []MarkerDoc `json:"reference,omitempty" yaml:"reference,omitempty"`
}

func NewEventsDoc(ev suntrack.Events, markers []reference.Marker) EventsDoc {
	doc := EventsDoc{
		Equinoxes: dates(ev.Equinoxes),
		Crossings: dates(ev.Crossings),
	}
	if ev.SummerSolstice != nil {
		doc.SummerSolstice = ev.SummerSolstice.Format(dateLayout)
	}
	if ev.WinterSolstice != nil {
		doc.WinterSolstice = ev.WinterSolstice.Format(dateLayout)
	}
	for _, m := range markers {
		doc.Reference = append(doc.Reference, MarkerDoc{Name: m.Name, Time: m.Time})
	}
	return doc
}

func dates(ts []time.Time) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.Format(dateLayout)
	}
	return out
}
