package hebcal

import (
	"strings"
	"time"

	hcal "github.com/hebcal/hebcal-go/hebcal"
	"github.com/hebcal/hebcal-go/hdate"
)

// DateInfo describes a Gregorian date on the Hebrew calendar
type DateInfo struct {
	// HebrewDate is the rendered Hebrew date, e.g. "25 Elul 5786"
	HebrewDate string
	// Details holds the Torah portion or holiday names of the date,
	// e.g. "Parashat Bereshit" or "Rosh Hashana 5787"
	Details string
}

// Calendar resolves Gregorian dates to Hebrew calendar information
type Calendar struct {
	// InIsrael selects the Israel reading and holiday schedule
	InIsrael bool
}

// NewCalendar creates a calendar using the Diaspora schedule
func NewCalendar() *Calendar {
	return &Calendar{}
}

// Describe returns the Hebrew date and any Torah portion or holidays
// falling on the given Gregorian date
func (c *Calendar) Describe(date time.Time) (DateInfo, error) {
	hd := hdate.FromGregorian(date.Year(), date.Month(), date.Day())

	info := DateInfo{HebrewDate: hd.String()}

	events, err := hcal.HebrewCalendar(&hcal.CalOptions{
		Start:  hd,
		End:    hd,
		Sedrot: true,
		IL:     c.InIsrael,
	})
	if err != nil {
		return info, err
	}

	names := make([]string, 0, len(events))
	for _, ev := range events {
		names = append(names, ev.Render("en"))
	}
	info.Details = strings.Join(names, ", ")

	return info, nil
}
