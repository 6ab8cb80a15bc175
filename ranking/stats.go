package ranking

import "github.com/devskill-org/daylight/daylight"

// Stats summarises a run. Error results are counted but excluded from the
// daylight figures.
type Stats struct {
	Total      int
	Successful int
	PolarDay   int
	PolarNight int
	Errors     int

	Longest    *Entry
	Shortest   *Entry
	Average    float64
	Difference float64

	// FullDay and NoDay count results at exactly 24h and 0h.
	FullDay int
	NoDay   int
}

// Summarize computes Stats over entries.
func Summarize(entries []Entry) Stats {
	s := Stats{Total: len(entries)}
	var sum float64
	var counted int

	for i := range entries {
		e := &entries[i]
		switch {
		case e.Result.Status.IsError():
			s.Errors++
			continue
		case e.Result.Status == daylight.StatusPolarDay:
			s.PolarDay++
		case e.Result.Status == daylight.StatusPolarNight:
			s.PolarNight++
		default:
			s.Successful++
		}

		h := e.Result.DaylightHours
		switch h {
		case 24:
			s.FullDay++
		case 0:
			s.NoDay++
		}

		sum += h
		counted++
		if s.Longest == nil || compare(*e, *s.Longest) < 0 {
			s.Longest = e
		}
		if s.Shortest == nil || h < s.Shortest.Result.DaylightHours {
			s.Shortest = e
		}
	}

	if counted > 0 {
		s.Average = sum / float64(counted)
		s.Difference = s.Longest.Result.DaylightHours - s.Shortest.Result.DaylightHours
	}
	return s
}

// PolarDays returns the entries with status polar_day, in input order.
func PolarDays(entries []Entry) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.Result.Status == daylight.StatusPolarDay {
			out = append(out, e)
		}
	}
	return out
}
