package datetime

import (
	"strconv"
	"time"

	"go_dateparse/tokenize"
	"go_dateparse/units"
)

// compactUnits are the unit letters of the "+1h30m" shorthand.
var compactUnits = map[string]time.Duration{
	"w": 7 * units.Day,
	"d": units.Day,
	"h": time.Hour,
	"m": time.Minute,
	"s": time.Second,
}

// compact reads shorthand offsets like +30m, +2h, +1d or +1h30m. The parts
// must be written without spaces. The anchor's time of day is kept.
func (s *scan) compact(i int) (Match, bool) {
	if s.words[i] != "+" {
		return Match{}, false
	}
	var off units.Offset
	j := i + 1
	for j+1 < len(s.toks) {
		num, unit := s.toks[j], s.toks[j+1]
		if num.Kind != tokenize.Number || unit.Kind != tokenize.Word ||
			num.Start != s.toks[j-1].End || unit.Start != num.End {
			break
		}
		n, err := strconv.Atoi(num.Text)
		if err != nil {
			break
		}
		length, ok := compactUnits[unit.Text]
		if !ok {
			break
		}
		if length >= units.Day {
			off.Days += n * int(length/units.Day)
		} else {
			off.Clock += time.Duration(n) * length
		}
		j += 2
	}
	if j == i+1 {
		return Match{}, false
	}
	return Match{Start: i, End: j, Offset: &off, KeepClock: true}, true
}
