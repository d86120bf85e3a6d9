package derive

import (
	"time"

	"github.com/dalemusser/stratamember/internal/app/system/normalize"
)

// Person is the identity of one active member profile.
type Person struct {
	FullName  string
	BirthDate time.Time // zero when unknown
}

// Duplicates summarizes likely duplicate profiles.
type Duplicates struct {
	Groups int      // identities shared by more than one profile
	Count  int      // profiles beyond the first in each group
	Rate   *float64 // Count as a percentage of the named profiles
}

// DetectDuplicates groups profiles by normalized full name plus date of
// birth. Matching is approximate: two different people with a common name
// and the same birthday are counted as one identity.
func DetectDuplicates(people []Person) Duplicates {
	sizes := make(map[string]int)
	keyed := 0
	for _, p := range people {
		name := normalize.PersonKey(p.FullName)
		if name == "" {
			continue
		}
		keyed++
		dob := ""
		if !p.BirthDate.IsZero() {
			dob = p.BirthDate.UTC().Format("2006-01-02")
		}
		sizes[name+"|"+dob]++
	}

	var res Duplicates
	total := 0
	for _, n := range sizes {
		if n > 1 {
			res.Groups++
			total += n
		}
	}
	res.Count = total - res.Groups
	if res.Count < 0 {
		res.Count = 0
	}
	res.Rate = Percent(float64(res.Count), float64(keyed))
	return res
}
