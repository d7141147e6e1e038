package deskbreak

import (
	"math"
	"math/rand"
)

// GenerateSegments produces the ordered segment list for one break
// sequence. Selection is weighted-random without duplicates: a shuffled
// bag holds each definition a number of times proportional to its weight,
// and the bag is walked accepting unseen definitions until maxSegments
// cost units are filled (a unilateral definition costs 2, a bilateral 1).
// A unilateral pick always yields its Left/Right pair together or not at
// all, so a candidate that does not fit in the remaining capacity is
// skipped and the walk continues.
func GenerateSegments(catalog *Catalog, maxSegments int, rng *rand.Rand) []ExerciseSegment {
	if catalog == nil || maxSegments <= 0 {
		return nil
	}

	defs := catalog.All()

	// Doubled replication keeps every weight >= 1 definition in the bag at
	// least twice while a down-weighted one still appears once instead of
	// vanishing entirely.
	bag := make([]int, 0, len(defs)*2)
	for i, def := range defs {
		var count float64
		switch {
		case def.Weight > 1:
			count = math.Floor(def.Weight)
		case def.Weight == 1:
			count = 1
		default:
			count = 0.5
		}
		entries := int(math.Round(count * 2))
		for n := 0; n < entries; n++ {
			bag = append(bag, i)
		}
	}

	rng.Shuffle(len(bag), func(a, b int) {
		bag[a], bag[b] = bag[b], bag[a]
	})

	seen := make(map[string]bool, len(defs))
	var segments []ExerciseSegment
	total := 0

	for _, idx := range bag {
		if total >= maxSegments {
			break
		}
		def := defs[idx]
		if seen[def.Name] {
			continue
		}
		cost := 1
		if def.Unilateral {
			cost = 2
		}
		if total+cost > maxSegments {
			continue
		}
		seen[def.Name] = true
		if def.Unilateral {
			segments = append(segments,
				ExerciseSegment{Exercise: def, Side: SideLeft, Status: SegmentUpcoming},
				ExerciseSegment{Exercise: def, Side: SideRight, Status: SegmentUpcoming},
			)
		} else {
			segments = append(segments,
				ExerciseSegment{Exercise: def, Side: SideNone, Status: SegmentUpcoming},
			)
		}
		total += cost
	}

	return segments
}
