package pipeline

// DefaultRollingWindow is the trailing-window length of the form features.
const DefaultRollingWindow = 3

// ApplyRollingForm fills in the four recent-form columns: for each game,
// the mean of that team's scored and allowed points over its previous
// up-to-`window` games, in the order the rows arrive. The shift happens
// before the window, so a row never sees its own outcome; this is the
// anti-leakage guarantee the whole predictive pipeline depends on. A
// team's first appearance has no history and gets 0.
//
// The pass runs twice over the same rows: once grouped by home id (home
// scored / away allowed) and once grouped by away id.
func ApplyRollingForm(features []GameFeatures, window int) {
	if window <= 0 {
		window = DefaultRollingWindow
	}

	type history struct {
		scored  []float64
		allowed []float64
	}

	trailingMean := func(vals []float64) float64 {
		start := len(vals) - window
		if start < 0 {
			start = 0
		}
		tail := vals[start:]
		if len(tail) == 0 {
			return 0
		}
		sum := 0.0
		for _, v := range tail {
			sum += v
		}
		return sum / float64(len(tail))
	}

	homeHist := make(map[int64]*history)
	awayHist := make(map[int64]*history)

	for i := range features {
		f := &features[i]

		h, ok := homeHist[f.HomeID]
		if !ok {
			h = &history{}
			homeHist[f.HomeID] = h
		}
		// Compute from prior rows only, then append the current outcome.
		f.HomeRecentScored = trailingMean(h.scored)
		f.HomeRecentAllowed = trailingMean(h.allowed)
		h.scored = append(h.scored, f.HomePoints)
		h.allowed = append(h.allowed, f.AwayPoints)

		a, ok := awayHist[f.AwayID]
		if !ok {
			a = &history{}
			awayHist[f.AwayID] = a
		}
		f.AwayRecentScored = trailingMean(a.scored)
		f.AwayRecentAllowed = trailingMean(a.allowed)
		a.scored = append(a.scored, f.AwayPoints)
		a.allowed = append(a.allowed, f.HomePoints)
	}
}
