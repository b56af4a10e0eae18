package ladder

// Permutation returns the final column for every start column of l.
// The result is always a permutation of [0, Columns).
func Permutation(l Ladder) ([]int, error) {
	t, err := newTracer(l.Columns, l.Levels, l.Rungs)
	if err != nil {
		return nil, err
	}
	out := make([]int, l.Columns)
	for start := range out {
		out[start] = t.final(start)
	}
	return out, nil
}

// Resolve pairs every top entry with the bottom result it lands on.
// Missing labels resolve to empty strings.
func Resolve(l Ladder) ([]Outcome, error) {
	if err := Validate(l); err != nil {
		return nil, err
	}
	perm, err := Permutation(l)
	if err != nil {
		return nil, err
	}
	outcomes := make([]Outcome, len(perm))
	for start, end := range perm {
		outcomes[start] = Outcome{
			Start:  start,
			End:    end,
			Entry:  label(l.Top, start),
			Result: label(l.Bottom, end),
		}
	}
	return outcomes, nil
}

// Winners returns the outcomes whose result equals winLabel.
func Winners(outcomes []Outcome, winLabel string) []Outcome {
	var out []Outcome
	for _, o := range outcomes {
		if o.Result == winLabel {
			out = append(out, o)
		}
	}
	return out
}

func label(labels []string, i int) string {
	if i < len(labels) {
		return labels[i]
	}
	return ""
}
