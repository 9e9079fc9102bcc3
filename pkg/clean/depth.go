package clean

// Depth applies the fill-forward rule to sampling depths: a single depth
// value fills both bounds when they are absent, and a lone min or max is
// copied to its counterpart. Bounds are never set independently.
//
// Checks are nil-checks, not zero-checks. A depth of 0.0 is a populated
// surface observation.
func Depth(depth, depthMin, depthMax *float64) (*float64, *float64) {
	if depth != nil {
		if depthMin == nil {
			depthMin = depth
		}
		if depthMax == nil {
			depthMax = depth
		}
	}

	if depthMin != nil && depthMax == nil {
		depthMax = depthMin
	}
	if depthMax != nil && depthMin == nil {
		depthMin = depthMax
	}

	return depthMin, depthMax
}
