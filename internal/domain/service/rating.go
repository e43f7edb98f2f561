package service

// MeanRate is the arithmetic mean of rates, or nil when there are none.
func MeanRate(rates []int) *float64 {
	if len(rates) == 0 {
		return nil
	}

	sum := 0
	for _, r := range rates {
		sum += r
	}
	mean := float64(sum) / float64(len(rates))

	return &mean
}
