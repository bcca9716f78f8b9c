package evm

// Aggregate sums resolved per-task figures into project-level totals. An
// empty task list yields zero totals with CPI 1 (no cost data means
// on-budget by definition).
func Aggregate(tasks []TaskAnalysis) Summary {
	var s Summary
	for _, t := range tasks {
		s.TotalBAC += t.BAC
		s.TotalEV += t.EV
		s.TotalAC += t.AC
	}

	s.CV = s.TotalEV - s.TotalAC

	s.CPI = 1
	if s.TotalAC > 0 {
		s.CPI = s.TotalEV / s.TotalAC
	}

	cpi := s.CPI
	if cpi <= 0 {
		cpi = 1
	}
	s.EAC = s.TotalAC + (s.TotalBAC-s.TotalEV)/cpi
	s.VAC = s.TotalBAC - s.EAC

	return s
}
