package benchmark

import "gonum.org/v1/gonum/stat"

// Summary aggregates the rows of one run.
type Summary struct {
	Scenarios int
	Feasible  int
	// CapacityExceeded counts scenarios stopped by a search budget. They are
	// not part of Feasible.
	CapacityExceeded int
	TotalElapsed     float64 // seconds
	MeanMsPerNode    float64
	StdMsPerNode     float64
	MeanGenPerExp    float64
	MaxGapPercent    float64
	TotalExpanded    int
	TotalGenerated   int
}

// Summarize computes run-level statistics. Per-node figures only consider
// feasible rows that expanded at least one state.
func Summarize(rows []Row) Summary {
	s := Summary{Scenarios: len(rows)}
	var msPerNode, genPerExp []float64
	for _, r := range rows {
		s.TotalElapsed += r.ElapsedSeconds
		s.TotalExpanded += r.NodesExpanded
		s.TotalGenerated += r.NodesGenerated
		if r.CapacityExceeded() {
			s.CapacityExceeded++
		}
		if !r.Feasible {
			continue
		}
		s.Feasible++
		if r.GapPercent > s.MaxGapPercent {
			s.MaxGapPercent = r.GapPercent
		}
		if r.NodesExpanded > 0 {
			msPerNode = append(msPerNode, r.MsPerNode)
			genPerExp = append(genPerExp, r.GeneratedOverExpanded)
		}
	}
	switch len(msPerNode) {
	case 0:
	case 1:
		s.MeanMsPerNode = msPerNode[0]
		s.MeanGenPerExp = genPerExp[0]
	default:
		s.MeanMsPerNode, s.StdMsPerNode = stat.MeanStdDev(msPerNode, nil)
		s.MeanGenPerExp = stat.Mean(genPerExp, nil)
	}
	return s
}
