package reco

import (
	"fmt"
	"math"

	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot/vg"
)

// EfficiencyBin is one true-momentum bin of the acceptance curve.
type EfficiencyBin struct {
	Low           float64
	High          float64
	Total         float64
	Reconstructed float64
	Efficiency    float64
	// Binomial uncertainty on Efficiency
	Error float64
	// Mean |reco - true| / true of the reconstructed events of the bin
	Resolution float64
}

// AcceptanceSummary bins selected events by true momentum. Events without
// truth are left out.
type AcceptanceSummary struct {
	total            *hbook.H1D
	reconstructed    *hbook.H1D
	resolutionSum    *hbook.H1D
	resolutionCount  *hbook.H1D
	anomalyThreshold float64
	skipped          int
}

func NewAcceptanceSummary(pMin, pMax, binWidth, anomalyThreshold float64) (*AcceptanceSummary, error) {
	if binWidth <= 0 || pMax <= pMin {
		return nil, fmt.Errorf("invalid momentum binning [%g, %g) step %g", pMin, pMax, binWidth)
	}
	nBins := int(math.Round((pMax - pMin) / binWidth))
	return &AcceptanceSummary{
		total:            hbook.NewH1D(nBins, pMin, pMax),
		reconstructed:    hbook.NewH1D(nBins, pMin, pMax),
		resolutionSum:    hbook.NewH1D(nBins, pMin, pMax),
		resolutionCount:  hbook.NewH1D(nBins, pMin, pMax),
		anomalyThreshold: anomalyThreshold,
	}, nil
}

func (s *AcceptanceSummary) Fill(record ReconstructedEvent) {
	if !record.HasTruth || record.TrueMomentum <= 0 {
		s.skipped++
		return
	}
	s.total.Fill(record.TrueMomentum, 1)
	if !record.Reconstructable {
		return
	}
	s.reconstructed.Fill(record.TrueMomentum, 1)

	res := math.Abs(record.RecoMomentum-record.TrueMomentum) / record.TrueMomentum
	if s.anomalyThreshold > 0 && res > s.anomalyThreshold {
		return
	}
	s.resolutionSum.Fill(record.TrueMomentum, res)
	s.resolutionCount.Fill(record.TrueMomentum, 1)
}

func (s *AcceptanceSummary) FillAll(agg *Aggregator) {
	for _, record := range agg.Records() {
		s.Fill(record)
	}
}

// Skipped is the number of records without usable truth.
func (s *AcceptanceSummary) Skipped() int {
	return s.skipped
}

func (s *AcceptanceSummary) Bins() []EfficiencyBin {
	totalBins := s.total.Binning.Bins
	bins := make([]EfficiencyBin, len(totalBins))
	for i := range totalBins {
		total := totalBins[i].SumW()
		reco := s.reconstructed.Binning.Bins[i].SumW()
		bin := EfficiencyBin{
			Low:           totalBins[i].Range.Min,
			High:          totalBins[i].Range.Max,
			Total:         total,
			Reconstructed: reco,
		}
		if total > 0 {
			bin.Efficiency = reco / total
			bin.Error = math.Sqrt(bin.Efficiency * (1 - bin.Efficiency) / total)
		}
		if count := s.resolutionCount.Binning.Bins[i].SumW(); count > 0 {
			bin.Resolution = s.resolutionSum.Binning.Bins[i].SumW() / count
		}
		bins[i] = bin
	}
	return bins
}

// SavePlot draws the efficiency curve with binomial error bars.
func (s *AcceptanceSummary) SavePlot(filename string, title string) error {
	bins := s.Bins()
	points := make([]hbook.Point2D, 0, len(bins))
	for _, bin := range bins {
		if bin.Total == 0 {
			continue
		}
		half := 0.5 * (bin.High - bin.Low)
		points = append(points, hbook.Point2D{
			X:    bin.Low + half,
			Y:    bin.Efficiency,
			ErrX: hbook.Range{Min: half, Max: half},
			ErrY: hbook.Range{Min: bin.Error, Max: bin.Error},
		})
	}

	p := hplot.New()
	p.Title.Text = title
	p.X.Label.Text = "True momentum [GeV/c]"
	p.Y.Label.Text = "Reconstruction efficiency"
	p.Y.Min = 0
	p.Y.Max = 1.05

	if len(points) > 0 {
		curve := hplot.NewS2D(hbook.NewS2D(points...), hplot.WithXErrBars(true), hplot.WithYErrBars(true))
		p.Add(curve)
	}
	p.Add(hplot.NewGrid())

	if err := p.Save(6*vg.Inch, 4*vg.Inch, filename); err != nil {
		return fmt.Errorf("error saving acceptance plot %s: %w", filename, err)
	}
	return nil
}
