package main

import (
	"errors"
	"fmt"

	reco "github.com/viking-exp/klreco/pkg"
)

// processor reconstructs input files one after the other. Metrics and the
// acceptance summary accumulate over every file of the run.
type processor struct {
	config   reco.Configuration
	analysis reco.Analysis
	layout   string
	runID    string
	metrics  *reco.Metrics
	summary  *reco.AcceptanceSummary
}

func newProcessor(config reco.Configuration, classifier *reco.DetectorClassifier, runID string) (*processor, error) {
	summary, err := reco.NewAcceptanceSummary(config.MomentumMin, config.MomentumMax,
		config.BinWidth, config.AnomalyThreshold)
	if err != nil {
		return nil, err
	}
	return &processor{
		config:   config,
		analysis: reco.NewAnalysis(config, classifier),
		layout:   classifier.Name(),
		runID:    runID,
		metrics:  reco.NewMetrics(classifier.Name()),
		summary:  summary,
	}, nil
}

// processFile reconstructs one ROOT file. An empty output name is derived from
// the input name.
func (p *processor) processFile(filename string, output string) error {
	if VerbosityLevel > 0 {
		logger.Info(fmt.Sprintf("Processing file: %s", filename), "main")
	}
	input, err := reco.ReadInput(filename, p.config.Trees, p.config.Branches)
	if err != nil {
		return fmt.Errorf("Error reading input file: %w", err)
	}

	agg := p.analysis.Run(input)
	logger.Info(fmt.Sprintf("%s | %v", filename, agg.Counters()), "main")

	if output == "" {
		output = reco.OutputFilename(filename, p.config.OutputMode)
	}
	if err := p.write(output, filename, agg); err != nil {
		return err
	}

	p.metrics.ObserveAll(agg)
	if p.config.MetricsFile != "" {
		if err := p.metrics.WriteTextfile(p.config.MetricsFile); err != nil {
			return err
		}
	}

	p.summary.FillAll(agg)
	if VerbosityLevel > 1 {
		for _, bin := range p.summary.Bins() {
			if bin.Total == 0 {
				continue
			}
			message := fmt.Sprintf("p [%.1f, %.1f) GeV/c | %4.0f / %4.0f | efficiency %.3f +- %.3f | resolution %.3f",
				bin.Low, bin.High, bin.Reconstructed, bin.Total, bin.Efficiency, bin.Error, bin.Resolution)
			logger.Info(message, "acceptance")
		}
	}
	if p.config.PlotFile != "" {
		title := fmt.Sprintf("K_L acceptance (%s layout)", p.layout)
		if err := p.summary.SavePlot(p.config.PlotFile, title); err != nil {
			return err
		}
	}
	return nil
}

func (p *processor) write(output string, input string, agg *reco.Aggregator) (err error) {
	writer, err := reco.NewWriter(output, p.config.OutputMode)
	if err != nil {
		return fmt.Errorf("Error creating output file: %w", err)
	}
	defer func() {
		if closeErr := writer.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()

	info := reco.RunInfo{
		RunID:  p.runID,
		Layout: p.layout,
		Seed:   p.config.Seed,
		Input:  input,
	}
	if err := writer.WriteRunInfo(info); err != nil {
		return err
	}
	return writer.WriteRecords(agg)
}
