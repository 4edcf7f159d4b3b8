package reco

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	hdf5 "github.com/jmbenlloch/go-hdf5"
)

// RunInfo identifies the run that produced an output file.
type RunInfo struct {
	RunID  string
	Layout string
	Seed   uint64
	Input  string
}

// RecordWriter persists the records of one input file.
type RecordWriter interface {
	WriteRunInfo(info RunInfo) error
	WriteRecords(agg *Aggregator) error
	Close() error
}

type Writer struct {
	File            *hdf5.File
	Filename        string
	Mode            OutputMode
	RunGroup        *hdf5.Group
	AcceptanceGroup *hdf5.Group
	VectorsGroup    *hdf5.Group
	RunInfoTable    *hdf5.Dataset
	CountersTable   *hdf5.Dataset
	SummaryTable    *hdf5.Dataset
	AcceptanceTable *hdf5.Dataset
	VectorsTable    *hdf5.Dataset
}

var _ RecordWriter = (*Writer)(nil)

// OutputFilename derives the output name from the input file name.
func OutputFilename(input string, mode OutputMode) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	switch mode {
	case OutputAcceptance:
		return base + "_acceptance.h5"
	case OutputVectors:
		return base + "_vectors.h5"
	default:
		return base + "_reco.h5"
	}
}

func NewWriter(filename string, mode OutputMode) (*Writer, error) {
	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Creating file: %s (%v)", filename, mode)
		logger.Info(message, "writer")
	}

	var err error
	writer := &Writer{Filename: filename, Mode: mode}
	writer.File, err = openFile(filename)
	if err != nil {
		return nil, err
	}
	// Close whatever was created if a later step fails
	fail := func(err error) (*Writer, error) {
		if closeErr := writer.Close(); closeErr != nil {
			return nil, errors.Join(err, closeErr)
		}
		return nil, err
	}

	if writer.RunGroup, err = createGroup(writer.File, "Run"); err != nil {
		return fail(err)
	}
	if writer.RunInfoTable, err = createTable(writer.RunGroup, "runInfo", RunInfoHDF5{}); err != nil {
		return fail(err)
	}
	if writer.CountersTable, err = createTable(writer.RunGroup, "counters", CountersHDF5{}); err != nil {
		return fail(err)
	}

	if mode.writesAcceptance() {
		if writer.AcceptanceGroup, err = createGroup(writer.File, "Acceptance"); err != nil {
			return fail(err)
		}
		if writer.SummaryTable, err = createTable(writer.AcceptanceGroup, "summary", AcceptanceSummaryHDF5{}); err != nil {
			return fail(err)
		}
		if writer.AcceptanceTable, err = createTable(writer.AcceptanceGroup, "events", AcceptanceEventHDF5{}); err != nil {
			return fail(err)
		}
	}
	if mode.writesVectors() {
		if writer.VectorsGroup, err = createGroup(writer.File, "Vectors"); err != nil {
			return fail(err)
		}
		if writer.VectorsTable, err = createTable(writer.VectorsGroup, "events", VectorEventHDF5{}); err != nil {
			return fail(err)
		}
	}
	return writer, nil
}

func (w *Writer) WriteRunInfo(info RunInfo) error {
	entry := RunInfoHDF5{
		run_id: convertToHdf5String(info.RunID),
		layout: convertToHdf5String(info.Layout),
		input:  convertToHdf5Path(info.Input),
		seed:   info.Seed,
	}
	if err := writeEntryToTable(w.RunInfoTable, entry, 0); err != nil {
		return fmt.Errorf("error writing run info: %w", err)
	}
	return nil
}

func (w *Writer) WriteRecords(agg *Aggregator) error {
	counters := countersRow(agg.Counters())
	if err := writeEntryToTable(w.CountersTable, counters, 0); err != nil {
		return fmt.Errorf("error writing counters: %w", err)
	}

	if w.Mode.writesAcceptance() {
		summary := AcceptanceSummaryHDF5{n_events: int32(agg.Total())}
		if err := writeEntryToTable(w.SummaryTable, summary, 0); err != nil {
			return fmt.Errorf("error writing acceptance summary: %w", err)
		}
		rows := acceptanceRows(agg.Records())
		if err := writeArrayToTable(w.AcceptanceTable, &rows, 0); err != nil {
			return fmt.Errorf("error writing acceptance events: %w", err)
		}
	}
	if w.Mode.writesVectors() {
		rows := vectorRows(agg.Records())
		if err := writeArrayToTable(w.VectorsTable, &rows, 0); err != nil {
			return fmt.Errorf("error writing vectors: %w", err)
		}
		if configuration.Verbosity > 0 {
			message := fmt.Sprintf("Saved %d momentum and vertex vectors to %s", len(rows), w.Filename)
			logger.Info(message, "writer")
		}
	}
	return nil
}

func countersRow(c Counters) CountersHDF5 {
	return CountersHDF5{
		n_selected:      int32(c.Selected),
		n_reconstructed: int32(c.Reconstructed),
		n_no_hits:       int32(c.NoHits),
		n_timing_fail:   int32(c.TimingFailures),
		n_non_physical:  int32(c.NonPhysical),
		n_high_momentum: int32(c.HighMomentum),
		n_missing_truth: int32(c.MissingTruth),
		n_errors:        int32(c.Errors),
	}
}

// acceptanceRows has one row per selected event, parallel to the record order.
func acceptanceRows(records []ReconstructedEvent) []AcceptanceEventHDF5 {
	// The array MUST be allocated at creation, if not, HDF5 will panic
	rows := make([]AcceptanceEventHDF5, len(records))
	for i, record := range records {
		flag := int32(0)
		if record.Reconstructable {
			flag = 1
		}
		rows[i] = AcceptanceEventHDF5{
			evt_number: int32(record.EventID),
			true_mom:   record.TrueMomentum,
			reco_flag:  flag,
		}
	}
	return rows
}

// vectorRows keeps reconstructed events with a non-zero truth momentum.
func vectorRows(records []ReconstructedEvent) []VectorEventHDF5 {
	rows := make([]VectorEventHDF5, 0, len(records))
	for _, record := range records {
		if !record.Reconstructable || !record.HasTruth || record.TrueMomentum == 0 {
			continue
		}
		rows = append(rows, VectorEventHDF5{
			evt_number: int32(record.EventID),
			reco_p:     record.RecoMomentum,
			true_p:     record.TrueMomentum,
			reco_vx:    record.RecoVertex.X,
			reco_vy:    record.RecoVertex.Y,
			reco_vz:    record.RecoVertex.Z,
			true_vx:    record.TrueVertex.X,
			true_vy:    record.TrueVertex.Y,
			true_vz:    record.TrueVertex.Z,
		})
	}
	return rows
}

func (w *Writer) Close() error {
	if configuration.Verbosity > 0 {
		logger.Info(fmt.Sprintf("Closing file hdf writer %s", w.Filename), "writer")
	}
	var errs []error

	datasets := []struct {
		name string
		dset *hdf5.Dataset
	}{
		{"run info table", w.RunInfoTable},
		{"counters table", w.CountersTable},
		{"acceptance summary", w.SummaryTable},
		{"acceptance events", w.AcceptanceTable},
		{"vectors", w.VectorsTable},
	}
	for _, d := range datasets {
		if d.dset == nil {
			continue
		}
		if err := d.dset.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing %s: %w", d.name, err))
		}
	}

	groups := []struct {
		name  string
		group *hdf5.Group
	}{
		{"run group", w.RunGroup},
		{"acceptance group", w.AcceptanceGroup},
		{"vectors group", w.VectorsGroup},
	}
	for _, g := range groups {
		if g.group == nil {
			continue
		}
		if err := g.group.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing %s: %w", g.name, err))
		}
	}

	if w.File != nil {
		if err := w.File.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing file: %w", err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
