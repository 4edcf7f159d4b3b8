package reco

import (
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"gopkg.in/yaml.v3"
)

type layoutEntry struct {
	Name   string      `yaml:"name"`
	Ranges []RoleRange `yaml:"ranges"`
}

type layoutCatalog struct {
	Layouts []layoutEntry `yaml:"layouts"`
}

// LoadLayoutFromFile reads a YAML catalog of layouts and returns the named one.
//
//	layouts:
//	  - name: segmented
//	    ranges:
//	      - {role: tracker, min: 1, max: 488}
//	      - {role: vertex-timing, min: 489, max: 536}
func LoadLayoutFromFile(filename string, name string) (*DetectorClassifier, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, &ErrOpenFile{Filename: filename, Err: err}
	}
	var catalog layoutCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("error parsing layout catalog %s: %w", filename, err)
	}
	for _, entry := range catalog.Layouts {
		if entry.Name == name {
			return NewDetectorClassifier(entry.Name, entry.Ranges)
		}
	}
	return nil, fmt.Errorf("layout %q not found in %s", name, filename)
}

// LoadLayout picks the layout source from the configuration: conditions
// database, YAML catalog or the built-in table, in that order.
func LoadLayout(config Configuration, db *sqlx.DB) (*DetectorClassifier, error) {
	var classifier *DetectorClassifier
	var err error
	var source string
	switch {
	case config.UseDB && db != nil:
		classifier, err = LoadLayoutFromDB(db, config.Layout)
		source = "database"
	case config.LayoutFile != "":
		classifier, err = LoadLayoutFromFile(config.LayoutFile, config.Layout)
		source = config.LayoutFile
	default:
		classifier, err = BuiltinLayout(config.Layout)
		source = "built-in"
	}
	if err != nil {
		return nil, err
	}
	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Detector layout %s read from %s: %v", classifier.Name(), source, classifier.Ranges())
		logger.Info(message, "layout")
	}
	return classifier, nil
}
