package reco

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const layoutCatalogYAML = `
layouts:
  - name: prototype
    ranges:
      - {role: tracker, min: 1, max: 20}
      - {role: vertex-timing, min: 21, max: 22}
      - {role: time-of-flight, min: 30, max: 31}
  - name: overlapping
    ranges:
      - {role: tracker, min: 1, max: 20}
      - {role: vertex-timing, min: 15, max: 22}
`

func writeCatalog(t *testing.T) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "layouts.yaml")
	require.NoError(t, os.WriteFile(filename, []byte(layoutCatalogYAML), 0o644))
	return filename
}

func TestLoadLayoutFromFile(t *testing.T) {
	filename := writeCatalog(t)

	classifier, err := LoadLayoutFromFile(filename, "prototype")
	require.NoError(t, err)
	assert.Equal(t, "prototype", classifier.Name())
	assert.Equal(t, Tracker, classifier.Classify(20))
	assert.Equal(t, VertexTiming, classifier.Classify(21))
	assert.Equal(t, Unclassified, classifier.Classify(25))
	assert.Equal(t, TimeOfFlight, classifier.Classify(31))

	_, err = LoadLayoutFromFile(filename, "overlapping")
	var overlap *ErrLayoutOverlap
	assert.ErrorAs(t, err, &overlap)

	_, err = LoadLayoutFromFile(filename, "missing")
	assert.Error(t, err)
}

func TestLoadLayoutFromMissingFile(t *testing.T) {
	_, err := LoadLayoutFromFile(filepath.Join(t.TempDir(), "nope.yaml"), "prototype")
	var openErr *ErrOpenFile
	assert.ErrorAs(t, err, &openErr)
}

func TestLoadLayoutSources(t *testing.T) {
	config := DefaultConfiguration()
	classifier, err := LoadLayout(config, nil)
	require.NoError(t, err)
	assert.Equal(t, "segmented", classifier.Name())

	config.Layout = "prototype"
	config.LayoutFile = writeCatalog(t)
	classifier, err = LoadLayout(config, nil)
	require.NoError(t, err)
	assert.Equal(t, "prototype", classifier.Name())

	// Without a connection the database flag falls back to the catalog
	config.UseDB = true
	classifier, err = LoadLayout(config, nil)
	require.NoError(t, err)
	assert.Equal(t, "prototype", classifier.Name())
}

func TestLoadLayoutFromDB(t *testing.T) {
	dbFile := filepath.Join(t.TempDir(), "conditions.sqlite")
	db, err := ConnectToDatabase("sqlite3", "", "", "", dbFile)
	require.NoError(t, err)
	defer db.Close()

	db.MustExec(`CREATE TABLE DetectorLayouts (Layout TEXT, Role TEXT, MinID INTEGER, MaxID INTEGER)`)
	rows := []LayoutRangeEntry{
		{Role: "time-of-flight", MinID: 589, MaxID: 606},
		{Role: "tracker", MinID: 1, MaxID: 488},
		{Role: "vertex-timing", MinID: 489, MaxID: 536},
		{Role: "tracker", MinID: 537, MaxID: 588},
	}
	for _, row := range rows {
		db.MustExec(`INSERT INTO DetectorLayouts (Layout, Role, MinID, MaxID) VALUES (?, ?, ?, ?)`,
			"segmented-db", row.Role, row.MinID, row.MaxID)
	}
	db.MustExec(`INSERT INTO DetectorLayouts (Layout, Role, MinID, MaxID) VALUES (?, ?, ?, ?)`,
		"bad-role", "calorimeter", 1, 2)

	classifier, err := LoadLayoutFromDB(db, "segmented-db")
	require.NoError(t, err)
	assert.Equal(t, segmentedLayout().Ranges(), classifier.Ranges())

	config := DefaultConfiguration()
	config.Layout = "segmented-db"
	config.UseDB = true
	classifier, err = LoadLayout(config, db)
	require.NoError(t, err)
	assert.Equal(t, "segmented-db", classifier.Name())

	_, err = LoadLayoutFromDB(db, "unknown")
	assert.Error(t, err)
	_, err = LoadLayoutFromDB(db, "bad-role")
	assert.Error(t, err)
}

func TestConnectToDatabaseUnknownDriver(t *testing.T) {
	_, err := ConnectToDatabase("oracle", "", "", "", "")
	assert.Error(t, err)
}
