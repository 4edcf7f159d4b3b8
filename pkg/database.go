package reco

import (
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	sqlx "github.com/jmoiron/sqlx" //make alias name the package to sqlx
	_ "github.com/mattn/go-sqlite3"
)

// ConnectToDatabase opens the conditions database. For the sqlite3 driver
// dbname is the database file and the other arguments are ignored.
func ConnectToDatabase(driver string, user string, pass string, host string, dbname string) (*sqlx.DB, error) {
	switch driver {
	case "sqlite3":
		return sqlx.Connect("sqlite3", dbname)
	case "mysql", "":
		port := "3306"
		dbURI := fmt.Sprintf("%s:%s@(%s:%s)/%s?parseTime=true", user, pass, host, port, dbname)
		return sqlx.Connect("mysql", dbURI)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

type LayoutRangeEntry struct {
	Role  string `db:"Role"`
	MinID int    `db:"MinID"`
	MaxID int    `db:"MaxID"`
}

// LoadLayoutFromDB reads the element id ranges of a layout from the
// DetectorLayouts table (Layout, Role, MinID, MaxID).
func LoadLayoutFromDB(db *sqlx.DB, layout string) (*DetectorClassifier, error) {
	query := "SELECT Role, MinID, MaxID FROM DetectorLayouts WHERE Layout = ? ORDER BY MinID"
	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Reading layout %s from database", layout)
		logger.Info(message, "database")
	}
	if configuration.Verbosity > 2 {
		message := fmt.Sprintf("Query: %s", query)
		logger.Info(message, "database")
	}

	rows, err := db.Queryx(db.Rebind(query), layout)
	if err != nil {
		errMessage := fmt.Errorf("error querying database: %w", err)
		return nil, errMessage
	}
	defer rows.Close()

	ranges := make([]RoleRange, 0)
	for rows.Next() {
		result := LayoutRangeEntry{}
		err := rows.StructScan(&result)
		if err != nil {
			errMessage := fmt.Errorf("error scanning DB row: %w", err)
			return nil, errMessage
		}
		var role DetectorRole
		if err := role.UnmarshalText([]byte(result.Role)); err != nil {
			return nil, fmt.Errorf("layout %q: %w", layout, err)
		}
		ranges = append(ranges, RoleRange{Role: role, Min: result.MinID, Max: result.MaxID})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading DB rows: %w", err)
	}
	if len(ranges) == 0 {
		return nil, fmt.Errorf("layout %q not found in database", layout)
	}
	return NewDetectorClassifier(layout, ranges)
}
