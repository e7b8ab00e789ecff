// Package resultsdb persists the pipeline's inputs and outcomes to a SQLite
// database: the measured training rows, the ideal function library, the four
// selection records, and one row per classified test observation. Each save
// replaces the table's prior contents, so re-running the pipeline against the
// same database is safe.
package resultsdb

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/idealfit/idealfit/funcmatch"
)

type DB struct {
	*sqlx.DB
}

const baseSchema = `
CREATE TABLE IF NOT EXISTS training_data (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	x REAL NOT NULL UNIQUE,
	y1 REAL NOT NULL,
	y2 REAL NOT NULL,
	y3 REAL NOT NULL,
	y4 REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS selections (
	series_no INTEGER PRIMARY KEY,
	series_name TEXT NOT NULL,
	ideal_function_no INTEGER NOT NULL,
	sum_squared_dev REAL NOT NULL,
	max_dev REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS test_data (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	x REAL NOT NULL,
	y REAL NOT NULL,
	delta_y REAL,
	ideal_function_no INTEGER,
	reason TEXT NOT NULL DEFAULT ''
);
`

// Open connects to the SQLite database at path (":memory:" works) and creates
// the fixed-width tables if needed. The ideal_functions table is created
// lazily by SaveIdealFunctions because its width depends on the library size.
func Open(path string) (*DB, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, pfx.Err(err)
	}

	if _, err := db.Exec(baseSchema); err != nil {
		db.Close()
		return nil, pfx.Err(err)
	}

	return &DB{db}, nil
}

// SaveTraining replaces the training_data table with one row per grid point.
func (db *DB) SaveTraining(grid funcmatch.Grid, measured [funcmatch.MeasuredSeriesCount]funcmatch.MeasuredSeries) error {
	tx, err := db.Beginx()
	if err != nil {
		return pfx.Err(err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM training_data`); err != nil {
		return pfx.Err(err)
	}

	stmt, err := tx.Prepare(`INSERT INTO training_data (x, y1, y2, y3, y4) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return pfx.Err(err)
	}
	defer stmt.Close()

	for i, x := range grid {
		if _, err := stmt.Exec(x, measured[0].Y[i], measured[1].Y[i], measured[2].Y[i], measured[3].Y[i]); err != nil {
			return pfx.Err(err)
		}
	}

	return pfx.Err(tx.Commit())
}

// SaveIdealFunctions replaces the ideal_functions table, using the wide
// layout of the source file: one row per grid point with a y column per
// candidate curve.
func (db *DB) SaveIdealFunctions(grid funcmatch.Grid, candidates [][]float64) error {
	cols := make([]string, 0, len(candidates))
	for i := range candidates {
		cols = append(cols, fmt.Sprintf("y%d", i+1))
	}

	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS ideal_functions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	x REAL NOT NULL UNIQUE,
	%s REAL NOT NULL
)`, strings.Join(cols, " REAL NOT NULL,\n\t"))

	tx, err := db.Beginx()
	if err != nil {
		return pfx.Err(err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DROP TABLE IF EXISTS ideal_functions`); err != nil {
		return pfx.Err(err)
	}
	if _, err := tx.Exec(ddl); err != nil {
		return pfx.Err(err)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(candidates)+1), ", ")
	insert := fmt.Sprintf(`INSERT INTO ideal_functions (x, %s) VALUES (%s)`, strings.Join(cols, ", "), placeholders)

	stmt, err := tx.Prepare(insert)
	if err != nil {
		return pfx.Err(err)
	}
	defer stmt.Close()

	args := make([]interface{}, len(candidates)+1)
	for i, x := range grid {
		args[0] = x
		for c := range candidates {
			args[c+1] = candidates[c][i]
		}

		if _, err := stmt.Exec(args...); err != nil {
			return pfx.Err(err)
		}
	}

	return pfx.Err(tx.Commit())
}

// SaveSelections replaces the selections table with the four selection
// records. Candidate numbering is 1-based in the database, matching the y1..
// y50 column names of the source file.
func (db *DB) SaveSelections(recs [funcmatch.MeasuredSeriesCount]funcmatch.SelectionRecord) error {
	tx, err := db.Beginx()
	if err != nil {
		return pfx.Err(err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM selections`); err != nil {
		return pfx.Err(err)
	}

	for _, rec := range recs {
		if _, err := tx.Exec(
			`INSERT INTO selections (series_no, series_name, ideal_function_no, sum_squared_dev, max_dev) VALUES (?, ?, ?, ?, ?)`,
			rec.Series+1, fmt.Sprintf("y%d", rec.Series+1), rec.Candidate+1, rec.SumSquaredDev, rec.MaxDev,
		); err != nil {
			return pfx.Err(err)
		}
	}

	return pfx.Err(tx.Commit())
}

// SaveTestResults replaces the test_data table with one row per observation,
// in input order. Unassigned observations keep NULL delta_y and NULL
// ideal_function_no and carry a reason code instead.
func (db *DB) SaveTestResults(obs []funcmatch.Observation, outcomes []funcmatch.Outcome) error {
	if len(obs) != len(outcomes) {
		return pfx.Err(fmt.Errorf("%d observations but %d outcomes", len(obs), len(outcomes)))
	}

	tx, err := db.Beginx()
	if err != nil {
		return pfx.Err(err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM test_data`); err != nil {
		return pfx.Err(err)
	}

	stmt, err := tx.Prepare(`INSERT INTO test_data (x, y, delta_y, ideal_function_no, reason) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return pfx.Err(err)
	}
	defer stmt.Close()

	for i, o := range obs {
		outcome := outcomes[i]

		var deltaY, functionNo interface{}
		reason := ""
		if outcome.Assigned {
			deltaY = outcome.Deviation
			functionNo = outcome.Candidate + 1
		} else {
			reason = outcome.Reason.String()
		}

		if _, err := stmt.Exec(o.X, o.Y, deltaY, functionNo, reason); err != nil {
			return pfx.Err(err)
		}
	}

	return pfx.Err(tx.Commit())
}

// Selection is one row of the selections table.
type Selection struct {
	SeriesNo        int     `db:"series_no"`
	SeriesName      string  `db:"series_name"`
	IdealFunctionNo int     `db:"ideal_function_no"`
	SumSquaredDev   float64 `db:"sum_squared_dev"`
	MaxDev          float64 `db:"max_dev"`
}

// TestResult is one row of the test_data table.
type TestResult struct {
	ID              int64           `db:"id"`
	X               float64         `db:"x"`
	Y               float64         `db:"y"`
	DeltaY          sql.NullFloat64 `db:"delta_y"`
	IdealFunctionNo sql.NullInt64   `db:"ideal_function_no"`
	Reason          string          `db:"reason"`
}

// Selections returns the stored selection records ordered by series.
func (db *DB) Selections() ([]Selection, error) {
	out := []Selection{}
	if err := db.Select(&out, `SELECT * FROM selections ORDER BY series_no`); err != nil {
		return nil, pfx.Err(err)
	}

	return out, nil
}

// TestResults returns the stored test rows in insertion order.
func (db *DB) TestResults() ([]TestResult, error) {
	out := []TestResult{}
	if err := db.Select(&out, `SELECT * FROM test_data ORDER BY id`); err != nil {
		return nil, pfx.Err(err)
	}

	return out, nil
}
