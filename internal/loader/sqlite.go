package loader

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"regexp"

	"topobloom/internal/domain"

	_ "modernc.org/sqlite"
)

// DefaultLinksTable is the table SQLiteSource reads when none is configured
const DefaultLinksTable = "links"

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLiteSource reads links from a link inventory table. The database is
// opened read-only; topology is never written back.
//
// Expected columns: node1, intf1, node2, intf2. Rows are returned in rowid
// order, which is insertion order for a plain table.
type SQLiteSource struct {
	db    *sql.DB
	path  string
	table string
}

// OpenSQLite opens the inventory at dbPath. An empty table selects
// DefaultLinksTable.
func OpenSQLite(dbPath, table string) (*SQLiteSource, error) {
	if table == "" {
		table = DefaultLinksTable
	}
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	db, err := sql.Open("sqlite", readOnlyDSN(dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &SQLiteSource{db: db, path: dbPath, table: table}, nil
}

// readOnlyDSN builds a file: URI so '?' and '#' in the path are escaped
// rather than read as the start of the query or fragment
func readOnlyDSN(dbPath string) string {
	query := url.Values{}
	query.Set("mode", "ro")
	query.Add("_pragma", "busy_timeout(5000)")

	u := url.URL{Scheme: "file", Opaque: (&url.URL{Path: dbPath}).EscapedPath(), RawQuery: query.Encode()}
	return u.String()
}

// Name identifies the source in logs
func (s *SQLiteSource) Name() string {
	return "sqlite:" + s.path + "#" + s.table
}

// Links reads every row of the inventory table
func (s *SQLiteSource) Links(ctx context.Context) ([]domain.Link, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT node1, intf1, node2, intf2 FROM %s ORDER BY rowid`, s.table))
	if err != nil {
		return nil, fmt.Errorf("failed to query links: %w", err)
	}
	defer rows.Close()

	var links []domain.Link
	for rows.Next() {
		var node1, intf1, node2, intf2 sql.NullString
		if err := rows.Scan(&node1, &intf1, &node2, &intf2); err != nil {
			return nil, fmt.Errorf("failed to scan link: %w", err)
		}
		links = append(links, domain.NewLink(
			nullToString(node1), nullToString(intf1),
			nullToString(node2), nullToString(intf2),
		))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating links: %w", err)
	}
	return links, nil
}

// Close closes the database connection
func (s *SQLiteSource) Close() error {
	return s.db.Close()
}

// nullToString safely converts sql.NullString to string
func nullToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}
