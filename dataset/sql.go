package dataset

import (
	"database/sql"
	"fmt"

	"src.elv.sh/pkg/persistent/vector"

	"mapscript/object"
	"mapscript/token"

	// SQL drivers

	_ "github.com/go-sql-driver/mysql"  // MariaDB & MySQL
	_ "github.com/lib/pq"               // Postgres
	_ "github.com/nakagami/firebirdsql" // Firebird
	_ "github.com/sijms/go-ora"         // Oracle
	_ "modernc.org/sqlite"              // SQLite
)

// The driver names a script may use, against the names the driver
// packages register themselves under.
var drivers = map[string]string{
	"firebird": "firebirdsql",
	"mysql":    "mysql",
	"oracle":   "oracle",
	"postgres": "postgres",
	"sqlite":   "sqlite",
}

// Connection holds the parameters of one database connection, as
// given in the script's 'dataset' statement.
type Connection struct {
	Driver   string
	Host     string
	Port     string
	Name     string // database name, or the file path for SQLite
	User     string
	Password string
}

func (c Connection) connectionString() string {
	switch c.Driver {
	case "sqlite":
		return c.Name
	case "mysql":
		return fmt.Sprintf("%v:%v@tcp(%v:%v)/%v", c.User, c.Password, c.Host, c.Port, c.Name)
	case "firebird":
		return fmt.Sprintf("%v:%v@%v:%v/%v", c.User, c.Password, c.Host, c.Port, c.Name)
	case "oracle":
		return fmt.Sprintf("oracle://%v:%v@%v:%v/%v", c.User, c.Password, c.Host, c.Port, c.Name)
	}
	return fmt.Sprintf("host=%v port=%v dbname=%v user=%v password=%v sslmode=disable",
		c.Host, c.Port, c.Name, c.User, c.Password)
}

// SQLDataset runs one query and hands its rows out one at a time. The
// whole result set is read up front, so the database connection isn't
// held open across however long the script takes to walk the rows.
type SQLDataset struct {
	fields []string
	rows   vector.Vector
	next   int
}

// OpenSQL connects, runs the query, reads everything, disconnects.
// The token is the statement that created the dataset, for error
// positions.
func OpenSQL(conn Connection, query string, tok token.Token) (*SQLDataset, *object.Error) {
	driver, ok := drivers[conn.Driver]
	if !ok {
		return nil, object.CreateErr("dataset/driver", tok, conn.Driver)
	}
	db, err := sql.Open(driver, conn.connectionString())
	if err != nil {
		return nil, object.CreateErr("dataset/open", tok, err.Error())
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		return nil, object.CreateErr("dataset/open", tok, err.Error())
	}
	rows, err := db.Query(query)
	if err != nil {
		return nil, object.CreateErr("dataset/query", tok, err.Error())
	}
	defer rows.Close()
	fields, err := rows.Columns()
	if err != nil {
		return nil, object.CreateErr("dataset/query", tok, err.Error())
	}
	buffer := vector.Empty
	holders := make([]any, len(fields))
	pointers := make([]any, len(fields))
	for i := range holders {
		pointers[i] = &holders[i]
	}
	for rows.Next() {
		if err := rows.Scan(pointers...); err != nil {
			return nil, object.CreateErr("dataset/query", tok, err.Error())
		}
		row := object.NewHash()
		for i, field := range fields {
			row.Set(field, columnValue(holders[i]))
		}
		buffer = buffer.Conj(row)
	}
	if err := rows.Err(); err != nil {
		return nil, object.CreateErr("dataset/query", tok, err.Error())
	}
	return &SQLDataset{fields: fields, rows: buffer}, nil
}

// columnValue converts whatever the driver scanned into a runtime
// value. Text goes through the same WKT sniffing as a text dataset's
// fields, so geometry columns stored as well-known text come out as
// geometry.
func columnValue(v any) object.Object {
	switch v := v.(type) {
	case nil:
		return object.EMPTY_STRING
	case int64:
		return object.MakeNumber(float64(v))
	case float64:
		return object.MakeNumber(v)
	case bool:
		if v {
			return object.NUMBER_ONE
		}
		return object.NUMBER_ZERO
	case []byte:
		return fieldValue(string(v))
	case string:
		return fieldValue(v)
	}
	return &object.String{Value: fmt.Sprint(v)}
}

func (d *SQLDataset) FieldNames() []string { return d.fields }

func (d *SQLDataset) Fetch() (*object.Hash, *object.Error) {
	if d.next >= d.rows.Len() {
		return nil, nil
	}
	row, _ := d.rows.Index(d.next)
	d.next++
	return row.(*object.Hash), nil
}

func (d *SQLDataset) Close() error { return nil }
