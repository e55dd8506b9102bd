package store

import (
    "context"
    "database/sql"
    "errors"
    "fmt"
    "strings"
    "time"

    "github.com/go-sql-driver/mysql"
)

// mysqlTables maps collection names to their backing tables. Acting as a
// whitelist also keeps collection names from ever reaching SQL unchecked.
//
// Each table shares the same shape and is expected to exist up front:
//
//   CREATE TABLE <name> (
//       pk   VARCHAR(255) NOT NULL,
//       sk   VARCHAR(255) NOT NULL,
//       item JSON         NOT NULL,
//       PRIMARY KEY (pk, sk)
//   );
var mysqlTables = map[string]string{
    Restaurants:      "restaurants",
    Tables:           "restaurant_tables",
    Reservations:     "reservations",
    UserReservations: "user_reservations",
}

// mysqlDuplicateEntry is the server error number MySQL reports when an
// insert violates the primary key. It is how PutIfAbsent detects a loss.
const mysqlDuplicateEntry = 1062

// MySQLStore implements KeyedStore on top of MySQL. The composite primary
// key (pk, sk) makes a plain INSERT the conditional write: the first writer
// wins and every other writer receives a duplicate-entry error.
type MySQLStore struct {
    db *sql.DB
}

// OpenMySQL connects to MySQL, verifies the connection and returns a store
// bound to it.
func OpenMySQL(user, pass, host, port, name string) (*MySQLStore, error) {
    auth := user
    if pass != "" {
        auth = fmt.Sprintf("%s:%s", user, pass)
    }
    // parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
    dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
        auth, host, port, name)

    db, err := sql.Open("mysql", dsn)
    if err != nil {
        return nil, err
    }

    // Pool settings
    db.SetMaxOpenConns(25)
    db.SetMaxIdleConns(25)
    db.SetConnMaxLifetime(30 * time.Minute)

    // Ping with timeout
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()
    if err := db.PingContext(ctx); err != nil {
        return nil, err
    }
    return &MySQLStore{db: db}, nil
}

// NewMySQLStore wraps an existing connection pool.
func NewMySQLStore(db *sql.DB) *MySQLStore { return &MySQLStore{db: db} }

// DB exposes the underlying pool for process shutdown.
func (s *MySQLStore) DB() *sql.DB { return s.db }

// Get returns the item stored under (pk, sk).
func (s *MySQLStore) Get(ctx context.Context, collection, pk, sk string) (Item, error) {
    table, err := mysqlTable(collection)
    if err != nil {
        return Item{}, err
    }
    q := `SELECT item FROM ` + table + ` WHERE pk = ? AND sk = ?`
    var value []byte
    if err := s.db.QueryRowContext(ctx, q, pk, sk).Scan(&value); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return Item{}, ErrItemNotFound
        }
        return Item{}, fmt.Errorf("mysql get %s: %w", collection, err)
    }
    return Item{PartitionKey: pk, SortKey: sk, Value: value}, nil
}

// PutIfAbsent inserts the item, mapping a primary-key collision to
// ErrKeyExists.
func (s *MySQLStore) PutIfAbsent(ctx context.Context, collection string, item Item) error {
    table, err := mysqlTable(collection)
    if err != nil {
        return err
    }
    q := `INSERT INTO ` + table + ` (pk, sk, item) VALUES (?, ?, ?)`
    if _, err := s.db.ExecContext(ctx, q, item.PartitionKey, item.SortKey, item.Value); err != nil {
        var me *mysql.MySQLError
        if errors.As(err, &me) && me.Number == mysqlDuplicateEntry {
            return ErrKeyExists
        }
        return fmt.Errorf("mysql put %s: %w", collection, err)
    }
    return nil
}

// Delete removes the item under (pk, sk). A missing row is not an error.
func (s *MySQLStore) Delete(ctx context.Context, collection, pk, sk string) error {
    table, err := mysqlTable(collection)
    if err != nil {
        return err
    }
    q := `DELETE FROM ` + table + ` WHERE pk = ? AND sk = ?`
    if _, err := s.db.ExecContext(ctx, q, pk, sk); err != nil {
        return fmt.Errorf("mysql delete %s: %w", collection, err)
    }
    return nil
}

// QueryPrefix returns the partition's items whose sort key starts with
// skPrefix, ordered by sort key.
func (s *MySQLStore) QueryPrefix(ctx context.Context, collection, pk, skPrefix string) ([]Item, error) {
    table, err := mysqlTable(collection)
    if err != nil {
        return nil, err
    }
    q := `SELECT sk, item FROM ` + table + ` WHERE pk = ? AND sk LIKE ? ORDER BY sk`
    rows, err := s.db.QueryContext(ctx, q, pk, escapeLike(skPrefix)+"%")
    if err != nil {
        return nil, fmt.Errorf("mysql query %s: %w", collection, err)
    }
    defer rows.Close()
    var items []Item
    for rows.Next() {
        it := Item{PartitionKey: pk}
        if err := rows.Scan(&it.SortKey, &it.Value); err != nil {
            return nil, fmt.Errorf("mysql query %s: %w", collection, err)
        }
        items = append(items, it)
    }
    if err := rows.Err(); err != nil {
        return nil, fmt.Errorf("mysql query %s: %w", collection, err)
    }
    return items, nil
}

func mysqlTable(collection string) (string, error) {
    t, ok := mysqlTables[collection]
    if !ok {
        return "", fmt.Errorf("unknown collection %q", collection)
    }
    return t, nil
}

// escapeLike neutralizes LIKE metacharacters so a prefix containing "%" or
// "_" matches literally.
func escapeLike(s string) string {
    s = strings.ReplaceAll(s, `\`, `\\`)
    s = strings.ReplaceAll(s, `%`, `\%`)
    return strings.ReplaceAll(s, `_`, `\_`)
}
