package mocks

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"sync"
)

// NewStubDB returns a *sql.DB backed by a no-op driver. Transactions hold a
// shared mutex from Begin until Commit or Rollback, so concurrent
// transactional sections serialize the way row locks would. Statements are
// not supported; pair it with the in-memory stores, whose WithTx ignores
// the transaction handle.
func NewStubDB() *sql.DB {
	return sql.OpenDB(&stubConnector{mu: &sync.Mutex{}})
}

type stubConnector struct {
	mu *sync.Mutex
}

func (c *stubConnector) Connect(ctx context.Context) (driver.Conn, error) {
	return &stubConn{mu: c.mu}, nil
}

func (c *stubConnector) Driver() driver.Driver {
	return stubDriver{}
}

type stubDriver struct{}

func (stubDriver) Open(name string) (driver.Conn, error) {
	return nil, errors.New("stub driver does not support Open")
}

type stubConn struct {
	mu *sync.Mutex
}

func (c *stubConn) Prepare(query string) (driver.Stmt, error) {
	return nil, errors.New("stub driver does not support statements")
}

func (c *stubConn) Close() error {
	return nil
}

func (c *stubConn) Begin() (driver.Tx, error) {
	c.mu.Lock()
	return &stubTx{mu: c.mu}, nil
}

type stubTx struct {
	mu   *sync.Mutex
	once sync.Once
}

func (t *stubTx) Commit() error {
	t.once.Do(t.mu.Unlock)
	return nil
}

func (t *stubTx) Rollback() error {
	t.once.Do(t.mu.Unlock)
	return nil
}
