package main

import (
	"context"

	"github.com/tuannm99/novarel"
	"github.com/tuannm99/novarel/sqlclient"
)

// backend is where the REPL sends statements: a relwire server or an
// embedded database.
type backend interface {
	Exec(sql string) ([]*novarel.Result, error)
	Tables() ([]string, error)
	Describe(table string) (*novarel.TableInfo, error)
	Close() error
}

type remoteBackend struct {
	c *sqlclient.Client
}

func (b remoteBackend) Exec(sql string) ([]*novarel.Result, error) { return b.c.Exec(sql) }
func (b remoteBackend) Tables() ([]string, error) {
	return b.c.Tables(context.Background())
}
func (b remoteBackend) Describe(table string) (*novarel.TableInfo, error) {
	return b.c.Describe(context.Background(), table)
}
func (b remoteBackend) Close() error { return b.c.Close() }

type localBackend struct {
	db *novarel.Database
}

func (b localBackend) Exec(sql string) ([]*novarel.Result, error) { return b.db.Exec(sql) }
func (b localBackend) Tables() ([]string, error)                  { return b.db.TableNames(), nil }
func (b localBackend) Describe(table string) (*novarel.TableInfo, error) {
	info, err := b.db.Table(table)
	if err != nil {
		return nil, err
	}
	return &info, nil
}
func (b localBackend) Close() error { return nil }
