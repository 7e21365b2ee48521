// Package history keeps a record of every transform applied to a
// simfile, so the front end can show what was done and when.
package history

import (
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"log"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

type Store struct {
	db *sql.DB
}

// Run is one recorded transform invocation.
type Run struct {
	ID      int64
	Tool    string
	Name    string
	Sum     string
	Actions []string
	Created time.Time
}

func (s *Store) Init(path string) error {
	db, err := sql.Open("sqlite3", path)
	if nil != err {
		return errors.Wrap(err, "unable to open history database")
	}

	initStatement := `
	create table if not exists runs
	  (
		  id integer not null primary key,
		  tool text,
		  name text,
		  sum text,
		  actions bytearray,
		  created datetime default current_timestamp
	  );
	`
	if _, err = db.Exec(initStatement); nil != err {
		return errors.Wrap(err, "unable to create runs table")
	}

	s.db = db
	return nil
}

func (s *Store) Deinit() {
	if nil != s.db {
		s.db.Close()
	}
}

func hashInput(data []byte) string {
	sum := sha256.Sum256(data)
	return base64.StdEncoding.EncodeToString(sum[:])
}

// Save records one applied transform. Failures are logged, not fatal;
// the mutation itself already succeeded.
func (s *Store) Save(tool, name string, input []byte, actions []string) {
	if nil == s.db {
		return
	}
	data, err := json.Marshal(actions)
	if nil != err {
		log.Println("unable to marshal actions", err)
		return
	}
	_, err = s.db.Exec(
		"insert into runs(tool, name, sum, actions) values(?, ?, ?, ?)",
		tool, name, hashInput(input), data,
	)
	if nil != err {
		log.Println("unable to save run", err)
	}
}

// Recent returns the latest runs, newest first.
func (s *Store) Recent(limit int) ([]Run, error) {
	if nil == s.db {
		return nil, nil
	}
	rows, err := s.db.Query(
		"select id, tool, name, sum, actions, created from runs order by id desc limit ?",
		limit,
	)
	if nil != err {
		return nil, errors.Wrap(err, "unable to load runs")
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var actions []byte
		if err := rows.Scan(&run.ID, &run.Tool, &run.Name, &run.Sum, &actions, &run.Created); nil != err {
			return nil, errors.Wrap(err, "unable to scan run")
		}
		if err := json.Unmarshal(actions, &run.Actions); nil != err {
			log.Println("unable to unmarshal run actions")
			continue
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
