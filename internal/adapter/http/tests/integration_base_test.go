//go:build integration
// +build integration

package tests

import (
	"context"
	"os"

	dbadapter "advanced-todo/internal/adapter/db"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/suite"
)

// IntegrationSuiteBase talks to a real database named by TEST_DATABASE_URL
// (postgres:// or mysql://). The tasks table is dropped and recreated before
// every test.
type IntegrationSuiteBase struct {
	suite.Suite

	Store *dbadapter.Store
	DB    *sqlx.DB
}

func (s *IntegrationSuiteBase) SetupSuite() {
	rawURL := os.Getenv("TEST_DATABASE_URL")
	if rawURL == "" {
		s.T().Skip("skipping integration suite: TEST_DATABASE_URL is not set")
	}

	driverName, dsn, err := dbadapter.ParseDatabaseURL(rawURL)
	s.Require().NoError(err)

	db, err := sqlx.Connect(driverName, dsn)
	if err != nil {
		s.T().Skipf("skipping integration suite: could not connect to database: %v", err)
	}

	s.DB = db
	s.Store = dbadapter.NewStore(db)
}

func (s *IntegrationSuiteBase) TearDownSuite() {
	if s.DB == nil {
		return
	}
	_, err := s.DB.Exec("DROP TABLE IF EXISTS tasks")
	s.Require().NoError(err)
	s.Require().NoError(s.DB.Close())
}

func (s *IntegrationSuiteBase) ResetDatabase() {
	_, err := s.DB.Exec("DROP TABLE IF EXISTS tasks")
	s.Require().NoError(err)
	s.Require().NoError(s.Store.EnsureSchema(context.Background()))
}
