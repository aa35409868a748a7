package db

import (
	"context"
	"embed"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// EnsureSchema creates the tasks table when it does not exist yet.
// Statements run one at a time so no driver needs multi-statement support.
func (s *Store) EnsureSchema(ctx context.Context) error {
	statements, err := schemaStatements(s.Dialect)
	if err != nil {
		return err
	}

	for _, statement := range statements {
		if _, err := s.DB.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	zap.L().Info("schema applied", zap.String("dialect", string(s.Dialect)), zap.Int("statements", len(statements)))
	return nil
}

func schemaStatements(dialect Dialect) ([]string, error) {
	content, err := schemaFS.ReadFile("schema/" + string(dialect) + ".sql")
	if err != nil {
		return nil, fmt.Errorf("read %s schema: %w", dialect, err)
	}

	var statements []string
	for _, part := range strings.Split(string(content), ";") {
		statement := strings.TrimSpace(part)
		if statement == "" {
			continue
		}
		statements = append(statements, statement)
	}
	return statements, nil
}
