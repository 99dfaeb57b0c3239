// Package neo4j implements ports.GraphCommander on the Bolt protocol.
package neo4j

import (
	"context"
	"errors"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/worawit/lawgraph/internal/infrastructure/resilience"
)

type Config struct {
	URI      string
	User     string
	Password string
	Database string
}

// Commander opens one short-lived session per statement. Every merge the
// core issues is idempotent, so retrying through the resilience executor is
// safe for writes as well as reads.
type Commander struct {
	driver   neo4j.DriverWithContext
	database string
	exec     *resilience.Executor
	record   func(kind, status string)
}

func NewCommander(ctx context.Context, cfg Config, exec *resilience.Executor) (*Commander, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.User, cfg.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("verify neo4j connectivity: %w", err)
	}
	return &Commander{driver: driver, database: cfg.Database, exec: exec}, nil
}

// SetStatementRecorder installs an observation hook called once per
// statement with kind "write" or "read" and status "ok" or "error".
func (c *Commander) SetStatementRecorder(record func(kind, status string)) {
	c.record = record
}

func (c *Commander) observe(kind string, err error) {
	if c.record == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.record(kind, status)
}

func (c *Commander) Write(ctx context.Context, statement string, params map[string]any) error {
	err := c.exec.Execute(ctx, "neo4j.write", func(ctx context.Context) error {
		session := c.driver.NewSession(ctx, neo4j.SessionConfig{
			DatabaseName: c.database,
			AccessMode:   neo4j.AccessModeWrite,
		})
		defer session.Close(ctx)

		result, err := session.Run(ctx, statement, params)
		if err != nil {
			return err
		}
		_, err = result.Consume(ctx)
		return err
	})
	c.observe("write", err)
	return err
}

func (c *Commander) Read(ctx context.Context, statement string, params map[string]any) ([]map[string]any, error) {
	var rows []map[string]any
	err := c.exec.Execute(ctx, "neo4j.read", func(ctx context.Context) error {
		session := c.driver.NewSession(ctx, neo4j.SessionConfig{
			DatabaseName: c.database,
			AccessMode:   neo4j.AccessModeRead,
		})
		defer session.Close(ctx)

		result, err := session.Run(ctx, statement, params)
		if err != nil {
			return err
		}
		records, err := result.Collect(ctx)
		if err != nil {
			return err
		}
		rows = make([]map[string]any, 0, len(records))
		for _, rec := range records {
			rows = append(rows, rec.AsMap())
		}
		return nil
	})
	c.observe("read", err)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *Commander) Close(ctx context.Context) error {
	return c.driver.Close(ctx)
}

// Classifier marks connectivity and transient server errors as retryable
// breaker inputs; statement-level errors fail fast.
func Classifier(err error) resilience.ErrorClassification {
	var serverErr *neo4j.Neo4jError
	transient := neo4j.IsConnectivityError(err) ||
		(errors.As(err, &serverErr) && serverErr.IsRetriableTransient())
	return resilience.ErrorClassification{
		Retryable:     transient,
		RecordFailure: transient,
	}
}
