// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package neo4j implements the knowledge graph store against a Neo4j server.
package neo4j

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/poiesic/voyant/core"
	"github.com/poiesic/voyant/graph"
)

// ErrMissingURI indicates a configuration without a connection URI.
var ErrMissingURI = errors.New("missing neo4j uri")

const defaultFactLimit = 100

// Undirected one-hop expansion. Descriptions are clipped server-side so a
// verbose node cannot blow up the prompt budget downstream.
const neighborQuery = `
UNWIND $node_ids AS nid
MATCH (n:Entity {id: nid})-[r]-(m:Entity)
RETURN n.id AS source_id,
       type(r) AS relation,
       m.id AS target_id,
       coalesce(m.name, '') AS target_name,
       left(coalesce(m.description, ''), 400) AS target_description,
       labels(m) AS target_labels
LIMIT $limit`

// Config holds the Neo4j connection settings.
type Config struct {
	// URI is the bolt/neo4j connection string.
	URI string

	// Username and Password authenticate via basic auth.
	Username string
	Password string

	// Database selects a named database. Empty uses the server default.
	Database string

	// FactLimit caps facts returned per traversal. Zero selects the default.
	FactLimit int
}

// Store is a Neo4j-backed knowledge graph store.
type Store struct {
	driver   neo4j.DriverWithContext
	database string
	limit    int
	logger   *slog.Logger
}

var _ graph.Store = (*Store)(nil)

// NewStore connects to Neo4j and verifies connectivity.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if strings.TrimSpace(cfg.URI) == "" {
		return nil, ErrMissingURI
	}
	if cfg.FactLimit <= 0 {
		cfg.FactLimit = defaultFactLimit
	}

	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.Username, cfg.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("verify neo4j connectivity: %w", err)
	}

	return &Store{
		driver:   driver,
		database: cfg.Database,
		limit:    cfg.FactLimit,
		logger:   slog.Default().With("store", "neo4j"),
	}, nil
}

// Neighbors returns facts for edges touching any of the given node ids.
func (s *Store) Neighbors(ctx context.Context, nodeIDs []string) ([]core.GraphFact, error) {
	if len(nodeIDs) == 0 {
		return nil, nil
	}

	session := s.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: s.database,
	})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, neighborQuery, map[string]any{
			"node_ids": nodeIDs,
			"limit":    s.limit,
		})
		if err != nil {
			return nil, err
		}
		return res.Collect(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("graph traversal: %w", err)
	}

	records := result.([]*neo4j.Record)
	facts := make([]core.GraphFact, 0, len(records))
	for _, rec := range records {
		facts = append(facts, core.GraphFact{
			SourceID:          recordString(rec, "source_id"),
			Relation:          recordString(rec, "relation"),
			TargetID:          recordString(rec, "target_id"),
			TargetName:        recordString(rec, "target_name"),
			TargetDescription: recordString(rec, "target_description"),
			TargetLabels:      recordStrings(rec, "target_labels"),
		})
	}

	s.logger.Debug("graph traversal complete", "nodes", len(nodeIDs), "facts", len(facts))
	return facts, nil
}

// Close releases the underlying driver.
func (s *Store) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

func recordString(rec *neo4j.Record, key string) string {
	v, ok := rec.Get(key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

func recordStrings(rec *neo4j.Record, key string) []string {
	v, ok := rec.Get(key)
	if !ok {
		return nil
	}
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
