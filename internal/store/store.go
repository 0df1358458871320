// Package store is the pgx-backed snapshot provider. It only reads: every
// entity it returns is owned and mutated elsewhere, and the engine treats
// the result as immutable input.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/veracomply/posture/internal/compliance"
)

// Store reads compliance snapshots from PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store on an existing connection pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Snapshot fetches one client's full entity state in a single pass. It
// returns a *compliance.NotFoundError when the client does not exist; an
// existing client with no data yields a valid empty snapshot.
func (s *Store) Snapshot(ctx context.Context, clientID string) (compliance.Snapshot, error) {
	snap := compliance.Snapshot{ClientID: clientID}

	var exists bool
	err := s.pool.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM clients WHERE id = $1)", clientID,
	).Scan(&exists)
	if err != nil {
		return snap, fmt.Errorf("check client %s: %w", clientID, err)
	}
	if !exists {
		return snap, &compliance.NotFoundError{Kind: "client", ID: clientID}
	}

	if snap.Controls, err = s.ClientControls(ctx, clientID); err != nil {
		return snap, err
	}
	if snap.Policies, err = s.ClientPolicies(ctx, clientID); err != nil {
		return snap, err
	}
	if snap.Evidence, err = s.Evidence(ctx, clientID); err != nil {
		return snap, err
	}
	if snap.Links, err = s.PolicyControlLinks(ctx, clientID); err != nil {
		return snap, err
	}
	return snap, nil
}

// ClientControls returns a client's controls joined with their master
// records, in stable control-ID order.
func (s *Store) ClientControls(ctx context.Context, clientID string) ([]compliance.ClientControl, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT cc.id, cc.client_id, cc.control_id, cc.status, cc.owner,
		       c.external_control_id, c.name, c.framework, c.description, c.category
		FROM client_controls cc
		JOIN controls c ON c.id = cc.control_id
		WHERE cc.client_id = $1
		ORDER BY cc.control_id
	`, clientID)
	if err != nil {
		return nil, fmt.Errorf("query client controls: %w", err)
	}
	defer rows.Close()

	var out []compliance.ClientControl
	for rows.Next() {
		var cc compliance.ClientControl
		if err := rows.Scan(
			&cc.ID, &cc.ClientID, &cc.ControlID, &cc.Status, &cc.Owner,
			&cc.Control.ExternalControlID, &cc.Control.Name, &cc.Control.Framework,
			&cc.Control.Description, &cc.Control.Category,
		); err != nil {
			return nil, fmt.Errorf("scan client control: %w", err)
		}
		cc.Control.ID = cc.ControlID
		out = append(out, cc)
	}
	return out, rows.Err()
}

// ClientPolicies returns a client's policies in stable name order.
func (s *Store) ClientPolicies(ctx context.Context, clientID string) ([]compliance.ClientPolicy, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, client_id, name, status, version, updated_at
		FROM client_policies
		WHERE client_id = $1
		ORDER BY name
	`, clientID)
	if err != nil {
		return nil, fmt.Errorf("query client policies: %w", err)
	}
	defer rows.Close()

	var out []compliance.ClientPolicy
	for rows.Next() {
		var p compliance.ClientPolicy
		if err := rows.Scan(&p.ID, &p.ClientID, &p.Name, &p.Status, &p.Version, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan client policy: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Evidence returns a client's evidence artifacts in stable title order.
func (s *Store) Evidence(ctx context.Context, clientID string) ([]compliance.Evidence, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, client_id, title, status, collection_frequency
		FROM evidence
		WHERE client_id = $1
		ORDER BY title
	`, clientID)
	if err != nil {
		return nil, fmt.Errorf("query evidence: %w", err)
	}
	defer rows.Close()

	var out []compliance.Evidence
	for rows.Next() {
		var e compliance.Evidence
		if err := rows.Scan(&e.ID, &e.ClientID, &e.Title, &e.Status, &e.CollectionFrequency); err != nil {
			return nil, fmt.Errorf("scan evidence: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// PolicyControlLinks returns the policy-to-control relation for a client's
// policies.
func (s *Store) PolicyControlLinks(ctx context.Context, clientID string) ([]compliance.PolicyControlLink, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT l.policy_id, l.control_id
		FROM policy_control_links l
		JOIN client_policies p ON p.id = l.policy_id
		WHERE p.client_id = $1
		ORDER BY l.policy_id, l.control_id
	`, clientID)
	if err != nil {
		return nil, fmt.Errorf("query policy control links: %w", err)
	}
	defer rows.Close()

	var out []compliance.PolicyControlLink
	for rows.Next() {
		var l compliance.PolicyControlLink
		if err := rows.Scan(&l.PolicyID, &l.ControlID); err != nil {
			return nil, fmt.Errorf("scan policy control link: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// ReadinessResponses returns one client's questionnaire answers for a
// regulation, in stable question-ID order.
func (s *Store) ReadinessResponses(ctx context.Context, clientID, regulationID string) ([]compliance.ReadinessResponse, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT client_id, regulation_id, question_id, response
		FROM readiness_responses
		WHERE client_id = $1 AND regulation_id = $2
		ORDER BY question_id
	`, clientID, regulationID)
	if err != nil {
		return nil, fmt.Errorf("query readiness responses: %w", err)
	}
	defer rows.Close()

	var out []compliance.ReadinessResponse
	for rows.Next() {
		var r compliance.ReadinessResponse
		if err := rows.Scan(&r.ClientID, &r.RegulationID, &r.QuestionID, &r.Response); err != nil {
			return nil, fmt.Errorf("scan readiness response: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ClientName resolves a client's display name.
func (s *Store) ClientName(ctx context.Context, clientID string) (string, error) {
	var name string
	err := s.pool.QueryRow(ctx, "SELECT name FROM clients WHERE id = $1", clientID).Scan(&name)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", &compliance.NotFoundError{Kind: "client", ID: clientID}
	}
	if err != nil {
		return "", fmt.Errorf("query client name: %w", err)
	}
	return name, nil
}
