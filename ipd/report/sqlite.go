package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/baldhumanity/ipd-go/ipd"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists reports in a SQLite database file.
type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

// NewSQLiteStore creates a store for path. Call Init before use.
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}
	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) SaveGeneration(ctx context.Context, runID string, r *ipd.GenerationReport) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	row := rowOf(runID, r)
	_, err = tx.ExecContext(ctx, `
		INSERT INTO generations (run_id, generation, winner_id, winner_score,
			mean_score, stddev_score, min_score, median_score, max_score,
			move_cooperation, genome_cooperation)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, generation) DO UPDATE SET
			winner_id = excluded.winner_id,
			winner_score = excluded.winner_score,
			mean_score = excluded.mean_score,
			stddev_score = excluded.stddev_score,
			min_score = excluded.min_score,
			median_score = excluded.median_score,
			max_score = excluded.max_score,
			move_cooperation = excluded.move_cooperation,
			genome_cooperation = excluded.genome_cooperation
	`, runID, row.Generation, row.WinnerID, row.WinnerScore,
		row.Summary.MeanScore, row.Summary.StdDevScore, row.Summary.MinScore,
		row.Summary.MedianScore, row.Summary.MaxScore,
		row.Summary.MoveCooperation, row.Summary.GenomeCooperation)
	if err != nil {
		return err
	}

	genomes := make(map[int]string, len(r.Genomes))
	for _, g := range r.Genomes {
		genomes[g.AgentID] = g.Genome.String()
	}
	for _, sc := range r.Scores {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO agents (run_id, generation, agent_id, score, genome)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(run_id, generation, agent_id) DO UPDATE SET
				score = excluded.score,
				genome = excluded.genome
		`, runID, r.Generation, sc.AgentID, sc.Score, genomes[sc.AgentID])
		if err != nil {
			return err
		}
	}

	for _, rec := range r.Interactions {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO interactions (run_id, generation, agent_id, opponent_id, outcomes)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(run_id, generation, agent_id, opponent_id) DO UPDATE SET
				outcomes = excluded.outcomes
		`, runID, r.Generation, rec.AgentID, rec.OpponentID, encodeOutcomes(rec.Outcomes))
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetGeneration(ctx context.Context, runID string, generation int) (StoredGeneration, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return StoredGeneration{}, false, err
	}

	var stored StoredGeneration
	stored.RunID = runID
	stored.Generation = generation
	err = db.QueryRowContext(ctx, `
		SELECT winner_id, winner_score, mean_score, stddev_score, min_score,
			median_score, max_score, move_cooperation, genome_cooperation
		FROM generations WHERE run_id = ? AND generation = ?
	`, runID, generation).Scan(
		&stored.WinnerID, &stored.WinnerScore,
		&stored.Summary.MeanScore, &stored.Summary.StdDevScore, &stored.Summary.MinScore,
		&stored.Summary.MedianScore, &stored.Summary.MaxScore,
		&stored.Summary.MoveCooperation, &stored.Summary.GenomeCooperation,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return StoredGeneration{}, false, nil
		}
		return StoredGeneration{}, false, err
	}

	if err := s.loadAgents(ctx, db, &stored); err != nil {
		return StoredGeneration{}, false, err
	}
	if err := s.loadInteractions(ctx, db, &stored); err != nil {
		return StoredGeneration{}, false, err
	}
	return stored, true, nil
}

func (s *SQLiteStore) loadAgents(ctx context.Context, db *sql.DB, stored *StoredGeneration) error {
	rows, err := db.QueryContext(ctx, `
		SELECT agent_id, score, genome FROM agents
		WHERE run_id = ? AND generation = ? ORDER BY agent_id
	`, stored.RunID, stored.Generation)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id, score int
			encoded   string
		)
		if err := rows.Scan(&id, &score, &encoded); err != nil {
			return err
		}
		genome, err := ipd.ParseGenome(encoded)
		if err != nil {
			return fmt.Errorf("decode genome of agent %d: %w", id, err)
		}
		stored.Scores = append(stored.Scores, ipd.AgentScore{AgentID: id, Score: score})
		stored.Genomes = append(stored.Genomes, ipd.GenomeRecord{AgentID: id, Genome: genome})
	}
	return rows.Err()
}

func (s *SQLiteStore) loadInteractions(ctx context.Context, db *sql.DB, stored *StoredGeneration) error {
	rows, err := db.QueryContext(ctx, `
		SELECT agent_id, opponent_id, outcomes FROM interactions
		WHERE run_id = ? AND generation = ? ORDER BY agent_id, opponent_id
	`, stored.RunID, stored.Generation)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			rec     ipd.InteractionRecord
			encoded string
		)
		if err := rows.Scan(&rec.AgentID, &rec.OpponentID, &encoded); err != nil {
			return err
		}
		rec.Outcomes, err = decodeOutcomes(encoded)
		if err != nil {
			return fmt.Errorf("decode %s: %w", PairLabel(rec.AgentID, rec.OpponentID), err)
		}
		stored.Interactions = append(stored.Interactions, rec)
	}
	return rows.Err()
}

func (s *SQLiteStore) ListGenerations(ctx context.Context, runID string) ([]GenerationRow, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT generation, winner_id, winner_score, mean_score, stddev_score,
			min_score, median_score, max_score, move_cooperation, genome_cooperation
		FROM generations WHERE run_id = ? ORDER BY generation
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []GenerationRow
	for rows.Next() {
		row := GenerationRow{RunID: runID}
		if err := rows.Scan(&row.Generation, &row.WinnerID, &row.WinnerScore,
			&row.Summary.MeanScore, &row.Summary.StdDevScore, &row.Summary.MinScore,
			&row.Summary.MedianScore, &row.Summary.MaxScore,
			&row.Summary.MoveCooperation, &row.Summary.GenomeCooperation); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errors.New("store is not initialized")
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS generations (
			run_id TEXT NOT NULL,
			generation INTEGER NOT NULL,
			winner_id INTEGER NOT NULL,
			winner_score INTEGER NOT NULL,
			mean_score REAL NOT NULL,
			stddev_score REAL NOT NULL,
			min_score REAL NOT NULL,
			median_score REAL NOT NULL,
			max_score REAL NOT NULL,
			move_cooperation REAL NOT NULL,
			genome_cooperation REAL NOT NULL,
			PRIMARY KEY (run_id, generation)
		);
		CREATE TABLE IF NOT EXISTS agents (
			run_id TEXT NOT NULL,
			generation INTEGER NOT NULL,
			agent_id INTEGER NOT NULL,
			score INTEGER NOT NULL,
			genome TEXT NOT NULL,
			PRIMARY KEY (run_id, generation, agent_id)
		);
		CREATE TABLE IF NOT EXISTS interactions (
			run_id TEXT NOT NULL,
			generation INTEGER NOT NULL,
			agent_id INTEGER NOT NULL,
			opponent_id INTEGER NOT NULL,
			outcomes TEXT NOT NULL,
			PRIMARY KEY (run_id, generation, agent_id, opponent_id)
		);
	`)
	return err
}
