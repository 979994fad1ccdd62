package report

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/baldhumanity/ipd-go/ipd"
)

// GenerationRow is the per-generation headline kept by a Store.
type GenerationRow struct {
	RunID       string
	Generation  int
	WinnerID    int
	WinnerScore int
	Summary     ipd.Summary
}

// StoredGeneration is a full generation report read back from a Store.
type StoredGeneration struct {
	GenerationRow
	Scores       []ipd.AgentScore
	Genomes      []ipd.GenomeRecord
	Interactions []ipd.InteractionRecord
}

// Store persists generation reports keyed by run and generation.
type Store interface {
	Init(ctx context.Context) error
	SaveGeneration(ctx context.Context, runID string, r *ipd.GenerationReport) error
	GetGeneration(ctx context.Context, runID string, generation int) (StoredGeneration, bool, error)
	ListGenerations(ctx context.Context, runID string) ([]GenerationRow, error)
}

// NewStore returns a store backend by name: "memory" (or empty) or "sqlite".
func NewStore(kind, sqlitePath string) (Store, error) {
	switch kind {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return NewSQLiteStore(sqlitePath), nil
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", kind)
	}
}

// CloseIfSupported closes stores that hold resources.
func CloseIfSupported(store Store) error {
	closer, ok := store.(interface{ Close() error })
	if !ok {
		return nil
	}
	return closer.Close()
}

// StoreReporter saves every generation report under one run ID.
type StoreReporter struct {
	Store Store
	RunID string
}

// ReportGeneration implements ipd.Reporter.
func (s *StoreReporter) ReportGeneration(ctx context.Context, r *ipd.GenerationReport) error {
	if err := s.Store.SaveGeneration(ctx, s.RunID, r); err != nil {
		return fmt.Errorf("store generation %d: %w", r.Generation, err)
	}
	return nil
}

func rowOf(runID string, r *ipd.GenerationReport) GenerationRow {
	return GenerationRow{
		RunID:       runID,
		Generation:  r.Generation,
		WinnerID:    r.WinnerID,
		WinnerScore: r.WinnerScore(),
		Summary:     r.Summary,
	}
}

func encodeOutcomes(outcomes []ipd.Outcome) string {
	var b strings.Builder
	b.Grow(len(outcomes))
	for _, o := range outcomes {
		b.WriteString(o.String())
	}
	return b.String()
}

func decodeOutcomes(s string) ([]ipd.Outcome, error) {
	out := make([]ipd.Outcome, 0, len(s))
	for i := 0; i < len(s); i++ {
		o, err := ipd.ParseOutcome(s[i : i+1])
		if err != nil {
			return nil, fmt.Errorf("outcome %d: %w", i, err)
		}
		out = append(out, o)
	}
	return out, nil
}

type runGeneration struct {
	runID      string
	generation int
}

// MemoryStore keeps reports in process memory.
type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	generations map[runGeneration]StoredGeneration
}

// NewMemoryStore creates an empty, uninitialised memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.generations = make(map[runGeneration]StoredGeneration)
	return nil
}

func (s *MemoryStore) SaveGeneration(_ context.Context, runID string, r *ipd.GenerationReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return fmt.Errorf("store is not initialized")
	}
	stored := StoredGeneration{
		GenerationRow: rowOf(runID, r),
		Scores:        append([]ipd.AgentScore(nil), r.Scores...),
		Genomes:       append([]ipd.GenomeRecord(nil), r.Genomes...),
	}
	for _, rec := range r.Interactions {
		rec.Outcomes = append([]ipd.Outcome(nil), rec.Outcomes...)
		stored.Interactions = append(stored.Interactions, rec)
	}
	s.generations[runGeneration{runID, r.Generation}] = stored
	return nil
}

func (s *MemoryStore) GetGeneration(_ context.Context, runID string, generation int) (StoredGeneration, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.generations[runGeneration{runID, generation}]
	return stored, ok, nil
}

func (s *MemoryStore) ListGenerations(_ context.Context, runID string) ([]GenerationRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rows []GenerationRow
	for key, stored := range s.generations {
		if key.runID == runID {
			rows = append(rows, stored.GenerationRow)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Generation < rows[j].Generation })
	return rows, nil
}
