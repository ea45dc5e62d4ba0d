package repository

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/showdown/internal/domain/model"
	"github.com/okian/showdown/pkg/metrics"
)

// Treap-based, in-memory Store implementation.
//
// Ordering: strength DESC, then handID ASC (deterministic). The BST
// comparator treats "less" as ranking earlier, so an in-order traversal
// produces the showcase from strongest to weakest. Strength is already a
// packed integer whose numeric order matches hand order, so no score
// scaling is needed.

// record stores the packed strength plus the rendered evaluation for a hand.
type record struct {
	strength    uint32
	category    string
	description string
	street      string
	cardsUsed   int
}

// Snapshot is an immutable view of the showcase state.
type Snapshot struct {
	// Rank and strength in O(1) for reads.
	RankByHand     map[string]int
	StrengthByHand map[string]uint32

	// Fast Top-K cache, sorted descending.
	TopCache []Entry
}

// treap node
type node struct {
	id       string
	strength uint32
	prio     uint64
	left     *node
	right    *node
	size     int
}

func nsize(n *node) int {
	if n == nil {
		return 0
	}
	return n.size
}

func fix(n *node) {
	if n != nil {
		n.size = 1 + nsize(n.left) + nsize(n.right)
	}
}

// less returns true if (aStrength, aID) ranks earlier than (bStrength, bID).
func less(aStrength uint32, aID string, bStrength uint32, bID string) bool {
	if aStrength != bStrength {
		return aStrength > bStrength // stronger hands rank earlier
	}
	return aID < bID // tie-breaker by id asc
}

func rotateRight(y *node) *node {
	x := y.left
	t2 := x.right
	x.right = y
	y.left = t2
	fix(y)
	fix(x)
	return x
}

func rotateLeft(x *node) *node {
	y := x.right
	t2 := y.left
	y.left = x
	x.right = t2
	fix(x)
	fix(y)
	return y
}

// strengthToPriority keeps stronger hands near the treap root so TopN
// touches fewer nodes. Determinism for equal strengths comes from the BST
// ordering, not the priority.
func strengthToPriority(strength uint32) uint64 {
	return uint64(strength)
}

func insert(n *node, id string, strength uint32) *node {
	if n == nil {
		return &node{id: id, strength: strength, prio: strengthToPriority(strength), size: 1}
	}
	if less(strength, id, n.strength, n.id) {
		n.left = insert(n.left, id, strength)
		if n.left.prio > n.prio {
			n = rotateRight(n)
		}
	} else {
		n.right = insert(n.right, id, strength)
		if n.right.prio > n.prio {
			n = rotateLeft(n)
		}
	}
	fix(n)
	return n
}

func deleteNode(n *node, id string, strength uint32) *node {
	if n == nil {
		return nil
	}
	if strength == n.strength && id == n.id {
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		if n.left.prio > n.right.prio {
			n = rotateRight(n)
			n.right = deleteNode(n.right, id, strength)
		} else {
			n = rotateLeft(n)
			n.left = deleteNode(n.left, id, strength)
		}
	} else if less(strength, id, n.strength, n.id) {
		n.left = deleteNode(n.left, id, strength)
	} else {
		n.right = deleteNode(n.right, id, strength)
	}
	fix(n)
	return n
}

// collectTopN appends up to limit entries in rank order (strongest first).
func collectTopN(n *node, limit int, records map[string]record, out *[]Entry) {
	if n == nil || len(*out) >= limit {
		return
	}

	collectTopN(n.left, limit, records, out)

	if len(*out) < limit {
		if rec, exists := records[n.id]; exists {
			*out = append(*out, entryFromRecord(n.id, rec))
		}
	}

	if len(*out) < limit {
		collectTopN(n.right, limit, records, out)
	}
}

func entryFromRecord(id string, rec record) Entry {
	return Entry{
		HandID:      id,
		Strength:    rec.strength,
		Category:    rec.category,
		Description: rec.description,
		Street:      rec.street,
		CardsUsed:   rec.cardsUsed,
	}
}

type TreapStore struct {
	mu                    sync.RWMutex
	root                  *node
	byID                  map[string]record
	snapshotInterval      time.Duration
	topCacheSize          int
	metricsUpdateInterval time.Duration

	snapshot atomic.Pointer[Snapshot]

	// Background goroutine management
	wg       sync.WaitGroup
	stopChan chan struct{}
}

// NewTreapStore constructs a treap store with configuration options.
func NewTreapStore(ctx context.Context, opts ...Option) *TreapStore {
	s := &TreapStore{
		snapshotInterval:      1 * time.Second,
		topCacheSize:          500,
		metricsUpdateInterval: 5 * time.Second,
		byID:                  make(map[string]record),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.stopChan = make(chan struct{})
	s.startPeriodicSnapshots(ctx)
	s.startMetricsUpdater(ctx)

	return s
}

// startPeriodicSnapshots publishes snapshots at the configured interval.
func (s *TreapStore) startPeriodicSnapshots(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.snapshotInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				s.publishSnapshot()
			}
		}
	}()
}

func (s *TreapStore) publishSnapshot() {
	start := time.Now()
	s.mu.RLock()
	s.publishSnapshotInternal()
	s.mu.RUnlock()

	ms := float64(time.Since(start).Milliseconds())
	metrics.RecordRepositorySnapshotRebuildDuration(ms)
	metrics.UpdateRepositorySnapshotLastDurationMs(ms)
	metrics.UpdateRepositorySnapshotLastUnix(float64(time.Now().Unix()))
	metrics.IncrementRepositorySnapshotCount()
}

// Close shuts down the background goroutines.
func (s *TreapStore) Close() error {
	select {
	case <-s.stopChan:
		// already closed
	default:
		close(s.stopChan)
	}
	s.wg.Wait()
	return nil
}

// Record implements Store.Record with O(log n) expected time.
// A hand keeps its strongest evaluation: re-recording the same hand with an
// equal or weaker strength is a no-op, which makes replays idempotent.
func (s *TreapStore) Record(ctx context.Context, ev model.Evaluation) (bool, error) {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryUpdateLatency(float64(time.Since(start).Milliseconds()))
	}()

	isNewHand := false

	s.mu.Lock()
	if old, ok := s.byID[ev.HandID]; ok {
		if ev.Strength <= old.strength {
			s.mu.Unlock()
			return false, nil
		}
		s.root = deleteNode(s.root, ev.HandID, old.strength)
	} else {
		isNewHand = true
	}
	s.byID[ev.HandID] = record{
		strength:    ev.Strength,
		category:    ev.Category,
		description: ev.Description,
		street:      ev.Street,
		cardsUsed:   ev.CardsUsed,
	}
	s.root = insert(s.root, ev.HandID, ev.Strength)
	s.mu.Unlock()

	if isNewHand {
		metrics.UpdateRepositoryRecordsTotal(s.Count(ctx))
	}

	return true, nil
}

// Best returns the current showcase rank and evaluation for a hand.
func (s *TreapStore) Best(ctx context.Context, handID string) (Entry, error) {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.byID[handID]; !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return Entry{}, ErrNotFound
	}

	allEntries := make([]Entry, 0, len(s.byID))
	collectAll(s.root, s.byID, &allEntries)

	sortEntries(allEntries)
	assignRanksWithTies(allEntries)

	for _, entry := range allEntries {
		if entry.HandID == handID {
			return entry, nil
		}
	}

	return Entry{}, ErrNotFound
}

// TopN returns the top N entries ordered by strength desc.
func (s *TreapStore) TopN(ctx context.Context, n int) ([]Entry, error) {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	if n < 1 {
		metrics.RecordErrorByComponent("repository", "invalid_limit")
		return nil, ErrInvalidLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, 0, n)
	collectTopN(s.root, n, s.byID, &out)

	assignRanksWithTies(out)
	return out, nil
}

// Count returns the total number of hands tracked.
func (s *TreapStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// publishSnapshotInternal rebuilds and publishes a new snapshot.
// Assumes the read lock is held.
func (s *TreapStore) publishSnapshotInternal() {
	topCache := make([]Entry, 0, s.topCacheSize)
	collectTopN(s.root, s.topCacheSize, s.byID, &topCache)

	rankByHand := make(map[string]int, len(s.byID))
	strengthByHand := make(map[string]uint32, len(s.byID))

	allEntries := make([]Entry, 0, len(s.byID))
	collectAll(s.root, s.byID, &allEntries)
	assignRanksWithTies(allEntries)

	for _, entry := range allEntries {
		rankByHand[entry.HandID] = entry.Rank
		strengthByHand[entry.HandID] = entry.Strength
	}

	for i := range topCache {
		if rank, exists := rankByHand[topCache[i].HandID]; exists {
			topCache[i].Rank = rank
		}
	}

	s.snapshot.Store(&Snapshot{
		RankByHand:     rankByHand,
		StrengthByHand: strengthByHand,
		TopCache:       topCache,
	})
}

func (s *TreapStore) startMetricsUpdater(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.metricsUpdateInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				s.updateMetrics()
			}
		}
	}()
}

func (s *TreapStore) updateMetrics() {
	s.mu.RLock()
	recordCount := len(s.byID)
	s.mu.RUnlock()

	metrics.UpdateRepositoryRecordsTotal(recordCount)
	metrics.UpdateTotalHands(recordCount)
}

// collectAll appends all entries in rank order (strongest first).
func collectAll(n *node, byID map[string]record, out *[]Entry) {
	if n == nil {
		return
	}
	collectAll(n.left, byID, out)
	if rec, ok := byID[n.id]; ok {
		*out = append(*out, entryFromRecord(n.id, rec))
	}
	collectAll(n.right, byID, out)
}

// sortEntries sorts entries by strength desc, then handID asc, matching
// the treap ordering.
func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Strength != entries[j].Strength {
			return entries[i].Strength > entries[j].Strength
		}
		return entries[i].HandID < entries[j].HandID
	})
}

// assignRanksWithTies assigns ranks where hands with equal strength share a
// rank, and the next distinct strength takes the next consecutive rank.
func assignRanksWithTies(entries []Entry) {
	if len(entries) == 0 {
		return
	}

	currentRank := 1
	for i := 0; i < len(entries); i++ {
		entries[i].Rank = currentRank

		sameStrengthCount := 1
		for j := i + 1; j < len(entries) && entries[j].Strength == entries[i].Strength; j++ {
			entries[j].Rank = currentRank
			sameStrengthCount++
		}

		currentRank++
		i += sameStrengthCount - 1
	}
}
