package numerator

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
)

// Mock objects
type mockRow struct {
	val int64
	err error
}

func (m *mockRow) Scan(dest ...any) error {
	if m.err != nil {
		return m.err
	}
	if len(dest) > 0 {
		if ptr, ok := dest[0].(*int64); ok {
			*ptr = m.val
		}
	}
	return nil
}

type mockQuerier struct {
	mu           sync.Mutex
	currentValue int64
	lastKey      string
}

func (m *mockQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Strict passes (key); cached passes (key, increment).
	var increment int64 = 1
	if len(args) == 2 {
		if val, ok := args[1].(int64); ok {
			increment = val
		}
	}
	if len(args) > 0 {
		if key, ok := args[0].(string); ok {
			m.lastKey = key
		}
	}

	m.currentValue += increment
	return &mockRow{val: m.currentValue}
}

func TestNextRef_Strict(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()
	cfg := DefaultConfig("invoice")
	period := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	ref, err := svc.NextRef(ctx, cfg, nil, period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref != "00001" {
		t.Errorf("expected 00001, got %s", ref)
	}

	ref, err = svc.NextRef(ctx, cfg, nil, period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref != "00002" {
		t.Errorf("expected 00002, got %s", ref)
	}

	// References stay raw: formatting to FK/YEAR/ref happens downstream.
	if q.lastKey != "invoice_2026" {
		t.Errorf("expected key invoice_2026, got %s", q.lastKey)
	}
}

func TestNextRef_YearlyReset(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()
	cfg := DefaultConfig("invoice")

	_, err := svc.NextRef(ctx, cfg, nil, time.Date(2026, 12, 31, 23, 59, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.lastKey != "invoice_2026" {
		t.Errorf("expected key invoice_2026, got %s", q.lastKey)
	}

	_, err = svc.NextRef(ctx, cfg, nil, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.lastKey != "invoice_2027" {
		t.Errorf("expected key invoice_2027, got %s", q.lastKey)
	}
}

func TestNextRef_Cached(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()
	cfg := DefaultConfig("order")

	opts := &Options{
		Strategy:  StrategyCached,
		RangeSize: 10,
	}
	period := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	// First call reserves 1..10 in one round trip.
	ref, err := svc.NextRef(ctx, cfg, opts, period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref != "00001" {
		t.Errorf("expected 00001, got %s", ref)
	}
	if q.currentValue != 10 {
		t.Errorf("expected DB value 10, got %d", q.currentValue)
	}

	// Subsequent calls inside the range never hit the DB.
	for i := 2; i <= 10; i++ {
		ref, err = svc.NextRef(ctx, cfg, opts, period)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ref != "00010" {
		t.Errorf("expected 00010, got %s", ref)
	}
	if q.currentValue != 10 {
		t.Errorf("expected DB value still 10, got %d", q.currentValue)
	}

	// Range exhausted: next call reserves 11..20.
	ref, err = svc.NextRef(ctx, cfg, opts, period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref != "00011" {
		t.Errorf("expected 00011, got %s", ref)
	}
	if q.currentValue != 20 {
		t.Errorf("expected DB value 20, got %d", q.currentValue)
	}
}

func TestNext_SequencerContract(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)

	ref, err := svc.Next(context.Background(), "invoice", time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref != "00001" {
		t.Errorf("expected 00001, got %s", ref)
	}
}

func TestNextRef_PadWidth(t *testing.T) {
	q := &mockQuerier{currentValue: 891}
	svc := New(q)
	cfg := Config{Series: "invoice", PadWidth: 4, ResetPeriod: "year"}

	ref, err := svc.NextRef(context.Background(), cfg, nil, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref != "0892" {
		t.Errorf("expected 0892, got %s", ref)
	}
}

func TestNextRef_Concurrent(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	cfg := DefaultConfig("invoice")
	period := time.Now()

	var wg sync.WaitGroup
	seen := make(chan string, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ref, err := svc.NextRef(context.Background(), cfg, &Options{Strategy: StrategyCached, RangeSize: 10}, period)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			seen <- ref
		}()
	}
	wg.Wait()
	close(seen)

	unique := make(map[string]bool)
	for ref := range seen {
		if unique[ref] {
			t.Errorf("duplicate reference allocated: %s", ref)
		}
		unique[ref] = true
	}
	if len(unique) != 50 {
		t.Errorf("expected 50 unique references, got %d", len(unique))
	}
}

func TestSetNext(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	cfg := DefaultConfig("invoice")
	period := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	if err := svc.SetNext(context.Background(), cfg, period, 500); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.lastKey != "invoice_2026" {
		t.Errorf("expected key invoice_2026, got %s", q.lastKey)
	}
}
