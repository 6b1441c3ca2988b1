package market

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func obsAt(symbol string, price float64, n int) Observation {
	return Observation{
		Symbol:    symbol,
		Price:     price,
		Volume:    1,
		Timestamp: time.Unix(int64(n), 0),
	}
}

func TestWindowCapacityAndOrder(t *testing.T) {
	w := NewWindow(5)
	for i := 0; i < 12; i++ {
		w.Push(obsAt("AAPL", float64(i), i))
	}

	if w.Len() != 5 {
		t.Fatalf("expected window size 5, got %d", w.Len())
	}
	snap := w.Snapshot()
	for i, obs := range snap {
		want := float64(7 + i)
		if obs.Price != want {
			t.Fatalf("expected price %.0f at position %d, got %.0f", want, i, obs.Price)
		}
	}
}

func TestWindowLatestLimits(t *testing.T) {
	w := NewWindow(10)
	for i := 0; i < 4; i++ {
		w.Push(obsAt("MSFT", float64(100+i), i))
	}

	if got := w.Latest(0); len(got) != 0 {
		t.Fatalf("expected empty slice for limit 0, got %d entries", len(got))
	}
	if got := w.Latest(100); len(got) != 4 {
		t.Fatalf("expected whole window for oversized limit, got %d entries", len(got))
	}
	got := w.Latest(2)
	if len(got) != 2 || got[0].Price != 102 || got[1].Price != 103 {
		t.Fatalf("expected suffix [102 103], got %+v", got)
	}
}

func TestWindowEmpty(t *testing.T) {
	w := NewWindow(3)
	if !w.IsEmpty() {
		t.Fatalf("fresh window should be empty")
	}
	w.Push(obsAt("TSLA", 250, 0))
	if w.IsEmpty() {
		t.Fatalf("window with one entry should not be empty")
	}
}

func TestWindowInvalidCapacityPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for zero capacity")
		}
	}()
	NewWindow(0)
}

func TestWindowConcurrentReaders(t *testing.T) {
	w := NewWindow(50)
	done := make(chan struct{})

	var wg sync.WaitGroup
	for r := 0; r < 100; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				snap := w.Snapshot()
				if len(snap) > w.Cap() {
					t.Errorf("snapshot larger than capacity: %d", len(snap))
					return
				}
				for i := 1; i < len(snap); i++ {
					if snap[i].Price != snap[i-1].Price+1 {
						t.Errorf("snapshot not a contiguous push range at %d", i)
						return
					}
				}
			}
		}()
	}

	for i := 0; i < 1000; i++ {
		w.Push(obsAt("NVDA", float64(i), i))
	}
	close(done)
	wg.Wait()

	if w.Len() != 50 {
		t.Fatalf("expected full window after 1000 pushes, got %d", w.Len())
	}
}

func TestWindowStarvesQuietSymbol(t *testing.T) {
	w := NewWindow(4)
	w.Push(obsAt("JPM", 160, 0))
	for i := 1; i <= 4; i++ {
		w.Push(obsAt("META", float64(480+i), i))
	}
	for _, obs := range w.Snapshot() {
		if obs.Symbol == "JPM" {
			t.Fatalf("expected JPM evicted by busier symbol")
		}
	}
}

func ExampleWindow_Latest() {
	w := NewWindow(3)
	for i, px := range []float64{1, 2, 3, 4} {
		w.Push(Observation{Symbol: "AAPL", Price: px, Timestamp: time.Unix(int64(i), 0)})
	}
	for _, obs := range w.Latest(2) {
		fmt.Println(obs.Price)
	}
	// Output:
	// 3
	// 4
}
