package rendez

import "testing"

func TestRingBufferWrapsAround(t *testing.T) {
	b := newRingBuffer[int](3)
	b.push(1)
	b.push(2)
	b.push(3)
	if !b.isFull() {
		t.Fatal("expected buffer to be full")
	}
	if got := b.pop(); got != 1 {
		t.Fatalf("pop() = %d, want 1", got)
	}
	b.push(4) // wraps into the slot pop() just freed
	for _, want := range []int{2, 3, 4} {
		if got := b.pop(); got != want {
			t.Fatalf("pop() = %d, want %d", got, want)
		}
	}
	if b.size() != 0 {
		t.Fatalf("size() = %d, want 0", b.size())
	}
}

func TestRingBufferFront(t *testing.T) {
	b := newRingBuffer[string](2)
	b.push("a")
	b.push("b")
	if got := b.front(); got != "a" {
		t.Fatalf("front() = %q, want %q", got, "a")
	}
	if b.size() != 2 {
		t.Fatalf("size() = %d, want 2", b.size())
	}
}
