package locking

import (
	"sync"
	"testing"

	"github.com/google/uuid"
)

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	km := NewKeyedMutex()
	key := uuid.New()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = km.Do(key, func() error {
				counter++
				return nil
			})
		}()
	}
	wg.Wait()

	if counter != 100 {
		t.Fatalf("expected 100 increments, got %d", counter)
	}
}

func TestKeyedMutex_IndependentKeys(t *testing.T) {
	km := NewKeyedMutex()
	a, b := uuid.New(), uuid.New()

	km.Lock(a)
	done := make(chan struct{})
	go func() {
		// Must not block on a different key.
		km.Lock(b)
		km.Unlock(b)
		close(done)
	}()
	<-done
	km.Unlock(a)
}

func TestKeyedMutex_DoPropagatesError(t *testing.T) {
	km := NewKeyedMutex()
	key := uuid.New()

	want := "boom"
	err := km.Do(key, func() error { return errTest(want) })
	if err == nil || err.Error() != want {
		t.Fatalf("expected %q, got %v", want, err)
	}

	// Lock must be released after an error.
	if err := km.Do(key, func() error { return nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

type errTest string

func (e errTest) Error() string { return string(e) }
