package rotation

import (
	"sync"
	"testing"

	apperrors "github.com/avenkat/caprelay/internal/errors"
)

func TestNextRotatesInBlocksOfThree(t *testing.T) {
	r := New([]string{"/leech -a", "/leech -b"})

	want := []string{
		"/leech -a", "/leech -a", "/leech -a",
		"/leech -b", "/leech -b", "/leech -b",
		"/leech -a", "/leech -a", "/leech -a",
	}

	for i, expected := range want {
		if got := r.Next(); got != expected {
			t.Errorf("message %d: got %q, want %q", i+1, got, expected)
		}
	}

	if r.Counter() != uint64(len(want)) {
		t.Errorf("counter = %d, want %d", r.Counter(), len(want))
	}
}

func TestNextEmptyListUsesDefault(t *testing.T) {
	r := New(nil)

	if got := r.Next(); got != DefaultPrefix {
		t.Errorf("got %q, want %q", got, DefaultPrefix)
	}
	if r.Counter() != 1 {
		t.Errorf("counter = %d, want 1", r.Counter())
	}
}

func TestPeekDoesNotAdvance(t *testing.T) {
	r := New([]string{"/leech -a"})

	if got := r.Peek(); got != "/leech -a" {
		t.Errorf("Peek() = %q, want %q", got, "/leech -a")
	}
	if r.Counter() != 0 {
		t.Errorf("counter advanced by Peek: %d", r.Counter())
	}
}

func TestAddRejectsDuplicate(t *testing.T) {
	r := New([]string{"/leech -a"})

	if err := r.Add("/leech -b"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := r.Add("/leech -a")
	if err == nil {
		t.Fatal("expected duplicate error, got nil")
	}
	if apperrors.GetErrorCode(err) != apperrors.CodeDuplicatePrefix {
		t.Errorf("code = %v, want %v", apperrors.GetErrorCode(err), apperrors.CodeDuplicatePrefix)
	}
	if got := r.List(); len(got) != 2 {
		t.Errorf("list length = %d, want 2", len(got))
	}
}

func TestDeleteByIndex(t *testing.T) {
	r := New([]string{"/leech -a", "/leech -b", "/leech -c"})

	removed, err := r.Delete(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed != "/leech -b" {
		t.Errorf("removed = %q, want %q", removed, "/leech -b")
	}

	got := r.List()
	if len(got) != 2 || got[0] != "/leech -a" || got[1] != "/leech -c" {
		t.Errorf("list after delete = %v", got)
	}
}

func TestDeleteOutOfRange(t *testing.T) {
	r := New([]string{"/leech -a"})

	for _, index := range []int{-1, 1, 5} {
		if _, err := r.Delete(index); err == nil {
			t.Errorf("Delete(%d): expected error, got nil", index)
		} else if apperrors.GetErrorCode(err) != apperrors.CodeIndexRange {
			t.Errorf("Delete(%d): code = %v, want %v", index, apperrors.GetErrorCode(err), apperrors.CodeIndexRange)
		}
	}
}

func TestAddThenDeleteAppendedRestoresList(t *testing.T) {
	original := []string{"/leech -a", "/leech -b"}
	r := New(original)

	if err := r.Add("/leech -c"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.Delete(len(original)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := r.List()
	if len(got) != len(original) {
		t.Fatalf("list = %v, want %v", got, original)
	}
	for i := range original {
		if got[i] != original[i] {
			t.Errorf("list[%d] = %q, want %q", i, got[i], original[i])
		}
	}
}

func TestListReturnsCopy(t *testing.T) {
	r := New([]string{"/leech -a"})

	list := r.List()
	list[0] = "mutated"

	if got := r.List()[0]; got != "/leech -a" {
		t.Errorf("internal list mutated through List() copy: %q", got)
	}
}

func TestRestore(t *testing.T) {
	r := New([]string{"/leech -a"})
	r.Next()

	r.Restore([]string{"/leech -x", "/leech -y"}, 5)

	if r.Counter() != 5 {
		t.Errorf("counter = %d, want 5", r.Counter())
	}
	// Counter 5 is the sixth message, still inside the second block.
	if got := r.Next(); got != "/leech -y" {
		t.Errorf("got %q, want %q", got, "/leech -y")
	}
}

func TestNextConcurrent(t *testing.T) {
	r := New([]string{"/leech -a", "/leech -b"})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Next()
		}()
	}
	wg.Wait()

	if r.Counter() != 50 {
		t.Errorf("counter = %d, want 50", r.Counter())
	}
}

func TestSnapshot(t *testing.T) {
	r := New([]string{"/leech -a", "/leech -b"})
	r.Next()
	r.Next()

	prefixes, counter := r.Snapshot()
	if len(prefixes) != 2 || prefixes[0] != "/leech -a" || prefixes[1] != "/leech -b" {
		t.Errorf("prefixes = %v", prefixes)
	}
	if counter != 2 {
		t.Errorf("counter = %d, want 2", counter)
	}

	prefixes[0] = "mutated"
	if got := r.List()[0]; got != "/leech -a" {
		t.Errorf("internal list mutated through Snapshot copy: %q", got)
	}
}
