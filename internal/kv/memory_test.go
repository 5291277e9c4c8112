package kv

import (
	"bytes"
	"context"
	"testing"
)

// exerciseStore runs the Store contract against s.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok=%v err=%v, want ok=false err=nil", ok, err)
	}

	if err := s.Set(ctx, "k", []byte("v1")); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	got, ok, err := s.Get(ctx, "k")
	if err != nil || !ok || !bytes.Equal(got, []byte("v1")) {
		t.Fatalf("Get(k) = %q, %v, %v", got, ok, err)
	}

	if err := s.Set(ctx, "k", []byte("v2")); err != nil {
		t.Fatalf("overwrite Set() failed: %v", err)
	}
	got, _, _ = s.Get(ctx, "k")
	if !bytes.Equal(got, []byte("v2")) {
		t.Errorf("after overwrite Get(k) = %q, want v2", got)
	}

	if err := s.Set(ctx, "empty", []byte{}); err != nil {
		t.Fatalf("Set(empty) failed: %v", err)
	}
	if got, ok, _ := s.Get(ctx, "empty"); !ok || len(got) != 0 {
		t.Errorf("Get(empty) = %q, %v", got, ok)
	}

	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "k"); ok {
		t.Error("key still present after Delete")
	}
	if err := s.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete(missing) should be a no-op: %v", err)
	}
}

func TestMemory_Contract(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestMemory_CopiesValues(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	in := []byte("abc")
	if err := m.Set(ctx, "k", in); err != nil {
		t.Fatal(err)
	}
	in[0] = 'x'

	out, _, _ := m.Get(ctx, "k")
	if string(out) != "abc" {
		t.Errorf("stored value changed with caller's slice: %q", out)
	}
	out[0] = 'y'
	again, _, _ := m.Get(ctx, "k")
	if string(again) != "abc" {
		t.Errorf("stored value changed via returned slice: %q", again)
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
}

func TestMemory_Closed(t *testing.T) {
	m := NewMemory()
	m.Close()
	if err := m.Set(context.Background(), "k", nil); err != ErrClosed {
		t.Errorf("Set() after Close = %v, want ErrClosed", err)
	}
	if err := m.Delete(context.Background(), "k"); err != ErrClosed {
		t.Errorf("Delete() after Close = %v, want ErrClosed", err)
	}
}
