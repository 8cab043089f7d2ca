package snapshot

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
	}{
		{"greeting", true},
		{"step-2_final.v1", true},
		{"A9", true},
		{"", false},
		{".hidden", false},
		{"../etc", false},
		{"a/b", false},
		{"with space", false},
		{"ünicode", false},
		{strings.Repeat("x", MaxNameLength), true},
		{strings.Repeat("x", MaxNameLength+1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.name)
			if tt.ok && err != nil {
				t.Errorf("ValidateName(%q) = %v, want nil", tt.name, err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidName) {
				t.Errorf("ValidateName(%q) = %v, want ErrInvalidName", tt.name, err)
			}
		})
	}
}

func TestDiskStore(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "snaps")

	store, err := NewDiskStore(dir)
	if err != nil {
		t.Fatalf("NewDiskStore() error: %v", err)
	}
	if store.Dir() != dir {
		t.Errorf("Dir() = %q", store.Dir())
	}

	if _, err := store.Get(ctx, "greeting"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) = %v, want ErrNotFound", err)
	}

	if err := store.Put(ctx, "greeting", []byte("Hello World!<div></div>")); err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	if err := store.Put(ctx, "greeting", []byte("<div></div>Hello World!")); err != nil {
		t.Fatalf("Put(overwrite) error: %v", err)
	}
	got, err := store.Get(ctx, "greeting")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if string(got) != "<div></div>Hello World!" {
		t.Errorf("Get() = %q", got)
	}

	if err := store.Put(ctx, "../escape", []byte("x")); !errors.Is(err, ErrInvalidName) {
		t.Errorf("Put(../escape) = %v, want ErrInvalidName", err)
	}
	if _, err := store.Get(ctx, "a/b"); !errors.Is(err, ErrInvalidName) {
		t.Errorf("Get(a/b) = %v, want ErrInvalidName", err)
	}
}

func TestDiskStoreList(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewDiskStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"b", "a"} {
		if err := store.Put(ctx, name, []byte(name+name)); err != nil {
			t.Fatal(err)
		}
	}
	// Foreign files are ignored.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.html"), 0755); err != nil {
		t.Fatal(err)
	}

	infos, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(infos) != 2 || infos[0].Name != "a" || infos[1].Name != "b" {
		t.Fatalf("List() = %+v", infos)
	}
	if infos[0].Size != 2 || infos[0].ModTime.IsZero() {
		t.Errorf("info = %+v", infos[0])
	}
}

func TestDiskStoreCanceled(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := store.Put(ctx, "a", []byte("x")); !errors.Is(err, context.Canceled) {
		t.Errorf("Put() = %v, want context.Canceled", err)
	}
	if _, err := store.Get(ctx, "a"); !errors.Is(err, context.Canceled) {
		t.Errorf("Get() = %v, want context.Canceled", err)
	}
}
