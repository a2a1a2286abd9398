package assets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/archsketch/archsketch/pkg/errors"
)

func TestDirResolve(t *testing.T) {
	root := t.TempDir()
	iconPath := filepath.Join(root, "shopify.png")
	if err := os.WriteFile(iconPath, []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(root, "subdir"), 0o755); err != nil {
		t.Fatal(err)
	}

	store := NewDir(root)

	t.Run("resolves against root", func(t *testing.T) {
		got, err := store.Resolve("shopify.png")
		if err != nil {
			t.Fatalf("Resolve = %v", err)
		}
		if !filepath.IsAbs(got) {
			t.Errorf("Resolve = %q, want absolute path", got)
		}
		if filepath.Base(got) != "shopify.png" {
			t.Errorf("Resolve = %q, want path ending in shopify.png", got)
		}
	})

	t.Run("resolves absolute reference", func(t *testing.T) {
		got, err := store.Resolve(iconPath)
		if err != nil {
			t.Fatalf("Resolve = %v", err)
		}
		if got != iconPath {
			t.Errorf("Resolve = %q, want %q", got, iconPath)
		}
	})

	t.Run("missing reference", func(t *testing.T) {
		_, err := store.Resolve("missing.png")
		if !errors.Is(err, errors.ErrCodeAssetNotFound) {
			t.Errorf("Resolve = %v, want %v", err, errors.ErrCodeAssetNotFound)
		}
	})

	t.Run("directory is not an asset", func(t *testing.T) {
		_, err := store.Resolve("subdir")
		if !errors.Is(err, errors.ErrCodeAssetNotFound) {
			t.Errorf("Resolve(dir) = %v, want %v", err, errors.ErrCodeAssetNotFound)
		}
	})

	t.Run("empty reference", func(t *testing.T) {
		_, err := store.Resolve("")
		if !errors.Is(err, errors.ErrCodeAssetNotFound) {
			t.Errorf("Resolve(\"\") = %v, want %v", err, errors.ErrCodeAssetNotFound)
		}
	})
}

func TestDirResolveSearchOrder(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	for _, dir := range []string{first, second} {
		if err := os.WriteFile(filepath.Join(dir, "icon.png"), []byte("png"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	got, err := NewDir(first, second).Resolve("icon.png")
	if err != nil {
		t.Fatalf("Resolve = %v", err)
	}
	want, _ := filepath.Abs(filepath.Join(first, "icon.png"))
	if got != want {
		t.Errorf("Resolve = %q, want first root %q", got, want)
	}
}
