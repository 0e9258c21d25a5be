package elevation

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

func writeFlatTile(t *testing.T, dir string, latFloor, lonFloor int, meters int16) {
	t.Helper()
	buf := make([]byte, tileBytes)
	for i := 0; i < TileSize*TileSize; i++ {
		binary.BigEndian.PutUint16(buf[i*2:i*2+2], uint16(meters))
	}
	path := filepath.Join(dir, tileFilename(latFloor, lonFloor))
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("write tile: %v", err)
	}
}

func TestStoreElevationCmFlatTile(t *testing.T) {
	dir := t.TempDir()
	writeFlatTile(t, dir, 48, 9, 250)

	s := NewStore(dir)
	cm, err := s.ElevationCm(48.5, 9.5)
	if err != nil {
		t.Fatalf("ElevationCm: %v", err)
	}
	if cm != 25000 {
		t.Errorf("ElevationCm = %d, want 25000 (250m flat tile)", cm)
	}
}

func TestStoreCachesTiles(t *testing.T) {
	dir := t.TempDir()
	writeFlatTile(t, dir, 48, 9, 100)

	s := NewStore(dir)
	if _, err := s.ElevationCm(48.1, 9.1); err != nil {
		t.Fatalf("ElevationCm: %v", err)
	}
	if _, err := s.ElevationCm(48.9, 9.9); err != nil {
		t.Fatalf("ElevationCm: %v", err)
	}
	if s.CachedTiles() != 1 {
		t.Errorf("CachedTiles() = %d, want 1 (both queries hit the same tile)", s.CachedTiles())
	}
}

func TestStoreMissingTileIsFatal(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)
	if _, err := s.ElevationCm(10, 10); err == nil {
		t.Fatal("expected error for missing tile")
	}
}

func TestDefaultTileDir(t *testing.T) {
	got := DefaultTileDir("/data/graphs/bw-bicycle.fmi")
	want := "/data/graphs/srtm"
	if got != want {
		t.Errorf("DefaultTileDir = %q, want %q", got, want)
	}
}
