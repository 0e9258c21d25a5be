package gpxexport

import (
	"bytes"
	"testing"
)

func TestTrackProducesXML(t *testing.T) {
	pts := []Point{
		{Lat: 48.0, Lon: 9.0, ElevationM: 100},
		{Lat: 48.1, Lon: 9.1, ElevationM: 150},
	}
	data, err := Track("test route", pts)
	if err != nil {
		t.Fatalf("Track: %v", err)
	}
	if !bytes.Contains(data, []byte("<gpx")) {
		t.Errorf("output does not look like GPX XML: %s", data)
	}
}

func TestTrackRejectsEmptyPoints(t *testing.T) {
	if _, err := Track("empty", nil); err == nil {
		t.Fatal("expected error for empty point list")
	}
}
