package model

import (
	"encoding/json"
	"testing"
)

func TestNewUEProfile(t *testing.T) {
	p := NewUEProfile("imsi-208930000000001")

	if p.SUPI != "imsi-208930000000001" {
		t.Errorf("SUPI = %q, want %q", p.SUPI, "imsi-208930000000001")
	}
	if p.ConfiguredSlice == nil || p.DefaultSlice == nil || p.GnbSearchList == nil ||
		p.Profiles == nil || p.Sessions == nil {
		t.Error("array fields must be initialized to empty slices")
	}
}

func TestUEProfileJSONArraysNeverNull(t *testing.T) {
	data, err := json.Marshal(NewUEProfile(""))
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}

	for _, key := range []string{"configuredSlice", "defaultSlice", "gnbSearchList", "profiles", "sessions"} {
		if _, ok := raw[key].([]any); !ok {
			t.Errorf("%s = %v, want empty array", key, raw[key])
		}
	}
	if _, ok := raw["createdAt"]; ok {
		t.Error("createdAt should be omitted when empty")
	}
}

func TestUEProfileNormalize(t *testing.T) {
	var p UEProfile
	if err := json.Unmarshal([]byte(`{"supi":"imsi-1","sessions":null}`), &p); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}

	p.Normalize()

	if p.Sessions == nil || len(p.Sessions) != 0 {
		t.Errorf("Sessions = %v, want empty slice", p.Sessions)
	}
	if p.GnbSearchList == nil {
		t.Error("GnbSearchList should not be nil after Normalize")
	}
}

func TestUEProfileClone(t *testing.T) {
	orig := NewUEProfile("imsi-208930000000001")
	orig.ConfiguredSlice = append(orig.ConfiguredSlice, Snssai{Sst: 1, Sd: "010203"})
	orig.Sessions = append(orig.Sessions, Session{Type: "IPv4", Apn: "internet"})

	c := orig.Clone()
	c.ConfiguredSlice[0].Sd = "ffffff"
	c.Sessions[0].Apn = "ims"

	if orig.ConfiguredSlice[0].Sd != "010203" {
		t.Errorf("original ConfiguredSlice modified: %v", orig.ConfiguredSlice)
	}
	if orig.Sessions[0].Apn != "internet" {
		t.Errorf("original Sessions modified: %v", orig.Sessions)
	}
}
