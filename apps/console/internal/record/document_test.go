package record

import (
	"errors"
	"testing"

	"github.com/lvdund/ueprofiles/pkg/model"
)

func TestBlank(t *testing.T) {
	doc := Blank()

	if Identifier(doc) != "" {
		t.Errorf("Identifier() = %q, want empty", Identifier(doc))
	}
	for _, field := range []string{FieldConfiguredSlice, FieldDefaultSlice, FieldGnbSearchList, FieldProfiles, FieldSessions} {
		items, ok := AsSequence(doc[field])
		if !ok {
			t.Errorf("%s is not a sequence: %T", field, doc[field])
			continue
		}
		if len(items) != 0 {
			t.Errorf("%s length = %d, want 0", field, len(items))
		}
	}

	// ネストしたオブジェクトは全ての葉を持つ
	for _, path := range []string{"plmnid.mcc", "plmnid.mnc", "integrity.IA3", "ciphering.EA1", "uacAcc.normalClass", "uacAcc.class15", "uacAic.mps", "integrityMaxRate.downlink"} {
		if _, ok := Get(doc, MustParsePath(path)); !ok {
			t.Errorf("Blank() is missing %s", path)
		}
	}
	if _, ok := doc[FieldCreatedAt]; ok {
		t.Error("Blank() should not carry createdAt")
	}
}

func TestBlankIsFresh(t *testing.T) {
	a := Blank()
	a["amf"] = "changed"
	if Blank()["amf"] != "" {
		t.Error("Blank() should return a new document each call")
	}
}

func TestProfileRoundTrip(t *testing.T) {
	p := model.NewUEProfile("imsi-208930000000001")
	p.PlmnID = model.PlmnID{Mcc: "208", Mnc: "93"}
	p.ConfiguredSlice = []model.Snssai{{Sst: 1, Sd: "010203"}}
	p.Sessions = []model.Session{{Type: "IPv4", Apn: "internet", Slice: model.Snssai{Sst: 1, Sd: "0x010203"}}}

	doc, err := FromProfile(p)
	if err != nil {
		t.Fatalf("FromProfile() error = %v", err)
	}
	if String(doc, "plmnid.mcc") != "208" {
		t.Errorf("plmnid.mcc = %q", String(doc, "plmnid.mcc"))
	}

	got, err := ToProfile(doc)
	if err != nil {
		t.Fatalf("ToProfile() error = %v", err)
	}
	if got.SUPI != p.SUPI {
		t.Errorf("SUPI = %q, want %q", got.SUPI, p.SUPI)
	}
	if len(got.Sessions) != 1 || got.Sessions[0].Slice.Sd != "0x010203" {
		t.Errorf("Sessions = %+v", got.Sessions)
	}
}

func TestToProfileNormalizes(t *testing.T) {
	got, err := ToProfile(Document{"supi": "imsi-1"})
	if err != nil {
		t.Fatalf("ToProfile() error = %v", err)
	}
	if got.Profiles == nil || got.GnbSearchList == nil {
		t.Error("ToProfile() should normalize nil slices")
	}
}

func TestDecode(t *testing.T) {
	doc, err := Decode([]byte(`{"supi":"imsi-1","createdAt":"2024-01-01T00:00:00Z","extra":{"x":1}}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if Identifier(doc) != "imsi-1" {
		t.Errorf("Identifier() = %q", Identifier(doc))
	}
	if CreatedAt(doc) != "2024-01-01T00:00:00Z" {
		t.Errorf("CreatedAt() = %q", CreatedAt(doc))
	}
	if Int(doc, "extra.x") != 1 {
		t.Errorf("extra.x = %d, want 1", Int(doc, "extra.x"))
	}

	if _, err := Decode([]byte(`[1,2]`)); err == nil {
		t.Error("Decode() expected error for non-object")
	}
}

func TestAccessors(t *testing.T) {
	doc := Document{
		"protectionScheme": float64(1),
		"opType":           "OPC",
		"integrity":        map[string]any{"IA1": true},
		"gnbSearchList":    []string{"10.0.0.2"},
	}

	if Int(doc, "protectionScheme") != 1 {
		t.Errorf("Int() = %d, want 1", Int(doc, "protectionScheme"))
	}
	if String(doc, "protectionScheme") != "1" {
		t.Errorf("String() = %q, want 1", String(doc, "protectionScheme"))
	}
	if !Bool(doc, "integrity.IA1") {
		t.Error("Bool(integrity.IA1) = false, want true")
	}
	if Bool(doc, "integrity.IA2") {
		t.Error("Bool(integrity.IA2) = true, want false")
	}
	if items := Items(doc, "gnbSearchList"); len(items) != 1 || items[0] != "10.0.0.2" {
		t.Errorf("Items() = %v", items)
	}
	if Items(doc, "opType") != nil {
		t.Error("Items() on scalar should be nil")
	}
	if String(doc, "a..b") != "" {
		t.Error("String() on malformed path should be empty")
	}
}

func TestCheckItem(t *testing.T) {
	tests := []struct {
		name  string
		field string
		item  any
		want  error
	}{
		{"slice ok", FieldConfiguredSlice, NewSlice(), nil},
		{"profile ok", FieldProfiles, NewKeyProfile(), nil},
		{"session ok", FieldSessions, NewSession(), nil},
		{"slice extra key", FieldDefaultSlice, map[string]any{"sst": 1, "sd": "", "x": 1}, ErrShapeMismatch},
		{"slice missing key", FieldDefaultSlice, map[string]any{"sst": 1}, ErrShapeMismatch},
		{"slice scalar", FieldDefaultSlice, "010203", ErrShapeMismatch},
		{"session bad slice", FieldSessions, map[string]any{"type": "", "apn": "", "slice": map[string]any{"sst": 1}}, ErrShapeMismatch},
		{"gnb any", FieldGnbSearchList, "10.0.0.2", nil},
		{"unknown field", "custom", map[string]any{"x": 1}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckItem(tt.field, tt.item)
			if tt.want == nil {
				if err != nil {
					t.Errorf("CheckItem() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("CheckItem() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDefaultItem(t *testing.T) {
	for _, field := range []string{FieldConfiguredSlice, FieldDefaultSlice, FieldProfiles, FieldSessions} {
		item, ok := DefaultItem(field)
		if !ok {
			t.Errorf("DefaultItem(%s) ok = false", field)
			continue
		}
		if err := CheckItem(field, item); err != nil {
			t.Errorf("DefaultItem(%s) does not match shape: %v", field, err)
		}
	}

	if item, ok := DefaultItem(FieldGnbSearchList); !ok || item != "" {
		t.Errorf("DefaultItem(gnbSearchList) = %v, %v", item, ok)
	}
	if _, ok := DefaultItem("unknown"); ok {
		t.Error("DefaultItem(unknown) ok = true, want false")
	}

	a, _ := DefaultItem(FieldSessions)
	a.(map[string]any)["apn"] = "changed"
	b, _ := DefaultItem(FieldSessions)
	if b.(map[string]any)["apn"] != "" {
		t.Error("DefaultItem() should return a fresh value")
	}
}

func TestHasSubfield(t *testing.T) {
	if !HasSubfield(FieldProfiles, "scheme") {
		t.Error("profiles should have scheme")
	}
	if HasSubfield(FieldProfiles, "sst") {
		t.Error("profiles should not have sst")
	}
	if !HasSubfield("unknown", "anything") {
		t.Error("unknown collection accepts any subfield")
	}
}
