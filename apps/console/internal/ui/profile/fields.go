package profile

import (
	"fmt"

	"github.com/lvdund/ueprofiles/apps/console/internal/format"
	"github.com/lvdund/ueprofiles/apps/console/internal/record"
	"github.com/lvdund/ueprofiles/pkg/model"
)

// FieldKind はフォーム項目の入力種別を表す。
type FieldKind int

const (
	// KindText は文字列入力
	KindText FieldKind = iota
	// KindInt は整数入力
	KindInt
	// KindFlag はチェックボックス
	KindFlag
	// KindChoice は選択肢からの選択
	KindChoice
)

// ScalarField はフォーム項目と編集対象パスの対応を表す。
type ScalarField struct {
	Label   string
	Path    string
	Kind    FieldKind
	Width   int
	Options []string
}

// OpTypeOptions はopTypeの選択肢
var OpTypeOptions = []string{model.OpTypeOP, model.OpTypeOPC}

// SessionTypeOptions はPDUセッション種別の選択肢
var SessionTypeOptions = []string{"IPv4", "IPv6", "IPv4v6"}

// ScalarFields はフォームに表示するスカラー項目の一覧
var ScalarFields = []ScalarField{
	{Label: "SUPI", Path: record.FieldSUPI, Kind: KindText, Width: 24},
	{Label: "SUCI", Path: record.FieldSUCI, Kind: KindText, Width: 40},
	{Label: "MCC", Path: "plmnid.mcc", Kind: KindText, Width: 4},
	{Label: "MNC", Path: "plmnid.mnc", Kind: KindText, Width: 4},
	{Label: "Routing Indicator", Path: "routingIndicator", Kind: KindText, Width: 6},
	{Label: "HN Private Key", Path: "homeNetworkPrivateKey", Kind: KindText, Width: 66},
	{Label: "HN Public Key", Path: "homeNetworkPublicKey", Kind: KindText, Width: 66},
	{Label: "HN Public Key ID", Path: "homeNetworkPublicKeyId", Kind: KindInt, Width: 4},
	{Label: "Protection Scheme", Path: record.FieldProtectionScheme, Kind: KindInt, Width: 4},
	{Label: "Key", Path: "key", Kind: KindText, Width: 34},
	{Label: "OP", Path: "op", Kind: KindText, Width: 34},
	{Label: "OP Type", Path: record.FieldOpType, Kind: KindChoice, Options: OpTypeOptions},
	{Label: "AMF", Path: "amf", Kind: KindText, Width: 6},
	{Label: "IMEI", Path: "imei", Kind: KindText, Width: 17},
	{Label: "IMEISV", Path: "imeiSv", Kind: KindText, Width: 18},
	{Label: "IA1", Path: "integrity.IA1", Kind: KindFlag},
	{Label: "IA2", Path: "integrity.IA2", Kind: KindFlag},
	{Label: "IA3", Path: "integrity.IA3", Kind: KindFlag},
	{Label: "EA1", Path: "ciphering.EA1", Kind: KindFlag},
	{Label: "EA2", Path: "ciphering.EA2", Kind: KindFlag},
	{Label: "EA3", Path: "ciphering.EA3", Kind: KindFlag},
	{Label: "UAC MPS", Path: "uacAic.mps", Kind: KindFlag},
	{Label: "UAC MCS", Path: "uacAic.mcs", Kind: KindFlag},
	{Label: "UAC Normal Class", Path: "uacAcc.normalClass", Kind: KindInt, Width: 4},
	{Label: "UAC Class 11", Path: "uacAcc.class11", Kind: KindFlag},
	{Label: "UAC Class 12", Path: "uacAcc.class12", Kind: KindFlag},
	{Label: "UAC Class 13", Path: "uacAcc.class13", Kind: KindFlag},
	{Label: "UAC Class 14", Path: "uacAcc.class14", Kind: KindFlag},
	{Label: "UAC Class 15", Path: "uacAcc.class15", Kind: KindFlag},
	{Label: "Max Rate UL", Path: "integrityMaxRate.uplink", Kind: KindText, Width: 8},
	{Label: "Max Rate DL", Path: "integrityMaxRate.downlink", Kind: KindText, Width: 8},
}

// Section は配列項目の編集セクションを表す。
type Section struct {
	Field string
	Title string
}

// Sections はフォームに表示する配列セクションの一覧
var Sections = []Section{
	{Field: record.FieldConfiguredSlice, Title: "Configured Slices"},
	{Field: record.FieldDefaultSlice, Title: "Default Slices"},
	{Field: record.FieldGnbSearchList, Title: "gNB Search List"},
	{Field: record.FieldProfiles, Title: "Key Profiles"},
	{Field: record.FieldSessions, Title: "Sessions"},
}

// ItemText は配列要素の一覧表示テキストを返す。
func ItemText(field string, index int, item any) string {
	prefix := fmt.Sprintf("[%d] ", index+1)
	if field == record.FieldGnbSearchList {
		if s, ok := item.(string); ok && s != "" {
			return prefix + s
		}
		return prefix + "(empty)"
	}

	m, ok := record.AsObject(item)
	if !ok {
		return prefix + fmt.Sprint(item)
	}
	switch field {
	case record.FieldConfiguredSlice, record.FieldDefaultSlice:
		return prefix + sliceText(m)
	case record.FieldProfiles:
		scheme, _ := record.AsInt(m["scheme"])
		pub, _ := m["publicKey"].(string)
		return prefix + fmt.Sprintf("scheme=%d pub=%s", scheme, format.KeySummary(pub))
	case record.FieldSessions:
		typ, _ := m["type"].(string)
		apn, _ := m["apn"].(string)
		slice, _ := record.AsObject(m["slice"])
		return prefix + fmt.Sprintf("%s %s %s", typ, apn, sliceText(slice))
	}
	return prefix + fmt.Sprint(item)
}

func sliceText(m map[string]any) string {
	if m == nil {
		return "sst=- sd=-"
	}
	sst, _ := record.AsInt(m["sst"])
	sd, _ := m["sd"].(string)
	if sd == "" {
		sd = "-"
	}
	return fmt.Sprintf("sst=%d sd=%s", sst, sd)
}
