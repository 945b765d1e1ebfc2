// Package model は共通データ構造体を提供する。
package model

// OPタイプ
const (
	// OpTypeOP はOP値を保持することを示す
	OpTypeOP = "OP"
	// OpTypeOPC はOPc値を保持することを示す
	OpTypeOPC = "OPC"
)

// UEProfile はUE（User Equipment）の加入者プロファイルを表す。
// SUPIは作成時に一度だけ設定され、以降は変更されない。
// Valkeyキー: ue:{owner}:{SUPI}
type UEProfile struct {
	SUPI string `json:"supi"` // 加入者永続識別子（imsi-MCCMNCMSIN形式）
	SUCI string `json:"suci"` // 秘匿化加入者識別子

	PlmnID          PlmnID   `json:"plmnid"`
	ConfiguredSlice []Snssai `json:"configuredSlice"`
	DefaultSlice    []Snssai `json:"defaultSlice"`

	RoutingIndicator       string `json:"routingIndicator"`
	HomeNetworkPrivateKey  string `json:"homeNetworkPrivateKey"`
	HomeNetworkPublicKey   string `json:"homeNetworkPublicKey"`
	HomeNetworkPublicKeyID int    `json:"homeNetworkPublicKeyId"`
	ProtectionScheme       int    `json:"protectionScheme"`

	Key    string `json:"key"`    // 永続加入者鍵
	Op     string `json:"op"`     // オペレータコード
	OpType string `json:"opType"` // "OP" or "OPC"
	Amf    string `json:"amf"`    // 認証管理フィールド

	Imei   string `json:"imei"`
	ImeiSv string `json:"imeiSv"`

	GnbSearchList []string `json:"gnbSearchList"`

	Integrity Integrity `json:"integrity"`
	Ciphering Ciphering `json:"ciphering"`
	Profiles  []Profile `json:"profiles"`

	UacAic UacAic `json:"uacAic"`
	UacAcc UacAcc `json:"uacAcc"`

	Sessions []Session `json:"sessions"` // 初期確立するPDUセッション

	IntegrityMaxRate IntegrityMaxRate `json:"integrityMaxRate"`

	CreatedAt string `json:"createdAt,omitempty"` // 作成日時（RFC3339形式、サーバー付与）
}

// PlmnID はMCC/MNCの組を表す。
type PlmnID struct {
	Mcc string `json:"mcc"`
	Mnc string `json:"mnc"`
}

// Snssai はネットワークスライス識別子を表す。
type Snssai struct {
	Sst int    `json:"sst"` // Slice/Service Type
	Sd  string `json:"sd"`  // Slice Differentiator
}

// Profile はSUCI保護スキームの鍵プロファイルを表す。
type Profile struct {
	Scheme     int    `json:"scheme"`
	PrivateKey string `json:"privateKey"`
	PublicKey  string `json:"publicKey"`
}

// Integrity はUEが対応する完全性保護アルゴリズムを表す。
type Integrity struct {
	IA1 bool `json:"IA1"`
	IA2 bool `json:"IA2"`
	IA3 bool `json:"IA3"`
}

// Ciphering はUEが対応する暗号化アルゴリズムを表す。
type Ciphering struct {
	EA1 bool `json:"EA1"`
	EA2 bool `json:"EA2"`
	EA3 bool `json:"EA3"`
}

// UacAic はUACアクセスアイデンティティ設定を表す。
type UacAic struct {
	Mps bool `json:"mps"`
	Mcs bool `json:"mcs"`
}

// UacAcc はUACアクセス制御クラスを表す。
type UacAcc struct {
	NormalClass int  `json:"normalClass"`
	Class11     bool `json:"class11"`
	Class12     bool `json:"class12"`
	Class13     bool `json:"class13"`
	Class14     bool `json:"class14"`
	Class15     bool `json:"class15"`
}

// Session はPDUセッション設定を表す。
type Session struct {
	Type  string `json:"type"`
	Apn   string `json:"apn"`
	Slice Snssai `json:"slice"`
}

// IntegrityMaxRate は完全性保護の最大データレートを表す。
type IntegrityMaxRate struct {
	Uplink   string `json:"uplink"`
	Downlink string `json:"downlink"`
}

// NewUEProfile は全フィールドを既定値で埋めたUEProfileを生成する。
// 配列フィールドはnilではなく空スライスで初期化する。
func NewUEProfile(supi string) *UEProfile {
	return &UEProfile{
		SUPI:            supi,
		ConfiguredSlice: []Snssai{},
		DefaultSlice:    []Snssai{},
		GnbSearchList:   []string{},
		Profiles:        []Profile{},
		Sessions:        []Session{},
	}
}

// Normalize はnilの配列フィールドを空スライスに置き換える。
func (p *UEProfile) Normalize() {
	if p.ConfiguredSlice == nil {
		p.ConfiguredSlice = []Snssai{}
	}
	if p.DefaultSlice == nil {
		p.DefaultSlice = []Snssai{}
	}
	if p.GnbSearchList == nil {
		p.GnbSearchList = []string{}
	}
	if p.Profiles == nil {
		p.Profiles = []Profile{}
	}
	if p.Sessions == nil {
		p.Sessions = []Session{}
	}
}

// Clone はUEProfileのディープコピーを返す。
func (p *UEProfile) Clone() *UEProfile {
	c := *p
	c.ConfiguredSlice = append([]Snssai{}, p.ConfiguredSlice...)
	c.DefaultSlice = append([]Snssai{}, p.DefaultSlice...)
	c.GnbSearchList = append([]string{}, p.GnbSearchList...)
	c.Profiles = append([]Profile{}, p.Profiles...)
	c.Sessions = append([]Session{}, p.Sessions...)
	return &c
}
