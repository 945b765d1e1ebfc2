package generator

import (
	"crypto/ecdh"
	"crypto/md5"
	crand "crypto/rand"
	"encoding/hex"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/lvdund/ueprofiles/pkg/model"
)

// SUCI保護スキーム
const (
	SchemeNull = 0
	SchemeA    = 1
	SchemeB    = 2
)

const (
	supiDigits       = 15
	imeiDigits       = 15
	imeiSvDigits     = 16
	secretSeedLength = 16
	routingIndicator = "0000"
)

const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Operator はオペレータ設定に従ってUEプロファイルを生成する。
// 並行呼び出しには対応しない。
type Operator struct {
	config *OperatorConfig
	rand   *rand.Rand
}

// Option はOperatorの生成オプション。
type Option func(*Operator)

// WithRand は乱数源を差し替える。
func WithRand(r *rand.Rand) Option {
	return func(o *Operator) {
		o.rand = r
	}
}

// NewOperator は新しいOperatorを生成する。
func NewOperator(cfg *OperatorConfig, opts ...Option) *Operator {
	if cfg == nil {
		cfg = DefaultOperatorConfig()
	}
	o := &Operator{
		config: cfg,
		rand:   rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Generate はn件のUEプロファイルを生成する。
// 同一バッチ内でSUPIは重複しない。
func (o *Operator) Generate(n int) ([]*model.UEProfile, error) {
	profiles := make([]*model.UEProfile, 0, n)
	seen := make(map[string]bool, n)
	for len(profiles) < n {
		ue, err := o.GenerateUE()
		if err != nil {
			return nil, err
		}
		if seen[ue.SUPI] {
			continue
		}
		seen[ue.SUPI] = true
		profiles = append(profiles, ue)
	}
	return profiles, nil
}

// GenerateUE はUEプロファイルを1件生成する。
func (o *Operator) GenerateUE() (*model.UEProfile, error) {
	cfg := o.config
	msin, err := o.randMSIN()
	if err != nil {
		return nil, err
	}

	ue := model.NewUEProfile("imsi-" + cfg.PlmnID.Mcc + cfg.PlmnID.Mnc + msin)
	ue.SUCI = nullSchemeSUCI(cfg.PlmnID, msin)
	ue.PlmnID = cfg.PlmnID
	ue.Amf = cfg.Amf
	ue.ConfiguredSlice = append(ue.ConfiguredSlice, cfg.ConfiguredSlice...)
	ue.DefaultSlice = append(ue.DefaultSlice, cfg.DefaultSlice...)
	ue.Profiles = append(ue.Profiles, cfg.Profiles...)
	ue.Sessions = append(ue.Sessions, cfg.Sessions...)
	ue.GnbSearchList = append(ue.GnbSearchList, cfg.GnbSearchList...)
	ue.UacAic = cfg.UacAic
	ue.UacAcc = cfg.UacAcc
	ue.Integrity = cfg.Integrity
	ue.Ciphering = cfg.Ciphering
	ue.IntegrityMaxRate = cfg.IntegrityMaxRate

	ue.Key = o.randSecret()
	ue.Op = o.randSecret()
	if o.rand.IntN(2) == 0 {
		ue.OpType = model.OpTypeOP
	} else {
		ue.OpType = model.OpTypeOPC
	}
	ue.Imei = o.randDigits(imeiDigits)
	ue.ImeiSv = o.randDigits(imeiSvDigits)

	priv, err := ecdh.X25519().GenerateKey(crand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate home network key: %w", err)
	}
	ue.HomeNetworkPrivateKey = hex.EncodeToString(priv.Bytes())
	ue.HomeNetworkPublicKey = hex.EncodeToString(priv.PublicKey().Bytes())

	applySchemeA(ue, cfg.Profiles)
	return ue, nil
}

// applySchemeA はProfile Aの保護スキームを設定する。
// 鍵プロファイルが定義されていれば、その公開鍵で上書きする。
func applySchemeA(ue *model.UEProfile, profiles []model.Profile) {
	ue.ProtectionScheme = SchemeA
	ue.HomeNetworkPublicKeyID = SchemeA
	ue.RoutingIndicator = routingIndicator
	if len(profiles) > 0 {
		ue.HomeNetworkPublicKey = profiles[0].PublicKey
	}
}

// nullSchemeSUCI はnull-schemeのSUCIを組み立てる。
// 形式: suci-0-{mcc}-{mnc}-{routing indicator}-0-0-{msin}
func nullSchemeSUCI(plmn model.PlmnID, msin string) string {
	return strings.Join([]string{
		"suci", "0", plmn.Mcc, plmn.Mnc, routingIndicator, "0", "0", msin,
	}, "-")
}

func (o *Operator) randMSIN() (string, error) {
	n := supiDigits - len(o.config.PlmnID.Mcc) - len(o.config.PlmnID.Mnc)
	if n <= 0 {
		return "", fmt.Errorf("PLMN %s/%s leaves no room for MSIN", o.config.PlmnID.Mcc, o.config.PlmnID.Mnc)
	}
	return o.randDigits(n), nil
}

func (o *Operator) randDigits(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte('0' + o.rand.IntN(10))
	}
	return string(b)
}

// randSecret はランダムな英字列のMD5を16進で返す。
func (o *Operator) randSecret() string {
	b := make([]byte, secretSeedLength)
	for i := range b {
		b[i] = letters[o.rand.IntN(len(letters))]
	}
	sum := md5.Sum(b)
	return hex.EncodeToString(sum[:])
}
