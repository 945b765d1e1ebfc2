// Package generator はオペレータ設定からランダムなUEプロファイルを生成する。
package generator

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lvdund/ueprofiles/pkg/model"
)

// OperatorConfig は生成するUEプロファイルに共通のオペレータ設定。
type OperatorConfig struct {
	PlmnID           model.PlmnID           `yaml:"plmnId"`
	Amf              string                 `yaml:"amf"`
	ConfiguredSlice  []model.Snssai         `yaml:"configuredSlice"`
	DefaultSlice     []model.Snssai         `yaml:"defaultSlice"`
	Profiles         []model.Profile        `yaml:"profiles"`
	Sessions         []model.Session        `yaml:"sessions"`
	UacAic           model.UacAic           `yaml:"uacAic"`
	UacAcc           model.UacAcc           `yaml:"uacAcc"`
	Integrity        model.Integrity        `yaml:"integrity"`
	Ciphering        model.Ciphering        `yaml:"ciphering"`
	IntegrityMaxRate model.IntegrityMaxRate `yaml:"integrityMaxRate"`
	GnbSearchList    []string               `yaml:"gnbSearchList"`
}

// DefaultOperatorConfig は既定のオペレータ設定を返す。
// PLMN 208/93、スライス {1, 010203}、IPv4 "internet" セッション1件。
func DefaultOperatorConfig() *OperatorConfig {
	slice := model.Snssai{Sst: 1, Sd: "010203"}
	return &OperatorConfig{
		PlmnID:          model.PlmnID{Mcc: "208", Mnc: "93"},
		Amf:             "8000",
		ConfiguredSlice: []model.Snssai{slice},
		DefaultSlice:    []model.Snssai{slice},
		Profiles: []model.Profile{
			{
				Scheme:     SchemeA,
				PrivateKey: "c53c22208b61860b06c62e5406a7b330c2b577aa5558981510d128247d38bd1d",
				PublicKey:  "5a8d38864820197c3394b92613b20b91633cbd897119273bf8e4a6f4eec0a650",
			},
			{
				Scheme:     SchemeB,
				PrivateKey: "F1AB1074477EBCC7F554EA1C5FC368B1616730155E0041AC447D6301975FECDA",
				PublicKey:  "0272DA71976234CE833A6907425867B82E074D44EF907DFB4B3E21C1C2256EBCD1",
			},
		},
		Sessions: []model.Session{
			{Type: "IPv4", Apn: "internet", Slice: slice},
		},
		Integrity:        model.Integrity{IA1: true, IA2: true, IA3: true},
		Ciphering:        model.Ciphering{EA1: true, EA2: true, EA3: true},
		IntegrityMaxRate: model.IntegrityMaxRate{Uplink: "full", Downlink: "full"},
		GnbSearchList:    []string{"10.0.0.2"},
	}
}

// LoadOperatorConfig はYAMLファイルからオペレータ設定を読み込む。
// ファイルにないキーは既定値のまま残る。
func LoadOperatorConfig(path string) (*OperatorConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read operator config: %w", err)
	}

	cfg := DefaultOperatorConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse operator config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid operator config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate は生成に必要な値が揃っているかを検証する。
func (c *OperatorConfig) Validate() error {
	mcc, mnc := c.PlmnID.Mcc, c.PlmnID.Mnc
	if len(mcc) != 3 || !isDigits(mcc) {
		return fmt.Errorf("mcc must be 3 digits: %q", mcc)
	}
	if (len(mnc) != 2 && len(mnc) != 3) || !isDigits(mnc) {
		return fmt.Errorf("mnc must be 2 or 3 digits: %q", mnc)
	}
	return nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
