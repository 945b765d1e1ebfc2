// Package format は表示用のフォーマットユーティリティを提供する。
package format

import "time"

// DefaultDateLayout は日付ラベルの既定フォーマット
const DefaultDateLayout = time.DateOnly

// 受け付けるタイムスタンプ形式（先頭から順に試す）
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.DateTime,
	time.DateOnly,
}

// ParseTimestamp はサーバーが付与した作成日時を解析する。
// RFC3339形式に加え、"2006-01-02 15:04:05" と "2006-01-02" を受け付ける。
// タイムゾーンを含まない形式はlocの時刻として解釈する。
func ParseTimestamp(ts string, loc *time.Location) (time.Time, bool) {
	if ts == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, ts, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DateLabel は作成日時をloc上の日付のみの文字列に変換する。
// 解析できない場合はfalseを返す。
func DateLabel(ts, layout string, loc *time.Location) (string, bool) {
	t, ok := ParseTimestamp(ts, loc)
	if !ok {
		return "", false
	}
	if layout == "" {
		layout = DefaultDateLayout
	}
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(layout), true
}

// Created は作成日時を "2006-01-02 15:04:05" 形式のローカル時刻で返す。
// 未設定または解析できない場合は "-"。
func Created(ts string) string {
	t, ok := ParseTimestamp(ts, time.Local)
	if !ok {
		return "-"
	}
	return t.Local().Format(time.DateTime)
}
