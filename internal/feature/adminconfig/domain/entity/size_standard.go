// Package entity はadminconfigフィーチャーのドメインモデルを定義します。
package entity

import "time"

// SizeStandard は地域別のサイズ規格を表します。
// アイテム登録フォームのサイズ選択肢として参照されます。
type SizeStandard struct {
	ID        uint
	Region    string // 地域コード（例: JP, US, EU）
	Category  string // VUFSカテゴリコード
	Label     string // 表示ラベル（例: M, 42, 9.5）
	SortOrder int
	CreatedAt time.Time
	UpdatedAt time.Time
}
