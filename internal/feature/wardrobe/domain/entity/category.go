package entity

// Category はVUFSタクソノミーの1ノードを表します。
// コードは階層をドット区切りで表現します（例: "tops.shirts.oxford"）。
type Category struct {
	Code       string // VUFSコード（一意）
	Label      string // 表示名
	ParentCode string // 親ノードのコード（ルートは空）
	Depth      int    // 階層の深さ（ルート=0）
	Leaf       bool   // リーフノード（アイテムに割り当て可能）かどうか
}
