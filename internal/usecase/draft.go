package usecase

import "errors"

// ウェイター端末の下書きの状態
type DraftState string

const (
	DraftStateEmpty    DraftState = "Empty"    // 明細0件
	DraftStateBuilding DraftState = "Building" // 明細1件以上
)

var (
	// 商品未選択
	ErrDraftNoProduct = errors.New("product required")
	// 数量が1未満
	ErrDraftBadQuantity = errors.New("quantity must be at least 1")
	// 行番号が範囲外
	ErrDraftBadIndex = errors.New("line item index out of range")
	// テーブル未選択
	ErrDraftNoTable = errors.New("table required")
	// 明細0件のまま提出
	ErrDraftEmpty = errors.New("empty order")
)

// 下書きの明細1行
type DraftItem struct {
	ProductID int64
	Quantity  int64
	Notes     string
}

// Draft は提出前の注文編集セッション。
// 元の画面と同じく「追加 or 選択中の行を置き換え」の2挙動を持つが、
// 不正入力は黙って無視せず理由つきで拒否する。
type Draft struct {
	tableID   int64
	orderID   int64 // 0なら新規作成モード
	version   int   // 編集モードのときの楽観ロック版数
	items     []DraftItem
	editIndex int // 置き換え対象の行。-1なら追記。
}

func NewDraft() *Draft {
	return &Draft{editIndex: -1}
}

func (d *Draft) State() DraftState {
	if len(d.items) == 0 {
		return DraftStateEmpty
	}
	return DraftStateBuilding
}

// SelectTable はテーブルを選び直して下書きをやり直す
func (d *Draft) SelectTable(tableID int64) error {
	if tableID <= 0 {
		return ErrDraftNoTable
	}
	d.tableID = tableID
	d.orderID = 0
	d.version = 0
	d.items = nil
	d.editIndex = -1
	return nil
}

// LoadOrder は既存注文を編集モードで読み込む
func (d *Draft) LoadOrder(orderID int64, version int, items []DraftItem) {
	d.orderID = orderID
	d.version = version
	d.items = append([]DraftItem{}, items...)
	d.editIndex = -1
}

// StageEdit は次のAddOrUpdateItemで置き換える行を選ぶ
func (d *Draft) StageEdit(index int) error {
	if index < 0 || index >= len(d.items) {
		return ErrDraftBadIndex
	}
	d.editIndex = index
	return nil
}

// AddOrUpdateItem は行を追記、または選択中の行を置き換える
func (d *Draft) AddOrUpdateItem(productID int64, quantity int64, notes string) error {
	if productID <= 0 {
		return ErrDraftNoProduct
	}
	if quantity < 1 {
		return ErrDraftBadQuantity
	}

	item := DraftItem{
		ProductID: productID,
		Quantity:  quantity,
		Notes:     notes,
	}

	if d.editIndex >= 0 {
		d.items[d.editIndex] = item
		d.editIndex = -1
		return nil
	}

	d.items = append(d.items, item)
	return nil
}

func (d *Draft) RemoveItem(index int) error {
	if index < 0 || index >= len(d.items) {
		return ErrDraftBadIndex
	}
	d.items = append(d.items[:index], d.items[index+1:]...)
	switch {
	case d.editIndex == index:
		d.editIndex = -1
	case d.editIndex > index:
		//選択中の行が前に詰まるのでインデックスも追従させる
		d.editIndex--
	}
	return nil
}

func (d *Draft) Items() []DraftItem {
	return append([]DraftItem{}, d.items...)
}

func (d *Draft) TableID() int64 { return d.tableID }
func (d *Draft) OrderID() int64 { return d.orderID }
func (d *Draft) Version() int   { return d.version }

// CanSubmit は提出可能かどうか。提出できない理由をそのまま返す。
func (d *Draft) CanSubmit() error {
	if d.tableID <= 0 {
		return ErrDraftNoTable
	}
	if len(d.items) == 0 {
		return ErrDraftEmpty
	}
	return nil
}
