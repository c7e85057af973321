package usecase_test

import (
	"testing"

	"foh/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func TestDraft_StartsEmpty(t *testing.T) {
	d := usecase.NewDraft()

	assert.Equal(t, usecase.DraftStateEmpty, d.State())
	assert.ErrorIs(t, d.CanSubmit(), usecase.ErrDraftNoTable)
}

func TestDraft_RejectsInvalidInput(t *testing.T) {
	d := usecase.NewDraft()
	assert.NoError(t, d.SelectTable(3))

	assert.ErrorIs(t, d.AddOrUpdateItem(0, 1, ""), usecase.ErrDraftNoProduct)
	assert.ErrorIs(t, d.AddOrUpdateItem(10, 0, ""), usecase.ErrDraftBadQuantity)
	assert.ErrorIs(t, d.SelectTable(0), usecase.ErrDraftNoTable)
	assert.ErrorIs(t, d.StageEdit(0), usecase.ErrDraftBadIndex)
	assert.ErrorIs(t, d.RemoveItem(0), usecase.ErrDraftBadIndex)

	// 不正入力は状態を変えない
	assert.Equal(t, usecase.DraftStateEmpty, d.State())
}

func TestDraft_EmptySubmitRejected(t *testing.T) {
	d := usecase.NewDraft()
	assert.NoError(t, d.SelectTable(3))

	assert.ErrorIs(t, d.CanSubmit(), usecase.ErrDraftEmpty)
}

func TestDraft_AddThenSubmit(t *testing.T) {
	d := usecase.NewDraft()
	assert.NoError(t, d.SelectTable(3))
	assert.NoError(t, d.AddOrUpdateItem(10, 2, "no sugar"))

	assert.Equal(t, usecase.DraftStateBuilding, d.State())
	assert.NoError(t, d.CanSubmit())

	items := d.Items()
	assert.Len(t, items, 1)
	assert.Equal(t, int64(10), items[0].ProductID)
	assert.Equal(t, int64(2), items[0].Quantity)
	assert.Equal(t, "no sugar", items[0].Notes)
}

func TestDraft_StageEditReplacesLine(t *testing.T) {
	d := usecase.NewDraft()
	assert.NoError(t, d.SelectTable(3))
	assert.NoError(t, d.AddOrUpdateItem(10, 1, ""))
	assert.NoError(t, d.AddOrUpdateItem(11, 1, ""))

	// 選択した行だけ置き換わり、行数は増えない
	assert.NoError(t, d.StageEdit(0))
	assert.NoError(t, d.AddOrUpdateItem(12, 3, "extra hot"))

	items := d.Items()
	assert.Len(t, items, 2)
	assert.Equal(t, int64(12), items[0].ProductID)
	assert.Equal(t, int64(3), items[0].Quantity)
	assert.Equal(t, int64(11), items[1].ProductID)

	// 置き換え後は追記モードに戻る
	assert.NoError(t, d.AddOrUpdateItem(13, 1, ""))
	assert.Len(t, d.Items(), 3)
}

func TestDraft_RemoveItem(t *testing.T) {
	d := usecase.NewDraft()
	assert.NoError(t, d.SelectTable(3))
	assert.NoError(t, d.AddOrUpdateItem(10, 1, ""))
	assert.NoError(t, d.AddOrUpdateItem(11, 1, ""))

	assert.NoError(t, d.RemoveItem(0))

	items := d.Items()
	assert.Len(t, items, 1)
	assert.Equal(t, int64(11), items[0].ProductID)

	assert.NoError(t, d.RemoveItem(0))
	assert.Equal(t, usecase.DraftStateEmpty, d.State())
	assert.ErrorIs(t, d.CanSubmit(), usecase.ErrDraftEmpty)
}

func TestDraft_RemoveBeforeStagedEditShiftsTarget(t *testing.T) {
	d := usecase.NewDraft()
	assert.NoError(t, d.SelectTable(3))
	assert.NoError(t, d.AddOrUpdateItem(10, 1, ""))
	assert.NoError(t, d.AddOrUpdateItem(11, 1, ""))
	assert.NoError(t, d.AddOrUpdateItem(12, 1, ""))

	// 3行目を編集対象にしてから1行目を消すと、対象は詰めた後の同じ行のまま
	assert.NoError(t, d.StageEdit(2))
	assert.NoError(t, d.RemoveItem(0))
	assert.NoError(t, d.AddOrUpdateItem(13, 2, ""))

	items := d.Items()
	assert.Len(t, items, 2)
	assert.Equal(t, int64(11), items[0].ProductID)
	assert.Equal(t, int64(13), items[1].ProductID)
	assert.Equal(t, int64(2), items[1].Quantity)
}

func TestDraft_SelectTableResets(t *testing.T) {
	d := usecase.NewDraft()
	assert.NoError(t, d.SelectTable(3))
	assert.NoError(t, d.AddOrUpdateItem(10, 1, ""))
	d.LoadOrder(7, 2, []usecase.DraftItem{{ProductID: 5, Quantity: 1}})

	// テーブルを選び直すと編集セッションは破棄される
	assert.NoError(t, d.SelectTable(4))

	assert.Equal(t, int64(4), d.TableID())
	assert.Equal(t, int64(0), d.OrderID())
	assert.Equal(t, 0, d.Version())
	assert.Empty(t, d.Items())
}

func TestDraft_LoadOrderForEdit(t *testing.T) {
	d := usecase.NewDraft()
	assert.NoError(t, d.SelectTable(3))
	d.LoadOrder(7, 2, []usecase.DraftItem{
		{ProductID: 5, Quantity: 1},
		{ProductID: 6, Quantity: 2},
	})

	assert.Equal(t, int64(7), d.OrderID())
	assert.Equal(t, 2, d.Version())
	assert.Len(t, d.Items(), 2)
	assert.NoError(t, d.CanSubmit())
}
