package helper

import (
	"errors"
	"testing"

	"coffeetek_pos/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogGroups() []model.ModifierGroup {
	return []model.ModifierGroup{
		{
			DTO:           model.DTO{ID: 1},
			GroupName:     "Size",
			IsMultiSelect: false,
			IsRequired:    true,
			Modifiers: []model.Modifier{
				{DTO: model.DTO{ID: 10}, ModifierName: "Size M", GroupID: 1, ExtraPrice: 0},
				{DTO: model.DTO{ID: 11}, ModifierName: "Size L", GroupID: 1, ExtraPrice: 5000},
			},
		},
		{
			DTO:           model.DTO{ID: 2},
			GroupName:     "Topping",
			IsMultiSelect: true,
			IsRequired:    false,
			Modifiers: []model.Modifier{
				{DTO: model.DTO{ID: 20}, ModifierName: "Trân châu", GroupID: 2, ExtraPrice: 7000},
				{DTO: model.DTO{ID: 21}, ModifierName: "Kem muối", GroupID: 2, ExtraPrice: 10000},
			},
		},
	}
}

func TestValidateSelections(t *testing.T) {
	groups := catalogGroups()

	t.Run("hợp lệ: đủ nhóm bắt buộc, nhiều topping", func(t *testing.T) {
		err := ValidateSelections(groups, []model.OrderModifierInput{
			{ModifierID: 11},
			{ModifierID: 20},
			{ModifierID: 21},
		})
		assert.NoError(t, err)
	})

	t.Run("thiếu nhóm bắt buộc", func(t *testing.T) {
		err := ValidateSelections(groups, []model.OrderModifierInput{{ModifierID: 20}})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidLineItems))

		var selErr *SelectionError
		require.True(t, errors.As(err, &selErr))
		assert.Equal(t, SelectionMissingRequired, selErr.Code)
		assert.Equal(t, uint(1), selErr.GroupID)
	})

	t.Run("nhóm chọn-một nhận hai lựa chọn", func(t *testing.T) {
		err := ValidateSelections(groups, []model.OrderModifierInput{
			{ModifierID: 10},
			{ModifierID: 11},
		})
		require.Error(t, err)

		var selErr *SelectionError
		require.True(t, errors.As(err, &selErr))
		assert.Equal(t, SelectionMultiNotAllowed, selErr.Code)
		assert.Equal(t, "Size", selErr.GroupName)
	})

	t.Run("modifier không thuộc món", func(t *testing.T) {
		err := ValidateSelections(groups, []model.OrderModifierInput{
			{ModifierID: 10},
			{ModifierID: 999},
		})
		require.Error(t, err)

		var selErr *SelectionError
		require.True(t, errors.As(err, &selErr))
		assert.Equal(t, SelectionUnknownModifier, selErr.Code)
		assert.Equal(t, uint(999), selErr.ModifierID)
	})

	t.Run("món không có nhóm nào thì bộ chọn rỗng hợp lệ", func(t *testing.T) {
		assert.NoError(t, ValidateSelections(nil, nil))
	})
}

func TestFindModifier(t *testing.T) {
	groups := catalogGroups()

	mod, group := FindModifier(groups, 21)
	require.NotNil(t, mod)
	require.NotNil(t, group)
	assert.Equal(t, "Kem muối", mod.ModifierName)
	assert.Equal(t, "Topping", group.GroupName)

	mod, group = FindModifier(groups, 42)
	assert.Nil(t, mod)
	assert.Nil(t, group)
}
