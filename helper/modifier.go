package helper

import "coffeetek_pos/model"

// ValidateSelections đối chiếu bộ topping khách chọn với luật của các nhóm
// gắn trên món. Hàm thuần, chỉ đọc snapshot catalog truyền vào:
//   - nhóm bắt buộc phải có ít nhất một lựa chọn thuộc nhóm
//   - nhóm chọn-một không nhận quá một lựa chọn
//   - modifier không thuộc nhóm nào của món bị từ chối
func ValidateSelections(groups []model.ModifierGroup, selections []model.OrderModifierInput) error {
	groupOf := map[uint]*model.ModifierGroup{}
	for i := range groups {
		for _, m := range groups[i].Modifiers {
			groupOf[m.ID] = &groups[i]
		}
	}

	countPerGroup := map[uint]int{}
	for _, sel := range selections {
		g, ok := groupOf[sel.ModifierID]
		if !ok {
			return &SelectionError{Code: SelectionUnknownModifier, ModifierID: sel.ModifierID}
		}
		countPerGroup[g.ID]++
		if !g.IsMultiSelect && countPerGroup[g.ID] > 1 {
			return &SelectionError{Code: SelectionMultiNotAllowed, GroupID: g.ID, GroupName: g.GroupName}
		}
	}

	for i := range groups {
		g := &groups[i]
		if g.IsRequired && countPerGroup[g.ID] == 0 {
			return &SelectionError{Code: SelectionMissingRequired, GroupID: g.ID, GroupName: g.GroupName}
		}
	}
	return nil
}

// FindModifier tra một modifier trong các nhóm của món
func FindModifier(groups []model.ModifierGroup, modifierID uint) (*model.Modifier, *model.ModifierGroup) {
	for i := range groups {
		for j := range groups[i].Modifiers {
			if groups[i].Modifiers[j].ID == modifierID {
				return &groups[i].Modifiers[j], &groups[i]
			}
		}
	}
	return nil, nil
}
