package service

import "review-hub/internal/model"

// CanModify 只有資源建立者或管理員可以修改、刪除
func CanModify(caller *model.User, ownerID int) bool {
	if caller == nil {
		return false
	}
	return caller.IsAdmin || caller.ID == ownerID
}
