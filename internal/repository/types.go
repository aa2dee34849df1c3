package repository

// NotificationListFilter 查询通知列表的过滤条件
type NotificationListFilter struct {
	Page        int
	PageSize    int
	OrderID     string
	OrderNumber string // 前缀匹配
	OnlyUnread  bool
}
