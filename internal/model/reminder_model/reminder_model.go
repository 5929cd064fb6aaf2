package reminder_model

// ReminderItem is a single entry in a reminder list. Item ids are unique
// across the whole store so an item is resolvable without its parent list id.
type ReminderItem struct {
	ID          int64  `db:"id" json:"id"`
	ListID      int64  `db:"list_id" json:"list_id"`
	Description string `db:"description" json:"description"`
	Completed   bool   `db:"completed" json:"completed"`
}

// ReminderList is a named, owner-scoped collection of items. Items are kept
// in creation order.
type ReminderList struct {
	ID    int64           `db:"id" json:"id"`
	Owner string          `db:"owner" json:"owner"`
	Name  string          `db:"name" json:"name"`
	Items []*ReminderItem `db:"-" json:"items"`
}

// ItemData carries the item fields supplied by callers when creating a list
// or replacing its items wholesale; ids are assigned by the store.
type ItemData struct {
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}
