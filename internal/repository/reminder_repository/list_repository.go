package reminder_repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/szto/foxy-reminder/internal/model/reminder_model"
)

var (
	ErrListNotFound     = errors.New("reminder list not found")
	ErrItemNotFound     = errors.New("reminder item not found")
	ErrEmptyName        = errors.New("reminder list name must not be empty")
	ErrEmptyDescription = errors.New("reminder item description must not be empty")
)

// ReminderRepo owns all reminder list, item, and selection state. Every
// operation takes the owner and folds it into the query, so an id that exists
// under another owner is indistinguishable from one that does not exist.
type ReminderRepo struct {
	DB *sqlx.DB
}

func NewReminderRepo(db *sqlx.DB) *ReminderRepo {
	return &ReminderRepo{DB: db}
}

func (r *ReminderRepo) GetLists(ctx context.Context, owner string) ([]*reminder_model.ReminderList, error) {
	var lists []*reminder_model.ReminderList

	q := r.DB.Rebind(`SELECT id, owner, name FROM reminder_lists WHERE owner = ? ORDER BY id`)
	err := r.DB.SelectContext(ctx, &lists, q, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to load reminder lists: %w", err)
	}

	if err := r.attachItems(ctx, lists); err != nil {
		return nil, err
	}
	return lists, nil
}

func (r *ReminderRepo) GetList(ctx context.Context, listID int64, owner string) (*reminder_model.ReminderList, error) {
	var list reminder_model.ReminderList

	q := r.DB.Rebind(`SELECT id, owner, name FROM reminder_lists WHERE id = ? AND owner = ?`)
	err := r.DB.GetContext(ctx, &list, q, listID, owner)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrListNotFound
		}
		return nil, fmt.Errorf("failed to load reminder list: %w", err)
	}

	if err := r.attachItems(ctx, []*reminder_model.ReminderList{&list}); err != nil {
		return nil, err
	}
	return &list, nil
}

func (r *ReminderRepo) CreateList(ctx context.Context, owner, name string, items []reminder_model.ItemData) (*reminder_model.ReminderList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("could not start transaction: %w", err)
	}
	defer tx.Rollback()

	list := &reminder_model.ReminderList{Owner: owner, Name: name, Items: []*reminder_model.ReminderItem{}}

	qList := tx.Rebind(`INSERT INTO reminder_lists (owner, name) VALUES (?, ?) RETURNING id`)
	if err := tx.QueryRowxContext(ctx, qList, owner, name).Scan(&list.ID); err != nil {
		return nil, fmt.Errorf("failed to create reminder list: %w", err)
	}

	qItem := tx.Rebind(`INSERT INTO reminder_items (list_id, description, completed) VALUES (?, ?, ?) RETURNING id`)
	for _, data := range items {
		item := &reminder_model.ReminderItem{
			ListID:      list.ID,
			Description: data.Description,
			Completed:   data.Completed,
		}
		if err := tx.QueryRowxContext(ctx, qItem, list.ID, data.Description, data.Completed).Scan(&item.ID); err != nil {
			return nil, fmt.Errorf("failed to create reminder item: %w", err)
		}
		list.Items = append(list.Items, item)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("transaction commit failed: %w", err)
	}
	return list, nil
}

func (r *ReminderRepo) UpdateListName(ctx context.Context, listID int64, owner, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return ErrEmptyName
	}

	q := r.DB.Rebind(`UPDATE reminder_lists SET name = ? WHERE id = ? AND owner = ?`)
	result, err := r.DB.ExecContext(ctx, q, newName, listID, owner)
	if err != nil {
		return fmt.Errorf("failed to rename reminder list: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrListNotFound
	}
	return nil
}

// UpdateList renames the list and replaces its items wholesale. New ids are
// assigned to the supplied items; prior items are gone after the call.
func (r *ReminderRepo) UpdateList(ctx context.Context, listID int64, owner, name string, items []reminder_model.ItemData) (*reminder_model.ReminderList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("could not start transaction: %w", err)
	}
	defer tx.Rollback()

	qName := tx.Rebind(`UPDATE reminder_lists SET name = ? WHERE id = ? AND owner = ?`)
	result, err := tx.ExecContext(ctx, qName, name, listID, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to update reminder list: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return nil, ErrListNotFound
	}

	qDelete := tx.Rebind(`DELETE FROM reminder_items WHERE list_id = ?`)
	if _, err := tx.ExecContext(ctx, qDelete, listID); err != nil {
		return nil, fmt.Errorf("failed to delete old reminder items: %w", err)
	}

	list := &reminder_model.ReminderList{ID: listID, Owner: owner, Name: name, Items: []*reminder_model.ReminderItem{}}

	qItem := tx.Rebind(`INSERT INTO reminder_items (list_id, description, completed) VALUES (?, ?, ?) RETURNING id`)
	for _, data := range items {
		item := &reminder_model.ReminderItem{
			ListID:      listID,
			Description: data.Description,
			Completed:   data.Completed,
		}
		if err := tx.QueryRowxContext(ctx, qItem, listID, data.Description, data.Completed).Scan(&item.ID); err != nil {
			return nil, fmt.Errorf("failed to insert reminder item: %w", err)
		}
		list.Items = append(list.Items, item)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("transaction commit failed: %w", err)
	}
	return list, nil
}

// DeleteList removes the list and cascades delete to its items. Any stale
// selection pointing at the list is cleaned up on the next selection read.
func (r *ReminderRepo) DeleteList(ctx context.Context, listID int64, owner string) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not start transaction: %w", err)
	}
	defer tx.Rollback()

	qItems := tx.Rebind(`DELETE FROM reminder_items WHERE list_id IN (SELECT id FROM reminder_lists WHERE id = ? AND owner = ?)`)
	if _, err := tx.ExecContext(ctx, qItems, listID, owner); err != nil {
		return fmt.Errorf("failed to delete reminder items: %w", err)
	}

	qList := tx.Rebind(`DELETE FROM reminder_lists WHERE id = ? AND owner = ?`)
	result, err := tx.ExecContext(ctx, qList, listID, owner)
	if err != nil {
		return fmt.Errorf("failed to delete reminder list: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrListNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("transaction commit failed: %w", err)
	}
	return nil
}

// attachItems loads the items for the given lists in one query and fills the
// Items slices in creation order.
func (r *ReminderRepo) attachItems(ctx context.Context, lists []*reminder_model.ReminderList) error {
	if len(lists) == 0 {
		return nil
	}

	listIDs := make([]int64, len(lists))
	listMap := make(map[int64]*reminder_model.ReminderList)
	for i, list := range lists {
		listIDs[i] = list.ID
		listMap[list.ID] = list
		list.Items = []*reminder_model.ReminderItem{}
	}

	query, args, err := sqlx.In(`SELECT id, list_id, description, completed FROM reminder_items WHERE list_id IN (?) ORDER BY id`, listIDs)
	if err != nil {
		return err
	}
	query = r.DB.Rebind(query)

	var items []*reminder_model.ReminderItem
	if err := r.DB.SelectContext(ctx, &items, query, args...); err != nil {
		return fmt.Errorf("failed to load reminder items: %w", err)
	}

	for _, item := range items {
		if list, ok := listMap[item.ListID]; ok {
			list.Items = append(list.Items, item)
		}
	}
	return nil
}
