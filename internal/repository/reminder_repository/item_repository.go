package reminder_repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/szto/foxy-reminder/internal/model/reminder_model"
)

func (r *ReminderRepo) AddItem(ctx context.Context, listID int64, owner, description string) (*reminder_model.ReminderItem, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrEmptyDescription
	}

	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("could not start transaction: %w", err)
	}
	defer tx.Rollback()

	var ownedListID int64
	qOwned := tx.Rebind(`SELECT id FROM reminder_lists WHERE id = ? AND owner = ?`)
	if err := tx.GetContext(ctx, &ownedListID, qOwned, listID, owner); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrListNotFound
		}
		return nil, fmt.Errorf("failed to check list ownership: %w", err)
	}

	item := &reminder_model.ReminderItem{ListID: listID, Description: description, Completed: false}

	qInsert := tx.Rebind(`INSERT INTO reminder_items (list_id, description, completed) VALUES (?, ?, FALSE) RETURNING id`)
	if err := tx.QueryRowxContext(ctx, qInsert, listID, description).Scan(&item.ID); err != nil {
		return nil, fmt.Errorf("failed to insert reminder item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("transaction commit failed: %w", err)
	}
	return item, nil
}

func (r *ReminderRepo) GetItem(ctx context.Context, itemID int64, owner string) (*reminder_model.ReminderItem, error) {
	var item reminder_model.ReminderItem

	q := r.DB.Rebind(`
		SELECT i.id, i.list_id, i.description, i.completed
		FROM reminder_items i
		JOIN reminder_lists l ON l.id = i.list_id
		WHERE i.id = ? AND l.owner = ?`)
	err := r.DB.GetContext(ctx, &item, q, itemID, owner)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to load reminder item: %w", err)
	}
	return &item, nil
}

func (r *ReminderRepo) UpdateItemDescription(ctx context.Context, itemID int64, owner, newDescription string) error {
	newDescription = strings.TrimSpace(newDescription)
	if newDescription == "" {
		return ErrEmptyDescription
	}

	q := r.DB.Rebind(`
		UPDATE reminder_items SET description = ?
		WHERE id = ? AND list_id IN (SELECT id FROM reminder_lists WHERE owner = ?)`)
	result, err := r.DB.ExecContext(ctx, q, newDescription, itemID, owner)
	if err != nil {
		return fmt.Errorf("failed to update reminder item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrItemNotFound
	}
	return nil
}

// StrikeItem toggles the completed flag. The toggle is a single statement so
// two concurrent strikes cannot race into a lost update.
func (r *ReminderRepo) StrikeItem(ctx context.Context, itemID int64, owner string) (*reminder_model.ReminderItem, error) {
	var item reminder_model.ReminderItem

	q := r.DB.Rebind(`
		UPDATE reminder_items SET completed = NOT completed
		WHERE id = ? AND list_id IN (SELECT id FROM reminder_lists WHERE owner = ?)
		RETURNING id, list_id, description, completed`)
	err := r.DB.QueryRowxContext(ctx, q, itemID, owner).StructScan(&item)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to strike reminder item: %w", err)
	}
	return &item, nil
}

func (r *ReminderRepo) DeleteItem(ctx context.Context, itemID int64, owner string) error {
	q := r.DB.Rebind(`
		DELETE FROM reminder_items
		WHERE id = ? AND list_id IN (SELECT id FROM reminder_lists WHERE owner = ?)`)
	result, err := r.DB.ExecContext(ctx, q, itemID, owner)
	if err != nil {
		return fmt.Errorf("failed to delete reminder item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrItemNotFound
	}
	return nil
}
