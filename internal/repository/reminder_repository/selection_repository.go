package reminder_repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/szto/foxy-reminder/internal/model/reminder_model"
)

// GetSelectedList returns the owner's currently selected list with its items,
// or nil when nothing is selected. A selection whose list no longer exists is
// treated as none and the stale row is removed.
func (r *ReminderRepo) GetSelectedList(ctx context.Context, owner string) (*reminder_model.ReminderList, error) {
	var listID int64

	q := r.DB.Rebind(`
		SELECT l.id
		FROM selections s
		JOIN reminder_lists l ON l.id = s.list_id AND l.owner = ?
		WHERE s.owner = ?`)
	err := r.DB.GetContext(ctx, &listID, q, owner, owner)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if err := r.clearStaleSelection(ctx, owner); err != nil {
				return nil, err
			}
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load selection: %w", err)
	}

	list, err := r.GetList(ctx, listID, owner)
	if errors.Is(err, ErrListNotFound) {
		// List vanished between the two reads; heal to none.
		if err := r.clearStaleSelection(ctx, owner); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return list, err
}

// SetSelectedList records listID as the owner's selection. Selecting a list
// that is absent or owned by someone else fails ErrListNotFound.
func (r *ReminderRepo) SetSelectedList(ctx context.Context, listID int64, owner string) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not start transaction: %w", err)
	}
	defer tx.Rollback()

	var ownedListID int64
	qOwned := tx.Rebind(`SELECT id FROM reminder_lists WHERE id = ? AND owner = ?`)
	if err := tx.GetContext(ctx, &ownedListID, qOwned, listID, owner); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrListNotFound
		}
		return fmt.Errorf("failed to check list ownership: %w", err)
	}

	qUpsert := tx.Rebind(`
		INSERT INTO selections (owner, list_id) VALUES (?, ?)
		ON CONFLICT (owner) DO UPDATE SET list_id = excluded.list_id`)
	if _, err := tx.ExecContext(ctx, qUpsert, owner, listID); err != nil {
		return fmt.Errorf("failed to store selection: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("transaction commit failed: %w", err)
	}
	return nil
}

// ResetSelectedAfterDelete clears the owner's selection if it still points at
// the deleted list. The selection becomes none; no other list is auto-selected.
func (r *ReminderRepo) ResetSelectedAfterDelete(ctx context.Context, deletedListID int64, owner string) error {
	q := r.DB.Rebind(`DELETE FROM selections WHERE owner = ? AND list_id = ?`)
	if _, err := r.DB.ExecContext(ctx, q, owner, deletedListID); err != nil {
		return fmt.Errorf("failed to reset selection: %w", err)
	}
	return nil
}

func (r *ReminderRepo) clearStaleSelection(ctx context.Context, owner string) error {
	q := r.DB.Rebind(`
		DELETE FROM selections
		WHERE owner = ? AND list_id NOT IN (SELECT id FROM reminder_lists WHERE owner = ?)`)
	if _, err := r.DB.ExecContext(ctx, q, owner, owner); err != nil {
		return fmt.Errorf("failed to clear stale selection: %w", err)
	}
	return nil
}
