package reminder_services

import (
	"context"

	"github.com/szto/foxy-reminder/internal/model/reminder_model"
	"github.com/szto/foxy-reminder/internal/repository/reminder_repository"
)

type ReminderService struct {
	Repo *reminder_repository.ReminderRepo
}

func NewReminderService(r *reminder_repository.ReminderRepo) *ReminderService {
	return &ReminderService{Repo: r}
}

func (s *ReminderService) GetLists(ctx context.Context, owner string) ([]*reminder_model.ReminderList, error) {
	return s.Repo.GetLists(ctx, owner)
}

func (s *ReminderService) GetList(ctx context.Context, listID int64, owner string) (*reminder_model.ReminderList, error) {
	return s.Repo.GetList(ctx, listID, owner)
}

func (s *ReminderService) CreateList(ctx context.Context, owner, name string, items []reminder_model.ItemData) (*reminder_model.ReminderList, error) {
	return s.Repo.CreateList(ctx, owner, name, items)
}

func (s *ReminderService) UpdateListName(ctx context.Context, listID int64, owner, newName string) error {
	return s.Repo.UpdateListName(ctx, listID, owner, newName)
}

func (s *ReminderService) UpdateList(ctx context.Context, listID int64, owner, name string, items []reminder_model.ItemData) (*reminder_model.ReminderList, error) {
	return s.Repo.UpdateList(ctx, listID, owner, name, items)
}

func (s *ReminderService) DeleteList(ctx context.Context, listID int64, owner string) error {
	return s.Repo.DeleteList(ctx, listID, owner)
}

func (s *ReminderService) AddItem(ctx context.Context, listID int64, owner, description string) (*reminder_model.ReminderItem, error) {
	return s.Repo.AddItem(ctx, listID, owner, description)
}

func (s *ReminderService) GetItem(ctx context.Context, itemID int64, owner string) (*reminder_model.ReminderItem, error) {
	return s.Repo.GetItem(ctx, itemID, owner)
}

func (s *ReminderService) UpdateItemDescription(ctx context.Context, itemID int64, owner, newDescription string) error {
	return s.Repo.UpdateItemDescription(ctx, itemID, owner, newDescription)
}

func (s *ReminderService) StrikeItem(ctx context.Context, itemID int64, owner string) (*reminder_model.ReminderItem, error) {
	return s.Repo.StrikeItem(ctx, itemID, owner)
}

func (s *ReminderService) DeleteItem(ctx context.Context, itemID int64, owner string) error {
	return s.Repo.DeleteItem(ctx, itemID, owner)
}

func (s *ReminderService) GetSelectedList(ctx context.Context, owner string) (*reminder_model.ReminderList, error) {
	return s.Repo.GetSelectedList(ctx, owner)
}

func (s *ReminderService) SetSelectedList(ctx context.Context, listID int64, owner string) error {
	return s.Repo.SetSelectedList(ctx, listID, owner)
}

func (s *ReminderService) ResetSelectedAfterDelete(ctx context.Context, deletedListID int64, owner string) error {
	return s.Repo.ResetSelectedAfterDelete(ctx, deletedListID, owner)
}
