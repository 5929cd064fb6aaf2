package reminder_pages

import (
	"context"

	"github.com/szto/foxy-reminder/internal/model/reminder_model"
	"github.com/szto/foxy-reminder/internal/services/reminder_services"
)

// PageContext is the view-model for the reminders page and its grid
// fragment. It is assembled purely from store reads.
type PageContext struct {
	Owner             string
	ReminderLists     []*reminder_model.ReminderList
	SelectedList      *reminder_model.ReminderList
	ListCount         int
	SelectedListCount int
	WorkingCount      int
	DoneCount         int
}

type ListRowContext struct {
	ReminderList *reminder_model.ReminderList
	SelectedList *reminder_model.ReminderList
}

type ItemRowContext struct {
	ReminderItem *reminder_model.ReminderItem
}

// RowContext pairs a list with the current selection so the list-row
// partial can be reused from the grid template.
func (p *PageContext) RowContext(list *reminder_model.ReminderList) *ListRowContext {
	return &ListRowContext{ReminderList: list, SelectedList: p.SelectedList}
}

func (p *PageContext) ItemContext(item *reminder_model.ReminderItem) *ItemRowContext {
	return &ItemRowContext{ReminderItem: item}
}

type LoginContext struct {
	Unauthorized bool
	Failed       bool
}

// BuildPageContext reads the owner's lists and selection and derives the
// counts the templates need. WorkingCount counts unstruck items in the
// selected list; DoneCount is the remainder.
func BuildPageContext(ctx context.Context, svc *reminder_services.ReminderService, owner string) (*PageContext, error) {
	lists, err := svc.GetLists(ctx, owner)
	if err != nil {
		return nil, err
	}

	selected, err := svc.GetSelectedList(ctx, owner)
	if err != nil {
		return nil, err
	}

	page := &PageContext{
		Owner:         owner,
		ReminderLists: lists,
		SelectedList:  selected,
		ListCount:     len(lists),
	}

	if selected != nil {
		page.SelectedListCount = len(selected.Items)
		for _, item := range selected.Items {
			if !item.Completed {
				page.WorkingCount++
			}
		}
		page.DoneCount = page.SelectedListCount - page.WorkingCount
	}

	return page, nil
}
