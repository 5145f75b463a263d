package service

import (
	"context"

	"github.com/deppfellow/contacts-api/internal/lib/job"
	"github.com/deppfellow/contacts-api/internal/model"
	"github.com/deppfellow/contacts-api/internal/sqlerr"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// ContactRepository is the storage the contact operations need.
type ContactRepository interface {
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context, offset, limit int) ([]model.Contact, error)
	GetByID(ctx context.Context, id int64) (*model.Contact, error)
	Create(ctx context.Context, input model.ContactInput) (*model.Contact, error)
	Update(ctx context.Context, id int64, input model.ContactInput) (*model.Contact, error)
	Delete(ctx context.Context, id int64) (*model.Contact, error)
}

// TaskEnqueuer is satisfied by *asynq.Client.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type ContactService struct {
	repo ContactRepository
	jobs TaskEnqueuer
}

// NewContactService builds the service. A nil jobs disables the welcome
// task.
func NewContactService(repo ContactRepository, jobs TaskEnqueuer) *ContactService {
	return &ContactService{
		repo: repo,
		jobs: jobs,
	}
}

// List returns one page of contacts ordered by id.
func (s *ContactService) List(ctx context.Context, page model.Pagination) (model.ContactsPage, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return model.ContactsPage{}, sqlerr.HandleError(err)
	}

	contacts, err := s.repo.List(ctx, page.Offset(), page.PageSize)
	if err != nil {
		return model.ContactsPage{}, sqlerr.HandleError(err)
	}

	return model.NewContactsPage(page, total, contacts), nil
}

func (s *ContactService) Get(ctx context.Context, id int64) (*model.Contact, error) {
	contact, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return contact, nil
}

// Create stores the contact and schedules its welcome email.
func (s *ContactService) Create(ctx context.Context, input model.ContactInput) (*model.Contact, error) {
	contact, err := s.repo.Create(ctx, input)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}

	s.enqueueWelcome(ctx, contact)

	return contact, nil
}

func (s *ContactService) Update(ctx context.Context, id int64, input model.ContactInput) (*model.Contact, error) {
	contact, err := s.repo.Update(ctx, id, input)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return contact, nil
}

// Delete removes the contact and returns what was stored.
func (s *ContactService) Delete(ctx context.Context, id int64) (*model.Contact, error) {
	contact, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return contact, nil
}

// enqueueWelcome never fails the request: the contact is already stored.
func (s *ContactService) enqueueWelcome(ctx context.Context, contact *model.Contact) {
	if s.jobs == nil {
		return
	}

	logger := zerolog.Ctx(ctx).With().Int64("contact_id", contact.ID).Logger()

	task, err := job.NewContactWelcomeTask(contact.ID, contact.Name, contact.Email)
	if err != nil {
		logger.Error().Err(err).Msg("failed to build contact welcome task")
		return
	}

	info, err := s.jobs.EnqueueContext(ctx, task)
	if err != nil {
		logger.Error().Err(err).Msg("failed to enqueue contact welcome task")
		return
	}

	logger.Debug().Str("task_id", info.ID).Str("queue", info.Queue).Msg("enqueued contact welcome task")
}
