package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/deppfellow/contacts-api/internal/errs"
	"github.com/deppfellow/contacts-api/internal/lib/job"
	"github.com/deppfellow/contacts-api/internal/model"
	"github.com/deppfellow/contacts-api/internal/testutil"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingEnqueuer struct {
	mu    sync.Mutex
	tasks []*asynq.Task
	err   error
}

func (r *recordingEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return nil, r.err
	}
	r.tasks = append(r.tasks, task)
	return &asynq.TaskInfo{ID: "task-1", Queue: "default", Type: task.Type()}, nil
}

func requireHTTPStatus(t *testing.T, err error, status int) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %v", err)
	assert.Equal(t, status, httpErr.Status)
	return httpErr
}

func TestContactService_List(t *testing.T) {
	repo := testutil.NewContactsInmem()
	repo.Seed(12)
	svc := NewContactService(repo, nil)

	page, err := svc.List(context.Background(), model.Pagination{Page: 2, PageSize: 5})
	require.NoError(t, err)

	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, int64(12), page.TotalItems)
	assert.Equal(t, 5, page.PageSize)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Contacts, 5)
	for i, c := range page.Contacts {
		assert.Equal(t, int64(i+6), c.ID)
	}
}

func TestContactService_ListSliceLength(t *testing.T) {
	repo := testutil.NewContactsInmem()
	repo.Seed(23)
	svc := NewContactService(repo, nil)

	for pageSize := 1; pageSize <= 25; pageSize += 4 {
		for pageNum := 1; pageNum <= 6; pageNum++ {
			p := model.Pagination{Page: pageNum, PageSize: pageSize}
			page, err := svc.List(context.Background(), p)
			require.NoError(t, err)

			want := min(pageSize, max(0, 23-(pageNum-1)*pageSize))
			assert.Len(t, page.Contacts, want, "page=%d pageSize=%d", pageNum, pageSize)
			assert.Equal(t, (23+pageSize-1)/pageSize, page.TotalPages)
		}
	}
}

func TestContactService_ListEmpty(t *testing.T) {
	svc := NewContactService(testutil.NewContactsInmem(), nil)

	page, err := svc.List(context.Background(), model.Pagination{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.NotNil(t, page.Contacts)
	assert.Empty(t, page.Contacts)
	assert.Equal(t, 0, page.TotalPages)
}

func TestContactService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	svc := NewContactService(testutil.NewContactsInmem(), nil)

	created, err := svc.Create(ctx, model.ContactInput{Name: "Jane", Email: "jane@example.com"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane", got.Name)
	assert.Equal(t, "jane@example.com", got.Email)

	updated, err := svc.Update(ctx, created.ID, model.ContactInput{Name: "Janet", Email: "janet@example.com"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)

	got, err = svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Janet", got.Name)
	assert.Equal(t, "janet@example.com", got.Email)

	deleted, err := svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Janet", deleted.Name)

	_, err = svc.Get(ctx, created.ID)
	httpErr := requireHTTPStatus(t, err, http.StatusNotFound)
	assert.Equal(t, "NOT_FOUND", httpErr.Code)
	assert.Equal(t, "Contact not found", httpErr.Message)
}

func TestContactService_NotFound(t *testing.T) {
	ctx := context.Background()
	svc := NewContactService(testutil.NewContactsInmem(), nil)
	input := model.ContactInput{Name: "x", Email: "x@example.com"}

	_, err := svc.Get(ctx, 42)
	requireHTTPStatus(t, err, http.StatusNotFound)

	_, err = svc.Update(ctx, 42, input)
	requireHTTPStatus(t, err, http.StatusNotFound)

	_, err = svc.Delete(ctx, 42)
	requireHTTPStatus(t, err, http.StatusNotFound)
}

func TestContactService_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := testutil.NewContactsInmem()
	svc := NewContactService(repo, nil)

	first, err := svc.Create(ctx, model.ContactInput{Name: "Jane", Email: "jane@example.com"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, model.ContactInput{Name: "John", Email: "john@example.com"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, model.ContactInput{Name: "Other", Email: "jane@example.com"})
	httpErr := requireHTTPStatus(t, err, http.StatusConflict)
	assert.Equal(t, "CONTACT_ALREADY_EXISTS", httpErr.Code)

	_, err = svc.Update(ctx, second.ID, model.ContactInput{Name: "John", Email: first.Email})
	requireHTTPStatus(t, err, http.StatusConflict)

	// keeping its own email is not a conflict
	_, err = svc.Update(ctx, first.ID, model.ContactInput{Name: "Jane D", Email: first.Email})
	assert.NoError(t, err)
}

func TestContactService_StorageFailureIsInternal(t *testing.T) {
	repo := testutil.NewContactsInmem()
	repo.Err = errors.New("connection refused")
	svc := NewContactService(repo, nil)

	_, err := svc.List(context.Background(), model.Pagination{Page: 1, PageSize: 10})
	httpErr := requireHTTPStatus(t, err, http.StatusInternalServerError)
	assert.NotContains(t, httpErr.Message, "connection refused")
}

func TestContactService_CreateEnqueuesWelcome(t *testing.T) {
	jobs := &recordingEnqueuer{}
	svc := NewContactService(testutil.NewContactsInmem(), jobs)

	created, err := svc.Create(context.Background(), model.ContactInput{Name: "Jane", Email: "jane@example.com"})
	require.NoError(t, err)

	require.Len(t, jobs.tasks, 1)
	assert.Equal(t, job.TaskContactWelcome, jobs.tasks[0].Type())
	assert.Contains(t, string(jobs.tasks[0].Payload()), `"contact_id":1`)
	assert.Equal(t, int64(1), created.ID)
}

func TestContactService_EnqueueFailureDoesNotFailCreate(t *testing.T) {
	jobs := &recordingEnqueuer{err: errors.New("redis down")}
	svc := NewContactService(testutil.NewContactsInmem(), jobs)

	created, err := svc.Create(context.Background(), model.ContactInput{Name: "Jane", Email: "jane@example.com"})
	require.NoError(t, err)
	assert.NotNil(t, created)
}

func TestContactService_DuplicateDoesNotEnqueue(t *testing.T) {
	jobs := &recordingEnqueuer{}
	svc := NewContactService(testutil.NewContactsInmem(), jobs)
	input := model.ContactInput{Name: "Jane", Email: "jane@example.com"}

	_, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), input)
	require.Error(t, err)

	assert.Len(t, jobs.tasks, 1)
}

func TestContactService_IDsNotReusedAfterDelete(t *testing.T) {
	svc := NewContactService(testutil.NewContactsInmem(), nil)
	ctx := context.Background()
	input := model.ContactInput{Name: "John Doe", Email: "john@example.com"}

	first, err := svc.Create(ctx, input)
	require.NoError(t, err)

	_, err = svc.Delete(ctx, first.ID)
	require.NoError(t, err)

	second, err := svc.Create(ctx, input)
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)

	_, err = svc.Get(ctx, first.ID)
	requireHTTPStatus(t, err, http.StatusNotFound)
}
