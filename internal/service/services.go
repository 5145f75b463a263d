package service

import (
	"github.com/deppfellow/contacts-api/internal/lib/job"
	"github.com/deppfellow/contacts-api/internal/repository"
	"github.com/deppfellow/contacts-api/internal/server"
)

type Services struct {
	Contact *ContactService
	Job     *job.JobService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	var enqueuer TaskEnqueuer
	if s.Job != nil {
		enqueuer = s.Job.Client
	}

	return &Services{
		Contact: NewContactService(repos.Contact, enqueuer),
		Job:     s.Job,
	}, nil
}
