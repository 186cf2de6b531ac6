package jobsrv

import (
	"context"

	"github.com/Abraxas-365/careerlens/careers/job"
	"github.com/Abraxas-365/careerlens/pkg/errx"
	"github.com/Abraxas-365/careerlens/pkg/logx"
)

type Service struct {
	board job.Board
}

func NewService(board job.Board) *Service {
	return &Service{board: board}
}

// Search looks up postings on the job board. The result is never nil.
func (s *Service) Search(ctx context.Context, q job.Query) ([]job.Job, error) {
	q.Normalize()
	if err := q.Validate(); err != nil {
		return nil, err
	}

	jobs, err := s.board.Search(ctx, q)
	if err != nil {
		if _, ok := errx.As(err); ok {
			return nil, err
		}
		return nil, job.ErrProvider(err)
	}
	if jobs == nil {
		jobs = []job.Job{}
	}

	logx.Debugf("job search %q type=%q returned %d postings", q.Text(), q.Type, len(jobs))
	return jobs, nil
}
