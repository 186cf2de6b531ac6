package careersrv

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/Abraxas-365/careerlens/careers/career"
	"github.com/Abraxas-365/careerlens/internal/ai"
	"github.com/Abraxas-365/careerlens/pkg/errx"
	"github.com/Abraxas-365/careerlens/pkg/kernel"
	"github.com/Abraxas-365/careerlens/pkg/logx"
)

// DatasetColumns is the CSV header a career dataset must carry
var DatasetColumns = []string{
	"job_position_name",
	"skills_required",
	"skills_text",
	"educational_requirements",
	"responsibilities",
	"salary_range",
	"growth_projection",
	"job_category",
}

// IngestReceipt summarizes an accepted dataset upload
type IngestReceipt struct {
	Records int                  `json:"records"`
	Skipped int                  `json:"skipped"`
	Jobs    []kernel.IngestJobID `json:"jobs"`
}

// IngestService splits datasets into queued chunks and embeds them
type IngestService struct {
	embedder  ai.BatchEmbedder
	index     career.VectorIndex
	queue     career.IngestQueue
	chunkSize int
	now       func() time.Time
}

func NewIngestService(embedder ai.BatchEmbedder, index career.VectorIndex, queue career.IngestQueue, chunkSize int) *IngestService {
	if chunkSize < 1 {
		chunkSize = 50
	}
	return &IngestService{
		embedder:  embedder,
		index:     index,
		queue:     queue,
		chunkSize: chunkSize,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// ParseDataset reads career records from CSV. Rows with a blank
// skills_text are skipped and counted.
func ParseDataset(r io.Reader) ([]career.Record, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, 0, career.ErrInvalidDataset().WithDetail("reason", "empty file")
	}
	if err != nil {
		return nil, 0, career.ErrInvalidDataset().WithCause(err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		// tolerate a UTF-8 BOM and stray casing from spreadsheet exports
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		index[h] = i
	}
	for _, col := range DatasetColumns {
		if _, ok := index[col]; !ok {
			return nil, 0, career.ErrInvalidDataset().WithDetail("missing_column", col)
		}
	}

	var records []career.Record
	skipped := 0
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, career.ErrInvalidDataset().WithCause(err).WithDetail("line", line)
		}

		get := func(col string) string {
			i := index[col]
			if i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		rec := career.Record{
			JobPositionName:         get("job_position_name"),
			SkillsRequired:          get("skills_required"),
			SkillsText:              get("skills_text"),
			EducationalRequirements: get("educational_requirements"),
			Responsibilities:        get("responsibilities"),
			SalaryRange:             get("salary_range"),
			GrowthProjection:        get("growth_projection"),
			JobCategory:             get("job_category"),
		}
		if rec.SkillsText == "" {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	return records, skipped, nil
}

// Submit parses a dataset and queues it in chunks for the workers
func (s *IngestService) Submit(ctx context.Context, r io.Reader) (*IngestReceipt, error) {
	records, skipped, err := ParseDataset(r)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, career.ErrInvalidDataset().
			WithDetail("reason", "no rows with skills_text").
			WithDetail("skipped", skipped)
	}

	receipt := &IngestReceipt{Records: len(records), Skipped: skipped}
	for start := 0; start < len(records); start += s.chunkSize {
		end := min(start+s.chunkSize, len(records))
		job := career.IngestJob{
			ID:      kernel.NewIngestJobID(),
			Records: records[start:end],
			Created: s.now(),
		}
		if err := s.queue.Enqueue(ctx, job); err != nil {
			return nil, err
		}
		receipt.Jobs = append(receipt.Jobs, job.ID)
	}

	logx.Infof("queued %d career records in %d chunks (%d skipped)", receipt.Records, len(receipt.Jobs), skipped)
	return receipt, nil
}

// Process embeds the skills_text of a chunk and writes it to the index
func (s *IngestService) Process(ctx context.Context, job career.IngestJob) error {
	if len(job.Records) == 0 {
		return nil
	}

	texts := make([]string, len(job.Records))
	for i, rec := range job.Records {
		texts[i] = rec.SkillsText
	}

	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		if _, ok := errx.As(err); ok {
			return err
		}
		return ai.ErrEmbeddingProvider(err)
	}

	if err := s.index.Insert(ctx, job.Records, vectors); err != nil {
		return err
	}
	logx.Infof("ingest job %s: inserted %d records", job.ID, len(job.Records))
	return nil
}

// Status reports how many chunks are waiting
func (s *IngestService) Status(ctx context.Context) (*career.IngestStatus, error) {
	n, err := s.queue.Size(ctx)
	if err != nil {
		return nil, err
	}
	return &career.IngestStatus{Queue: s.queue.Name(), Pending: n}, nil
}
