package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/openhire/recruitment-api/internal/core/domain"
	"github.com/openhire/recruitment-api/internal/core/ports"
)

// ReportService produces the CSV export and the cached pipeline metrics.
type ReportService struct {
	apps   ports.ApplicationRepository
	jobs   ports.JobRepository
	cache  ports.Cache
	logger zerolog.Logger
}

func NewReportService(apps ports.ApplicationRepository, jobs ports.JobRepository, cache ports.Cache, logger zerolog.Logger) *ReportService {
	return &ReportService{apps: apps, jobs: jobs, cache: cache, logger: logger}
}

// ExportApplicationsCSV renders all applications within the optional date
// range. Job titles are resolved once per distinct job.
func (s *ReportService) ExportApplicationsCSV(ctx context.Context, from, to time.Time) ([]byte, error) {
	applications, _, err := s.apps.List(ctx, ports.ListApplicationsFilter{
		DateFrom: from,
		DateTo:   to,
		Page:     1,
		Limit:    0, // unbounded: exports cover the full range
	})
	if err != nil {
		return nil, err
	}

	jobsByID := map[string]*domain.Job{}
	jobFor := func(id string) *domain.Job {
		if j, ok := jobsByID[id]; ok {
			return j
		}
		j, jerr := s.jobs.FindByID(ctx, id)
		if jerr != nil {
			j = &domain.Job{}
		}
		jobsByID[id] = j
		return j
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"Candidate Name", "Email", "Job Title", "Department", "Status", "Resume", "Applied At"})
	for _, a := range applications {
		job := jobFor(a.JobID)
		_ = w.Write([]string{
			a.CandidateInfo.Name,
			a.CandidateInfo.Email,
			job.Title,
			job.Department,
			string(a.Status),
			a.ResumePath,
			a.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	s.logger.Info().Int("applications", len(applications)).Msg("applications CSV export generated")

	return buf.Bytes(), nil
}

// PipelineMetrics aggregates applications per status plus the mean
// time-to-hire, served cache-aside under a fixed key with the metrics TTL.
func (s *ReportService) PipelineMetrics(ctx context.Context) (*ports.PipelineMetrics, error) {
	if raw, ok, err := s.cache.Get(ctx, ports.KeyPipelineMetrics); err != nil {
		s.logger.Warn().Err(err).Msg("pipeline metrics cache read failed")
	} else if ok {
		var cached ports.PipelineMetrics
		if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
			return &cached, nil
		}
	}

	pipeline, err := s.apps.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	avg, err := s.apps.AvgTimeToOffer(ctx)
	if err != nil {
		return nil, err
	}

	metrics := &ports.PipelineMetrics{
		Pipeline:          pipeline,
		AvgTimeToHireDays: avg.Hours() / 24,
	}

	if raw, err := json.Marshal(metrics); err == nil {
		if err := s.cache.Set(ctx, ports.KeyPipelineMetrics, raw, ports.MetricsTTL); err != nil {
			s.logger.Warn().Err(err).Msg("pipeline metrics cache write failed")
		}
	}

	return metrics, nil
}
