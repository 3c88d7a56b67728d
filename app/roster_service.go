package app

import (
	"context"

	"placementcms/domain/core"
	"placementcms/domain/placement"
	domain "placementcms/domain/roster"
	"placementcms/internal"
	apperrors "placementcms/internal/errors"
	"placementcms/internal/roster"
	"placementcms/ports"
)

// RosterUpload is the outcome of a roster upload as seen by callers
type RosterUpload struct {
	Result    *domain.UploadResult
	Committed bool
	Students  []placement.Student
	Checksum  core.Checksum
}

// RosterService runs uploaded rosters through the ingestion pipeline and
// optionally persists accepted records
type RosterService struct {
	ingestor *roster.Ingestor
	students *StudentService
	imports  ports.ImportLogRepository
	commit   bool
	logger   *internal.Logger
}

// NewRosterService creates a roster service. students and imports may be nil
// for offline validation.
func NewRosterService(ingestor *roster.Ingestor, students *StudentService, imports ports.ImportLogRepository, commit bool, logger *internal.Logger) *RosterService {
	if logger == nil {
		logger = internal.NewNopLogger()
	}
	return &RosterService{
		ingestor: ingestor,
		students: students,
		imports:  imports,
		commit:   commit && students != nil,
		logger:   logger,
	}
}

// Ingestor exposes the pipeline, mainly for the help page
func (s *RosterService) Ingestor() *roster.Ingestor { return s.ingestor }

// CommitsOnUpload reports whether accepted records are stored by Upload
func (s *RosterService) CommitsOnUpload() bool { return s.commit }

// Upload validates a roster and, when configured, stores the accepted records
func (s *RosterService) Upload(ctx context.Context, up roster.Upload) (*RosterUpload, error) {
	return s.run(ctx, up, s.commit)
}

// Import validates a roster and stores the accepted records regardless of
// the upload setting
func (s *RosterService) Import(ctx context.Context, up roster.Upload) (*RosterUpload, error) {
	if s.students == nil {
		return nil, apperrors.ConfigInvalid("roster import requires a student store")
	}
	return s.run(ctx, up, true)
}

func (s *RosterService) run(ctx context.Context, up roster.Upload, commit bool) (*RosterUpload, error) {
	result, err := s.ingestor.Ingest(ctx, up)
	if err != nil {
		return nil, err
	}

	out := &RosterUpload{Result: result, Checksum: core.NewChecksum(up.Data)}
	if commit && len(result.Records) > 0 {
		students, err := s.students.BulkCreate(ctx, result.Records)
		if err != nil {
			s.record(ctx, up.Filename, out)
			return nil, apperrors.Wrapf(err, "failed to store roster %s", up.Filename)
		}
		out.Committed = true
		out.Students = students
	}

	s.logger.With("file", up.Filename, "checksum", out.Checksum.String()).
		Info("[RosterService] outcome=%s accepted=%d committed=%t", result.Outcome, result.Count, out.Committed)
	s.record(ctx, up.Filename, out)
	return out, nil
}

// record writes the import log entry; failures are logged, not returned
func (s *RosterService) record(ctx context.Context, filename string, out *RosterUpload) {
	if s.imports == nil {
		return
	}
	entry := &domain.ImportLog{
		Filename:  filename,
		Checksum:  out.Checksum.String(),
		Outcome:   out.Result.Outcome,
		Accepted:  out.Result.Count,
		Rejected:  out.Result.RejectedRows(),
		Committed: out.Committed,
	}
	if err := s.imports.Record(ctx, entry); err != nil {
		s.logger.Warn("[RosterService] failed to record import of %q: %v", filename, err)
	}
}

// History returns recent uploads
func (s *RosterService) History(ctx context.Context, limit int) ([]domain.ImportLog, error) {
	if s.imports == nil {
		return []domain.ImportLog{}, nil
	}
	entries, err := s.imports.ListRecent(ctx, limit)
	if err != nil {
		return nil, mapRepoError(err, "failed to list roster imports")
	}
	return entries, nil
}
