package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-attendance-sync/internal/logger"
	"github.com/MKhiriev/go-attendance-sync/internal/store"
	"github.com/MKhiriev/go-attendance-sync/models"
)

type attendanceService struct {
	resources store.ResourceStore
	now       func() time.Time

	// serializes the check-then-append of registrations
	registerMu sync.Mutex

	logger *logger.Logger
}

func NewAttendanceService(resources store.ResourceStore, logger *logger.Logger) AttendanceService {
	return &attendanceService{
		resources: resources,
		now:       time.Now,
		logger:    logger,
	}
}

func (s *attendanceService) IsRegistered(ctx context.Context, id string) (bool, error) {
	if err := validateField(id); err != nil {
		return false, err
	}

	for _, d := range []models.Dataset{models.PendingList, models.AllowList} {
		found, err := s.resources.QueryFunc(ctx, d, recordMatch(func(r models.UserRecord) bool {
			return r.ID == id
		}))
		if err != nil {
			return false, fmt.Errorf("query %s: %w", d, err)
		}
		if found != "" {
			return true, nil
		}
	}

	return false, nil
}

func (s *attendanceService) IsApproved(ctx context.Context, uid string) (bool, error) {
	if err := validateField(uid); err != nil {
		return false, err
	}

	found, err := s.resources.QueryFunc(ctx, models.AllowList, recordMatch(func(r models.UserRecord) bool {
		return r.UID == uid
	}))
	if err != nil {
		return false, fmt.Errorf("query %s: %w", models.AllowList, err)
	}

	return found != "", nil
}

func (s *attendanceService) AddPendingRegistration(ctx context.Context, id, uid string) error {
	if err := validateField(id); err != nil {
		return err
	}
	if err := validateField(uid); err != nil {
		return err
	}

	s.registerMu.Lock()
	defer s.registerMu.Unlock()

	registered, err := s.IsRegistered(ctx, id)
	if err != nil {
		return err
	}
	if registered {
		return fmt.Errorf("%w: id %s", ErrAlreadyRegistered, id)
	}

	record := models.UserRecord{ID: id, UID: uid}
	if err = s.resources.Append(ctx, models.PendingList, record.String()); err != nil {
		return fmt.Errorf("append registration: %w", err)
	}

	s.logger.Info().Str("func", "attendanceService.AddPendingRegistration").Str("id", id).Msg("registration queued")
	return nil
}

func (s *attendanceService) AppendActivity(ctx context.Context, entry string) error {
	if entry == "" || len(entry) > models.MaxLineLength || strings.ContainsAny(entry, "\r\n") {
		return fmt.Errorf("%w: activity entry %q", ErrInvalidDataProvided, entry)
	}

	if err := s.resources.Append(ctx, models.ActivityLog, entry); err != nil {
		return fmt.Errorf("append activity: %w", err)
	}
	return nil
}

func (s *attendanceService) HandleScan(ctx context.Context, uid string) (models.ScanResult, error) {
	result := models.ScanResult{UID: uid, ScannedAt: s.now().UTC()}

	approved, err := s.IsApproved(ctx, uid)
	if err != nil {
		return models.ScanResult{}, err
	}
	if !approved {
		s.logger.Debug().Str("func", "attendanceService.HandleScan").Str("uid", uid).Msg("scan of unknown uid")
		return result, nil
	}

	entry := result.ScannedAt.Format(time.RFC3339) + "," + uid
	if err = s.AppendActivity(ctx, entry); err != nil {
		return models.ScanResult{}, err
	}

	result.Approved = true
	result.Entry = entry
	return result, nil
}

func (s *attendanceService) ReadDataset(ctx context.Context, d models.Dataset) (string, error) {
	if !d.Valid() {
		return "", fmt.Errorf("%w: %s", models.ErrUnknownDataset, d)
	}
	return s.resources.ReadAll(ctx, d)
}

// recordMatch adapts a record predicate to a line predicate. Lines that are
// not records never match.
func recordMatch(match func(r models.UserRecord) bool) func(line string) bool {
	return func(line string) bool {
		r, err := models.ParseUserRecord(line)
		return err == nil && match(r)
	}
}

// maxFieldLength bounds a registration id or uid.
const maxFieldLength = 256

func validateField(v string) error {
	if v == "" || len(v) > maxFieldLength || strings.ContainsAny(v, ",\r\n") {
		return fmt.Errorf("%w: %q", ErrInvalidDataProvided, v)
	}
	return nil
}
