package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/askhub/askhub-backend/internal/common"
	"github.com/askhub/askhub-backend/internal/repository"
	"github.com/askhub/askhub-backend/pkg/cache"
)

// ActionName identifies a named administrative action
type ActionName string

// The enumerated admin actions
const (
	ActionClearNotifications  ActionName = "CLEAR_NOTIFICATIONS"
	ActionDeleteInactiveUsers ActionName = "DELETE_INACTIVE_USERS"
	ActionGenerateReport      ActionName = "GENERATE_SYSTEM_REPORT"
)

// Default parameter values
const (
	DefaultNotificationAgeDays = 30
	DefaultInactiveDays        = 30

	// cascade batch size; bounds each pass so a timeout can only land
	// between fully committed per-user transactions
	inactiveUserChunk = 100
)

// Action is one submitted admin action with its parameters
type Action struct {
	Name   ActionName             `json:"action"`
	Params map[string]interface{} `json:"data"`
}

// ActionResult is the outcome of a completed action
type ActionResult struct {
	Action   ActionName                `json:"action"`
	Status   string                    `json:"status"`
	Summary  string                    `json:"message"`
	Affected int64                     `json:"affected"`
	Users    int64                     `json:"users_deleted,omitempty"`
	Stages   []repository.CascadeStage `json:"stages,omitempty"`
	Report   *SystemReport             `json:"report,omitempty"`
}

// SystemReport aggregates the overview figures with storage diagnostics
type SystemReport struct {
	GeneratedAt time.Time              `json:"generated_at"`
	Overview    *Overview              `json:"overview"`
	Tables      []repository.TableStat `json:"tables"`
	DataBytes   int64                  `json:"data_bytes"`
	IndexBytes  int64                  `json:"index_bytes"`
}

// ActionService executes named admin actions. Each Dispatch call is a
// single synchronous attempt; there is no retry and no persisted
// in-progress state.
type ActionService struct {
	users         repository.UserRepository
	notifications repository.NotificationRepository
	diagnostics   repository.DiagnosticsRepository
	analytics     *AnalyticsService
	cache         cache.Service
	inactiveDays  int
}

// NewActionService creates a new ActionService. cacheService may be nil.
func NewActionService(
	users repository.UserRepository,
	notifications repository.NotificationRepository,
	diagnostics repository.DiagnosticsRepository,
	analytics *AnalyticsService,
	cacheService cache.Service,
	inactiveDays int,
) *ActionService {
	if inactiveDays <= 0 {
		inactiveDays = DefaultInactiveDays
	}
	return &ActionService{
		users:         users,
		notifications: notifications,
		diagnostics:   diagnostics,
		analytics:     analytics,
		cache:         cacheService,
		inactiveDays:  inactiveDays,
	}
}

// Dispatch validates and executes one action
func (s *ActionService) Dispatch(ctx context.Context, action Action) (*ActionResult, error) {
	switch action.Name {
	case ActionClearNotifications:
		return s.clearOldNotifications(ctx, action.Params)
	case ActionDeleteInactiveUsers:
		return s.deleteInactiveUsers(ctx, action.Params)
	case ActionGenerateReport:
		return s.generateReport(ctx)
	default:
		return nil, fmt.Errorf("%w: %q", common.ErrUnknownAction, action.Name)
	}
}

// clearOldNotifications deletes read notifications older than the
// cutoff. Re-running with nothing left to delete succeeds with zero.
func (s *ActionService) clearOldNotifications(ctx context.Context, params map[string]interface{}) (*ActionResult, error) {
	days := intParam(params, "olderThanDays", DefaultNotificationAgeDays)
	cutoff := time.Now().AddDate(0, 0, -days)

	affected, err := s.notifications.DeleteReadBefore(cutoff)
	if err != nil {
		return nil, fmt.Errorf("clear notifications: %w", err)
	}

	s.invalidateOverview(ctx)
	return &ActionResult{
		Action:   ActionClearNotifications,
		Status:   "completed",
		Summary:  fmt.Sprintf("Cleared %d read notifications older than %d days", affected, days),
		Affected: affected,
	}, nil
}

// deleteInactiveUsers cascades deletes of users whose last activity
// predates the window. The confirmation flag is mandatory; without it
// the action is rejected before any repository call.
func (s *ActionService) deleteInactiveUsers(ctx context.Context, params map[string]interface{}) (*ActionResult, error) {
	if !boolParam(params, "confirm") {
		return nil, common.ErrConfirmationRequired
	}

	days := intParam(params, "inactiveDays", s.inactiveDays)
	cutoff := time.Now().AddDate(0, 0, -days)

	var usersDeleted, recordsDeleted int64
	for {
		ids, err := s.users.FindInactiveIDs(cutoff, inactiveUserChunk)
		if err != nil {
			return nil, s.partialFailure("find inactive users", usersDeleted, recordsDeleted, err)
		}
		if len(ids) == 0 {
			break
		}

		for _, id := range ids {
			result, err := s.users.DeleteCascade(id)
			if err != nil {
				// this user's transaction rolled back; everything
				// before it is committed and the action can be re-run
				return nil, s.partialFailure(fmt.Sprintf("cascade for user %d", id), usersDeleted, recordsDeleted, err)
			}
			usersDeleted++
			recordsDeleted += result.Total
		}
	}

	s.invalidateOverview(ctx)
	return &ActionResult{
		Action:   ActionDeleteInactiveUsers,
		Status:   "completed",
		Summary:  fmt.Sprintf("Deleted %d inactive users (%d records) with no activity in %d days", usersDeleted, recordsDeleted, days),
		Affected: recordsDeleted,
		Users:    usersDeleted,
	}, nil
}

func (s *ActionService) partialFailure(stage string, users, records int64, err error) error {
	if users == 0 && records == 0 {
		// nothing committed yet; surface the plain cause
		return fmt.Errorf("delete inactive users: %w", err)
	}
	return &common.PartialFailureError{
		Action:    string(ActionDeleteInactiveUsers),
		Stage:     stage,
		Completed: records,
		Err:       err,
	}
}

// generateReport is read-only and always safe to re-run
func (s *ActionService) generateReport(ctx context.Context) (*ActionResult, error) {
	report, err := s.GenerateSystemReport(ctx)
	if err != nil {
		return nil, err
	}

	return &ActionResult{
		Action:  ActionGenerateReport,
		Status:  "completed",
		Summary: fmt.Sprintf("System report generated at %s", report.GeneratedAt.Format(time.RFC3339)),
		Report:  report,
	}, nil
}

// GenerateSystemReport builds the full system report: the overview
// snapshot plus per-table storage diagnostics
func (s *ActionService) GenerateSystemReport(ctx context.Context) (*SystemReport, error) {
	overview, err := s.analytics.Overview(ctx)
	if err != nil {
		return nil, fmt.Errorf("system report: %w", err)
	}

	tables, err := s.diagnostics.TableStats()
	if err != nil {
		return nil, fmt.Errorf("system report diagnostics: %w", err)
	}

	report := &SystemReport{
		GeneratedAt: time.Now(),
		Overview:    overview,
		Tables:      tables,
	}
	for _, t := range tables {
		report.DataBytes += t.DataBytes
		report.IndexBytes += t.IndexBytes
	}
	return report, nil
}

func (s *ActionService) invalidateOverview(ctx context.Context) {
	if s.cache != nil && s.cache.IsAvailable() {
		_ = s.cache.InvalidateOverview(ctx)
	}
}

// intParam reads an integer action parameter with a default. Values
// below 1 fall back to the default.
func intParam(params map[string]interface{}, key string, def int) int {
	switch v := params[key].(type) {
	case float64:
		if v >= 1 {
			return int(v)
		}
	case int:
		if v >= 1 {
			return v
		}
	case string:
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			return n
		}
	}
	return def
}

// boolParam reads a boolean action parameter; absent means false
func boolParam(params map[string]interface{}, key string) bool {
	switch v := params[key].(type) {
	case bool:
		return v
	case string:
		return v == "true"
	}
	return false
}
