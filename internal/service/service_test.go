package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"arkiv/internal/database"
	"arkiv/internal/models"
	"arkiv/internal/repository/sqlite"
	"arkiv/internal/retention"
)

// recordingNotifier captures broadcast events for assertions.
type recordingNotifier struct {
	mu     sync.Mutex
	events []recordedEvent
}

type recordedEvent struct {
	eventType string
	payload   map[string]any
}

func (n *recordingNotifier) Broadcast(eventType string, payload map[string]any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, recordedEvent{eventType: eventType, payload: payload})
}

func (n *recordingNotifier) all() []recordedEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]recordedEvent(nil), n.events...)
}

type testEnv struct {
	folders     *FolderService
	checkouts   *CheckoutService
	disposals   *DisposalService
	departments *DepartmentService
	settings    *SettingsService
	dashboard   *DashboardService
	logs        *sqlite.LogRepository
	notifier    *recordingNotifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	h := database.NewTestHandle(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &sqlite.RepositoryConfig{Handle: h, Logger: logger}

	folderRepo := sqlite.NewFolderRepository(cfg)
	checkoutRepo := sqlite.NewCheckoutRepository(cfg)
	disposalRepo := sqlite.NewDisposalRepository(cfg)
	departmentRepo := sqlite.NewDepartmentRepository(cfg)
	settingsRepo := sqlite.NewSettingsRepository(cfg)
	logRepo := sqlite.NewLogRepository(cfg)
	txManager := sqlite.NewTransactionManager(h)

	schedule := retention.DefaultSchedule()
	notifier := &recordingNotifier{}

	return &testEnv{
		folders:     NewFolderService(folderRepo, departmentRepo, settingsRepo, logRepo, txManager, schedule, notifier, logger),
		checkouts:   NewCheckoutService(folderRepo, checkoutRepo, logRepo, txManager, notifier, logger),
		disposals:   NewDisposalService(folderRepo, disposalRepo, logRepo, txManager, notifier, logger),
		departments: NewDepartmentService(departmentRepo, logRepo, txManager, logger),
		settings:    NewSettingsService(settingsRepo, logRepo, txManager, logger),
		dashboard:   NewDashboardService(folderRepo, checkoutRepo, disposalRepo),
		logs:        logRepo,
		notifier:    notifier,
	}
}

func (e *testEnv) mustCreateDepartment(t *testing.T, name string) *models.Department {
	t.Helper()
	dept, err := e.departments.Create(context.Background(), &models.CreateDepartmentRequest{Name: name})
	if err != nil {
		t.Fatalf("creating department: %v", err)
	}
	return dept
}

func intPtr(v int) *int { return &v }

func validFolderRequest(departmentID string) *models.CreateFolderRequest {
	return &models.CreateFolderRequest{
		FileCode:      "2020-0042",
		Subject:       "Annual financial report",
		Category:      models.CategoryFinancial,
		DepartmentID:  departmentID,
		RetentionCode: "R10",
		FileYear:      2020,
		FileCount:     3,
		FolderType:    models.FolderTypeBinder,
		StorageType:   models.StorageTypeCell,
		Location: models.Location{
			Unit:    intPtr(1),
			Face:    intPtr(1),
			Section: intPtr(2),
			Shelf:   intPtr(3),
		},
	}
}

func (e *testEnv) mustCreateFolder(t *testing.T, departmentID string, mutate func(*models.CreateFolderRequest)) *models.Folder {
	t.Helper()
	req := validFolderRequest(departmentID)
	if mutate != nil {
		mutate(req)
	}
	folder, err := e.folders.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("creating folder: %v", err)
	}
	return folder
}

func validCheckoutRequest() *models.CreateCheckoutRequest {
	now := time.Now().UTC().Truncate(time.Second)
	return &models.CreateCheckoutRequest{
		Type:              models.CheckoutTypeFull,
		PersonName:        "Ana",
		PersonSurname:     "Kovac",
		Phone:             "041234567",
		Reason:            "audit review",
		CheckoutDate:      now,
		PlannedReturnDate: now.AddDate(0, 0, 14),
	}
}

// countLogs returns how many audit entries of the given type reference the
// folder.
func (e *testEnv) countLogs(t *testing.T, logType models.LogType, folderID string) int {
	t.Helper()
	entries, err := e.logs.List(context.Background(), &models.LogFilter{Type: logType, FolderID: folderID})
	if err != nil {
		t.Fatalf("listing logs: %v", err)
	}
	return len(entries)
}

// countEvents returns how many broadcast events of the given type carry the
// folder ID.
func (e *testEnv) countEvents(eventType, folderID string) int {
	n := 0
	for _, ev := range e.notifier.all() {
		if ev.eventType == eventType && ev.payload["folder_id"] == folderID {
			n++
		}
	}
	return n
}
