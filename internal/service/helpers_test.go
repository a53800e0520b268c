package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/alexanderramin/dayweave/internal/db"
	"github.com/alexanderramin/dayweave/internal/repository"
	"github.com/alexanderramin/dayweave/internal/testutil"
)

type testRepos struct {
	db        *sql.DB
	uow       db.UnitOfWork
	events    *repository.SQLiteEventRepo
	todos     *repository.SQLiteTodoRepo
	templates *repository.SQLiteTemplateRepo
	settings  *repository.SQLiteSettingsRepo
	learning  *repository.SQLiteLearningRepo
}

func newTestRepos(t *testing.T) *testRepos {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &testRepos{
		db:        database,
		uow:       testutil.NewTestUoW(database),
		events:    repository.NewSQLiteEventRepo(database),
		todos:     repository.NewSQLiteTodoRepo(database),
		templates: repository.NewSQLiteTemplateRepo(database),
		settings:  repository.NewSQLiteSettingsRepo(database),
		learning:  repository.NewSQLiteLearningRepo(database),
	}
}

func (r *testRepos) scheduleService(uow db.UnitOfWork, observers ...UseCaseObserver) ScheduleService {
	return NewScheduleService(r.events, r.templates, r.settings, r.learning, uow, observers...)
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}
