package router

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"library-api/config"
	"library-api/internal/application"
	pginfra "library-api/internal/infrastructure/postgres"
	handlers "library-api/internal/interface/http"
	"library-api/internal/router/modules"
)

// Deps carries the infrastructure built in main. Everything flows down
// through constructors; there is no ambient singleton to reach for.
type Deps struct {
	Cfg    *config.Config
	Logger *logrus.Logger
	Pool   *pgxpool.Pool
	Redis  *redis.Client
}

// InitModules wires repositories, services and handlers and registers every
// feature module with the router registry. Called once during startup.
func InitModules(r *Registry, d Deps) {
	books := pginfra.NewBookRepository(d.Pool)
	students := pginfra.NewStudentRepository(d.Pool)
	records := pginfra.NewBorrowRepository(d.Pool)
	stats := pginfra.NewStatsRepository(d.Pool)
	store := pginfra.NewBorrowStore(d.Pool)

	debug := !d.Cfg.IsProduction()

	bookSvc := application.NewBookService(books, records, d.Logger)
	studentSvc := application.NewStudentService(students, records, d.Logger)
	borrowSvc := application.NewBorrowService(store, records, d.Logger)
	statsSvc := application.NewStatsService(stats, records, d.Logger)

	r.Add(modules.NewBookModule(handlers.NewBookHandler(bookSvc, d.Logger, debug)))
	r.Add(modules.NewStudentModule(handlers.NewStudentHandler(studentSvc, d.Logger, debug)))
	r.Add(modules.NewBorrowModule(handlers.NewBorrowHandler(borrowSvc, d.Logger, debug)))
	r.Add(modules.NewStatsModule(handlers.NewStatsHandler(statsSvc, d.Logger, debug)))
	if d.Cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
