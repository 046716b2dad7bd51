package router

import (
	"database/sql"
	"net/http"
	"os"

	mem "dog-boarding-api/internal/adapters/storage/memory"
	pg "dog-boarding-api/internal/adapters/storage/postgres"
	"dog-boarding-api/internal/domain/dogs"
	"dog-boarding-api/internal/domain/healths"
	"dog-boarding-api/internal/domain/onboarding"
	"dog-boarding-api/internal/domain/owners"
	"dog-boarding-api/internal/domain/servicerecords"
	"dog-boarding-api/internal/domain/servicetypes"
	"dog-boarding-api/internal/domain/stays"
	"dog-boarding-api/internal/domain/timeline"
	"dog-boarding-api/internal/middleware"
	"dog-boarding-api/internal/platform/logger"
	"dog-boarding-api/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Log logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.New(logger.Options{})
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var (
		ownerRepo  owners.Repository
		dogRepo    dogs.Repository
		healthRepo healths.Repository
		typeRepo   servicetypes.Repository
		stayRepo   stays.Repository
		recordRepo servicerecords.Repository
		txRunner   onboarding.TxRunner
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			} else {
				log.Warn("postgres unavailable, falling back to in-memory", map[string]any{
					"error": err.Error(),
				})
			}
		}
	}

	if db != nil {
		ownerRepo = pg.NewOwnersRepo(db)
		dogRepo = pg.NewDogsRepo(db)
		healthRepo = pg.NewHealthsRepo(db)
		typeRepo = pg.NewServiceTypesRepo(db)
		stayRepo = pg.NewStaysRepo(db)
		recordRepo = pg.NewServiceRecordsRepo(db)
		txRunner = pg.NewTxRunner(db)
	} else {
		store := mem.NewStore()
		ownerRepo = store.Owners()
		dogRepo = store.Dogs()
		healthRepo = store.Healths()
		typeRepo = store.ServiceTypes()
		stayRepo = store.Stays()
		recordRepo = store.ServiceRecords()
		txRunner = store
	}

	// Services por módulo, en orden de dependencia
	ownersSvc := owners.NewService(ownerRepo)
	dogsSvc := dogs.NewService(dogRepo, ownersSvc)
	healthsSvc := healths.NewService(healthRepo, dogsSvc)
	typesSvc := servicetypes.NewService(typeRepo)
	staysSvc := stays.NewService(stayRepo, dogsSvc, recordRepo)
	recordsSvc := servicerecords.NewService(recordRepo, dogsSvc, staysSvc, typesSvc)
	timelineSvc := timeline.NewService(dogsSvc, staysSvc, recordsSvc, typesSvc)
	onboardingSvc := onboarding.NewService(txRunner, ownersSvc, dogsSvc, healthsSvc)

	// Rutas por módulo
	owners.RegisterRoutes(r, ownersSvc, dogsSvc)
	dogs.RegisterRoutes(r, dogsSvc)
	healths.RegisterRoutes(r, healthsSvc)
	servicetypes.RegisterRoutes(r, typesSvc)
	stays.RegisterRoutes(r, staysSvc)
	servicerecords.RegisterRoutes(r, recordsSvc)
	timeline.RegisterRoutes(r, timelineSvc)
	onboarding.RegisterRoutes(r, onboardingSvc)

	return r
}
