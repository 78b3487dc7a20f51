package router

import (
	"net/http"

	"pet-adoption/internal/adapters/storage"
	_ "pet-adoption/internal/docs"
	"pet-adoption/internal/domain/adoptions"
	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/domain/reports"
	"pet-adoption/internal/metrics"
	"pet-adoption/internal/middleware"
	"pet-adoption/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Logger logger.Logger // puede ser nil

	// Opcional: si no viene, repos in-memory.
	Repos *storage.Repositories

	// Opcional: si no viene, se crea uno propio.
	Metrics *metrics.Metrics
}

// Services expone los servicios armados por el router (seed, CLI, tests).
type Services struct {
	Pets      *pets.Service
	Adoptions *adoptions.Service
	Reports   *reports.Service
}

// NewServices arma los servicios sobre los repos dados.
func NewServices(repos storage.Repositories) Services {
	petsSvc := pets.NewService(repos.Pets)
	adoptionsSvc := adoptions.NewService(repos.Adoptions)
	return Services{
		Pets:      petsSvc,
		Adoptions: adoptionsSvc,
		Reports:   reports.NewService(petsSvc, adoptionsSvc),
	}
}

func NewRouter(opts Options) http.Handler {
	h, _ := New(opts)
	return h
}

// New devuelve el handler y los servicios que quedaron detrás.
func New(opts Options) (http.Handler, Services) {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	repos := storage.Memory()
	if opts.Repos != nil {
		repos = *opts.Repos
	}
	svcs := NewServices(repos)

	m := opts.Metrics
	if m == nil {
		m = metrics.New(svcs.Reports)
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(m.Middleware)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Rutas por módulo
	pets.RegisterRoutes(r, svcs.Pets)
	adoptions.RegisterRoutes(r, svcs.Adoptions, svcs.Pets)
	reports.RegisterRoutes(r, svcs.Reports)

	return r, svcs
}
