package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"mortgage-calculator/config"
	"mortgage-calculator/presenter"
	"mortgage-calculator/service"
)

type Deps struct {
	Config   *config.Config
	Log      *zap.Logger
	Mortgage *service.MortgageService
	Contact  *service.ContactService
	HTML     *presenter.HTMLRenderer
	PDF      presenter.Renderer
	Limiter  Limiter
}

// NewRouter wires every route. It is the one setup step the hosting
// process runs before serving.
func NewRouter(d Deps) (http.Handler, error) {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}

	mortgageHandler, err := NewMortgageHandler(d.Mortgage, d.HTML, d.PDF, d.Config.Calculator, log)
	if err != nil {
		return nil, err
	}
	contactHandler, err := NewContactHandler(d.Contact, d.HTML, log)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.Config.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/health", health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Get("/", mortgageHandler.Index)

	r.Group(func(r chi.Router) {
		if d.Limiter != nil {
			r.Use(RateLimitMiddleware(d.Limiter))
		}

		r.Post("/calculate", mortgageHandler.CalculateFragment)
		r.Post("/contact", contactHandler.SubmitForm)

		r.Route("/api/v1", func(r chi.Router) {
			r.Post("/mortgage/quote", mortgageHandler.CalculateJSON)
			r.Get("/mortgage/quote.pdf", mortgageHandler.QuotePDF)
			r.Post("/contact", contactHandler.SubmitJSON)
		})
	})

	return r, nil
}

func health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
