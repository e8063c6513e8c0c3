package router

import (
	"net/http"

	"github.com/AkshayGangurde12/farm-management-system/internal/config"
	"github.com/AkshayGangurde12/farm-management-system/internal/handlers"
	"github.com/AkshayGangurde12/farm-management-system/internal/middleware"
	"github.com/AkshayGangurde12/farm-management-system/internal/services"

	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

func SetupRouter(cfg config.Config, market *services.Marketplace, logger zerolog.Logger) (*mux.Router, error) {
	templates, err := handlers.LoadTemplates()
	if err != nil {
		return nil, err
	}

	web := &handlers.Web{
		Market:    market,
		Sessions:  handlers.NewSessionStore(cfg.SessionKey, cfg.CookieSecure, cfg.SessionTTL),
		Templates: templates,
		Logger:    logger,
	}
	authHandler := handlers.NewAuthHandler(web)
	productHandler := handlers.NewProductHandler(web)
	farmerHandler := handlers.NewFarmerHandler(web)
	farmingHandler := handlers.NewFarmingHandler(web)
	pageHandler := handlers.NewPageHandler(web)
	userHandler := handlers.NewUserHandler(web)

	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(pageHandler.NotFound)

	rateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)

	r.Use(middleware.ErrorHandling(logger))
	r.Use(middleware.PerformanceMonitoring(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.SecurityHeaders(cfg.CookieSecure))
	r.Use(rateLimiter.Middleware())

	r.HandleFunc("/health", pageHandler.Health).Methods("GET")
	r.HandleFunc("/test", pageHandler.Test).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.CORS(cfg.AllowedOrigins))
	api.Use(middleware.RequestValidation())
	requireToken := middleware.Authentication(market.Auth, logger)
	// Preflight requests are answered by the CORS middleware.
	api.PathPrefix("/").MatcherFunc(isPreflight).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/signup", authHandler.APISignup).Methods("POST")
	auth.HandleFunc("/login", authHandler.APILogin).Methods("POST")
	auth.Handle("/refresh", requireToken(http.HandlerFunc(authHandler.APIRefresh))).Methods("POST")

	api.HandleFunc("/products", productHandler.APIList).Methods("GET")
	api.HandleFunc("/farming-types", farmingHandler.APIList).Methods("GET")

	protectedAPI := api.NewRoute().Subrouter()
	protectedAPI.Use(requireToken)
	protectedAPI.HandleFunc("/products", productHandler.APICreate).Methods("POST")
	protectedAPI.HandleFunc("/products/mine", productHandler.APIMine).Methods("GET")
	protectedAPI.HandleFunc("/products/{id:[0-9]+}/toggle", productHandler.APIToggle).Methods("POST")
	protectedAPI.HandleFunc("/farmers", farmerHandler.APIList).Methods("GET")
	protectedAPI.HandleFunc("/farmers", farmerHandler.APICreate).Methods("POST")
	protectedAPI.HandleFunc("/farmers/{id:[0-9]+}", farmerHandler.APIGet).Methods("GET")
	protectedAPI.HandleFunc("/farmers/{id:[0-9]+}", farmerHandler.APIUpdate).Methods("PUT")
	protectedAPI.HandleFunc("/farmers/{id:[0-9]+}", farmerHandler.APIDelete).Methods("DELETE")
	protectedAPI.HandleFunc("/farming-types", farmingHandler.APIAdd).Methods("POST")
	protectedAPI.HandleFunc("/activity", pageHandler.APIActivity).Methods("GET")
	protectedAPI.HandleFunc("/users/me", userHandler.Me).Methods("GET")
	protectedAPI.HandleFunc("/users/{id:[0-9]+}", userHandler.GetUser).Methods("GET")

	pages := r.NewRoute().Subrouter()
	if cfg.CSRFEnabled {
		pages.Use(csrfProtection(cfg))
	}
	pages.Use(web.LoadUser)

	pages.HandleFunc("/", pageHandler.Index).Methods("GET")
	pages.HandleFunc("/signup", authHandler.SignupForm).Methods("GET")
	pages.HandleFunc("/signup", authHandler.Signup).Methods("POST")
	pages.HandleFunc("/login", authHandler.LoginForm).Methods("GET")
	pages.HandleFunc("/login", authHandler.Login).Methods("POST")
	pages.HandleFunc("/logout", authHandler.Logout).Methods("GET")
	pages.HandleFunc("/agroproducts", productHandler.List).Methods("GET")

	protected := pages.NewRoute().Subrouter()
	protected.Use(web.RequireLogin)
	protected.HandleFunc("/addagroproduct", productHandler.AddForm).Methods("GET")
	protected.HandleFunc("/addagroproduct", productHandler.Add).Methods("POST")
	protected.HandleFunc("/myproducts", productHandler.Mine).Methods("GET")
	protected.HandleFunc("/toggle_availability/{id:[0-9]+}", productHandler.ToggleAvailability).Methods("GET")
	protected.HandleFunc("/register", farmerHandler.RegisterForm).Methods("GET")
	protected.HandleFunc("/register", farmerHandler.Register).Methods("POST")
	protected.HandleFunc("/farmerdetails", farmerHandler.List).Methods("GET")
	protected.HandleFunc("/edit/{id:[0-9]+}", farmerHandler.EditForm).Methods("GET")
	protected.HandleFunc("/edit/{id:[0-9]+}", farmerHandler.Edit).Methods("POST")
	protected.HandleFunc("/delete/{id:[0-9]+}", farmerHandler.Delete).Methods("GET")
	protected.HandleFunc("/addfarming", farmingHandler.Form).Methods("GET")
	protected.HandleFunc("/addfarming", farmingHandler.Add).Methods("POST")
	protected.HandleFunc("/triggers", pageHandler.Triggers).Methods("GET")

	return r, nil
}

// csrfProtection guards the HTML forms. Requests are marked plaintext when
// cookies are not secure so the origin check accepts http:// during local runs.
func csrfProtection(cfg config.Config) mux.MiddlewareFunc {
	protect := csrf.Protect(
		cfg.CSRFKey,
		csrf.Secure(cfg.CookieSecure),
		csrf.Path("/"),
	)
	return func(next http.Handler) http.Handler {
		protected := protect(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.CookieSecure {
				r = csrf.PlaintextHTTPRequest(r)
			}
			protected.ServeHTTP(w, r)
		})
	}
}

// isPreflight matches OPTIONS without registering a method matcher, which
// would turn unknown API paths into 405 responses.
func isPreflight(r *http.Request, _ *mux.RouteMatch) bool {
	return r.Method == http.MethodOptions
}
