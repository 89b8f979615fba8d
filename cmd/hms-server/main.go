package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mednexus/hms/internal/config"
	"github.com/mednexus/hms/internal/domain/dashboard"
	"github.com/mednexus/hms/internal/domain/emr"
	"github.com/mednexus/hms/internal/domain/navigation"
	"github.com/mednexus/hms/internal/domain/registry"
	"github.com/mednexus/hms/internal/domain/session"
	"github.com/mednexus/hms/internal/platform/assist"
	"github.com/mednexus/hms/internal/platform/auth"
	"github.com/mednexus/hms/internal/platform/db"
	"github.com/mednexus/hms/internal/platform/middleware"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hms-server",
		Short: "MedNexus HMS API Server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(routesCmd())
	rootCmd.AddCommand(seedCheckCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HMS API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cfg.HasDatabase() {
				return fmt.Errorf("DATABASE_URL is required for migrations")
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			count, err := db.NewMigrator(pool).Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cfg.HasDatabase() {
				return fmt.Errorf("DATABASE_URL is required for migrations")
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			statuses, err := db.NewMigrator(pool).Status(ctx)
			if err != nil {
				return err
			}
			for _, st := range statuses {
				mark := "pending"
				if st.Applied {
					mark = "applied " + st.AppliedAt.Format(time.RFC3339)
				}
				fmt.Printf("%03d %-30s %s\n", st.Version, st.Name, mark)
			}
			return nil
		},
	}
	cmd.AddCommand(statusCmd)

	return cmd
}

func routesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print the role to section table",
		Run: func(cmd *cobra.Command, args []string) {
			printSectionTable(cmd.OutOrStdout())
		},
	}
}

func printSectionTable(w io.Writer) {
	for _, role := range registry.AllRoles {
		fmt.Fprintf(w, "%s:\n", role)
		for _, s := range navigation.SectionsFor(role) {
			fmt.Fprintf(w, "  %-16s %s\n", s.Label, s.Path)
		}
	}
}

func seedCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed-check",
		Short: "Validate the demo fixture referential integrity",
		RunE: func(cmd *cobra.Command, args []string) error {
			problems := checkSeeds()
			for _, p := range problems {
				fmt.Fprintln(cmd.ErrOrStderr(), p)
			}
			if len(problems) > 0 {
				return fmt.Errorf("%d fixture problem(s)", len(problems))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Fixtures OK.")
			return nil
		},
	}
}

// checkSeeds cross-references the demo fixtures: every foreign id must
// resolve, every enum value must be a known one.
func checkSeeds() []string {
	var problems []string

	hospitals := make(map[string]bool)
	for _, h := range registry.SeedHospitals() {
		hospitals[h.ID] = true
	}

	users := make(map[string]bool)
	for _, u := range registry.SeedUsers() {
		users[u.ID] = true
		if !u.Role.Valid() {
			problems = append(problems, fmt.Sprintf("user %s: unknown role %q", u.ID, u.Role))
		}
		if u.HospitalID != "" && !hospitals[u.HospitalID] {
			problems = append(problems, fmt.Sprintf("user %s: unknown hospital %q", u.ID, u.HospitalID))
		}
	}

	patients := make(map[string]string)
	for _, p := range registry.SeedPatients() {
		patients[p.ID] = p.FullName
		if !registry.ValidPatientStatus(p.Status) {
			problems = append(problems, fmt.Sprintf("patient %s: unknown status %q", p.ID, p.Status))
		}
		if p.TriageLevel != "" && !registry.ValidTriageLevel(p.TriageLevel) {
			problems = append(problems, fmt.Sprintf("patient %s: unknown triage level %q", p.ID, p.TriageLevel))
		}
	}

	for _, a := range registry.SeedAppointments() {
		name, ok := patients[a.PatientID]
		if !ok {
			problems = append(problems, fmt.Sprintf("appointment %s: unknown patient %q", a.ID, a.PatientID))
		} else if name != a.PatientName {
			problems = append(problems, fmt.Sprintf("appointment %s: patient name %q does not match registry %q", a.ID, a.PatientName, name))
		}
		if !users[a.DoctorID] {
			problems = append(problems, fmt.Sprintf("appointment %s: unknown doctor %q", a.ID, a.DoctorID))
		}
		if !registry.ValidAppointmentType(a.Type) {
			problems = append(problems, fmt.Sprintf("appointment %s: unknown type %q", a.ID, a.Type))
		}
		if !registry.ValidAppointmentStatus(a.Status) {
			problems = append(problems, fmt.Sprintf("appointment %s: unknown status %q", a.ID, a.Status))
		}
	}
	return problems
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" || os.Getenv("ENV") == "" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	log.Logger = logger

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	ctx := context.Background()

	// Registry repositories: Postgres when configured, the seeded demo
	// dataset otherwise.
	var (
		pool         *pgxpool.Pool
		hospitals    registry.HospitalRepository
		users        registry.UserRepository
		patients     registry.PatientRepository
		appointments registry.AppointmentRepository
	)
	if cfg.HasDatabase() {
		pool, err = db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		logger.Info().Msg("connected to database")

		hospitals = registry.NewHospitalRepoPG(pool)
		users = registry.NewUserRepoPG(pool)
		patients = registry.NewPatientRepoPG(pool)
		appointments = registry.NewAppointmentRepoPG(pool)
	} else {
		logger.Info().Msg("no DATABASE_URL, using seeded demo registry")
		hospitals = registry.NewHospitalRepoMem(registry.SeedHospitals())
		users = registry.NewUserRepoMem(registry.SeedUsers())
		patients = registry.NewPatientRepoMem(registry.SeedPatients())
		appointments = registry.NewAppointmentRepoMem(registry.SeedAppointments())
	}

	// Session store: Redis when configured, process memory otherwise.
	var store session.Store
	if cfg.HasRedis() {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("invalid REDIS_URL")
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer client.Close()
		logger.Info().Msg("connected to redis")
		store = session.NewRedisStore(client, cfg.SessionTTL)
	} else {
		store = session.NewMemStore(cfg.SessionTTL)
	}

	// Services
	codec := auth.NewTokenCodec([]byte(cfg.SessionSigningKey), cfg.SessionTTL)
	sessionSvc := session.NewService(users, hospitals, store, codec)
	registrySvc := registry.NewService(hospitals, users, patients, appointments)
	dashboardSvc := dashboard.NewService(hospitals)

	if cfg.GenAIAPIKey == "" {
		logger.Warn().Msg("GENAI_API_KEY not set, AI assists run in no-credential mode")
	}
	gateway := assist.NewGateway(
		assist.NewOpenAIGenerator(cfg.GenAIAPIKey, cfg.GenAIModel),
		cfg.GenAIAPIKey, cfg.GenAITimeout)

	emrManager := emr.NewManager()

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.RequestTimeout(30 * time.Second))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))
	e.Use(session.Middleware(sessionSvc))

	// Routes
	api := e.Group("/api")
	authed := e.Group("/api", session.RequireIdentity())

	session.NewHandler(sessionSvc, emrManager.Drop).RegisterRoutes(api, authed)

	navigation.NewHandler(func(c echo.Context) (registry.Role, bool) {
		sess, ok := session.CurrentIdentity(c)
		if !ok {
			return "", false
		}
		return sess.User.Role, true
	}).RegisterRoutes(authed)

	dashboard.NewHandler(dashboardSvc).RegisterRoutes(authed)

	patientsGroup := e.Group("/api/patients",
		session.RequireIdentity(), session.RequireSection("/patients"))
	appointmentsGroup := e.Group("/api/appointments",
		session.RequireIdentity(), session.RequireSection("/appointments"))
	hospitalsGroup := e.Group("/api/hospitals", session.RequireIdentity())
	registry.NewHandler(registrySvc).RegisterRoutes(patientsGroup, appointmentsGroup, hospitalsGroup)

	emr.NewHandler(emrManager, gateway, patients).RegisterRoutes(patientsGroup)

	mountPlaceholderSections(e)

	// Health checks
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
	})
	if pool != nil {
		e.GET("/health/db", db.HealthHandler(pool))
	}

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"service": "mednexus-hms"})
	})

	// Unknown paths land back on the entry point.
	e.Any("/*", func(c echo.Context) error {
		return c.Redirect(http.StatusTemporaryRedirect, "/")
	})

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}

// mountPlaceholderSections serves the sections that exist in the
// navigation policy but have no module behind them yet. Each answers
// with a stub so the client can route to it, gated like any section.
func mountPlaceholderSections(e *echo.Echo) {
	placeholders := []navigation.Section{
		navigation.SectionPharmacy,
		navigation.SectionLaboratory,
		navigation.SectionBilling,
		navigation.SectionReports,
	}
	for _, s := range placeholders {
		s := s
		e.GET("/api"+s.Path, func(c echo.Context) error {
			return c.JSON(http.StatusOK, map[string]string{
				"section": s.Label,
				"status":  "coming soon",
			})
		}, session.RequireIdentity(), session.RequireSection(s.Path))
	}
}
