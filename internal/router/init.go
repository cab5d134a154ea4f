package router

import (
	"github.com/rabnifoundation/rabni-api/internal/application"
	"github.com/rabnifoundation/rabni-api/internal/authz"
	"github.com/rabnifoundation/rabni-api/internal/container"
	"github.com/rabnifoundation/rabni-api/internal/infrastructure/cache"
	pginfra "github.com/rabnifoundation/rabni-api/internal/infrastructure/postgres"
	"github.com/rabnifoundation/rabni-api/internal/infrastructure/search"
	"github.com/rabnifoundation/rabni-api/internal/infrastructure/storage"
	handlers "github.com/rabnifoundation/rabni-api/internal/interface/http"
	"github.com/rabnifoundation/rabni-api/internal/router/modules"
	"github.com/rabnifoundation/rabni-api/internal/session"
	"github.com/rabnifoundation/rabni-api/pkg/helpers"
	mailtpl "github.com/rabnifoundation/rabni-api/pkg/mailer/templates"
)

// BuildGate wires the admin gate from the container: sessions come from the
// JWT plus the Redis session hash, roles from the admin_profiles table.
func BuildGate() *authz.Gate {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	resolver := session.NewResolver(container.GetJWT(), session.NewRedisStore(container.GetRedis()), logger)
	verifier := authz.NewProfileVerifier(pginfra.NewProfileRepository(container.GetPGPool()), logger)
	return authz.NewGate(resolver, verifier,
		authz.WithTimeout(cfg.AdminRoleLookupTimeout),
		authz.WithLogger(logger),
		authz.WithMetrics(authz.NewMetrics(container.GetMetrics())),
	)
}

type services struct {
	admin       *application.AdminService
	content     *application.ContentService
	submissions *application.SubmissionService
	dashboard   *application.DashboardService
}

func buildServices(gate *authz.Gate) services {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	objects := storage.NewGCSStore(container.GetGCS(), cfg.GCSBucket)

	// optional collaborators stay nil interfaces when their client is absent
	var index application.PostIndex
	if es := container.GetES(); es != nil {
		index = search.NewPostIndex(es, cfg.ESPostsIndex)
	}
	var pub application.Publisher
	if p := container.GetRabbitPub(); p != nil && cfg.MailSendEnabled {
		pub = p
	}

	contacts := pginfra.NewContactRepository(pool)
	volunteers := pginfra.NewVolunteerRepository(pool)

	return services{
		admin: application.NewAdminService(
			pginfra.NewUserRepository(pool),
			session.NewRedisStore(container.GetRedis()),
			container.GetJWT(),
			gate,
			pginfra.NewAuditRepository(pool),
			cfg.SessionTTL,
			logger,
		),
		content: application.NewContentService(
			pginfra.NewBlogRepository(pool),
			pginfra.NewGalleryRepository(pool),
			pginfra.NewReportRepository(pool),
			objects,
			index,
			cache.NewPostCache(container.GetRedis(), cfg.PostsCacheTTL, logger),
			logger,
		),
		submissions: application.NewSubmissionService(
			contacts,
			volunteers,
			objects,
			pub,
			cfg.NotifyAdminEmail,
			mailtpl.Brand{
				CompanyName:    cfg.CompanyName,
				CompanyAddress: cfg.CompanyAddress,
				LogoURL:        cfg.LogoURL,
				DashboardURL:   cfg.DashboardURL,
			},
			logger,
		),
		dashboard: application.NewDashboardService(pginfra.NewStatsRepository(pool), volunteers, contacts),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry, gate *authz.Gate) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	svc := buildServices(gate)

	authH := handlers.NewAdminAuthHandler(svc.admin, gate, helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure), cfg.AdminLoginPath, logger)
	contentH := handlers.NewContentHandler(svc.content, cfg.MaxUploadBytes, logger)
	submissionH := handlers.NewSubmissionHandler(svc.submissions, cfg.MaxUploadBytes, logger)
	dashboardH := handlers.NewDashboardHandler(svc.dashboard, logger)

	r.Add(modules.NewPublicModule(contentH, submissionH, handlers.NewImpactHandler()))
	r.Add(&modules.AdminModule{
		Auth:        authH,
		Content:     contentH,
		Submissions: submissionH,
		Dashboard:   dashboardH,
		Gate:        gate,
		LoginPath:   cfg.AdminLoginPath,
		OnDeny:      authH.RecordDenial,
	})
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
		r.AddRoot(modules.NewMetricsModule(container.GetMetrics()))
	}

	r.AddRoot(&modules.AdminPagesModule{
		Auth:        authH,
		Content:     contentH,
		Submissions: submissionH,
		Dashboard:   dashboardH,
		Gate:        gate,
		LoginPath:   cfg.AdminLoginPath,
		OnDeny:      authH.RecordDenial,
	})
}
