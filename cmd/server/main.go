package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/tmnguyen/portfolio-api/adapters/event"
	httpAdapter "github.com/tmnguyen/portfolio-api/adapters/http"
	"github.com/tmnguyen/portfolio-api/adapters/media_storage"
	"github.com/tmnguyen/portfolio-api/adapters/persistence"
	"github.com/tmnguyen/portfolio-api/internal/application/service"
	authUC "github.com/tmnguyen/portfolio-api/internal/application/usecase/auth"
	educationUC "github.com/tmnguyen/portfolio-api/internal/application/usecase/education"
	experienceUC "github.com/tmnguyen/portfolio-api/internal/application/usecase/experience"
	mediaUC "github.com/tmnguyen/portfolio-api/internal/application/usecase/media"
	profileUC "github.com/tmnguyen/portfolio-api/internal/application/usecase/profile"
	projectUC "github.com/tmnguyen/portfolio-api/internal/application/usecase/project"
	skillUC "github.com/tmnguyen/portfolio-api/internal/application/usecase/skill"
	"github.com/tmnguyen/portfolio-api/internal/config"
	domainEducation "github.com/tmnguyen/portfolio-api/internal/domain/education"
	domainExperience "github.com/tmnguyen/portfolio-api/internal/domain/experience"
	domainProfile "github.com/tmnguyen/portfolio-api/internal/domain/profile"
	domainProject "github.com/tmnguyen/portfolio-api/internal/domain/project"
	domainSkill "github.com/tmnguyen/portfolio-api/internal/domain/skill"
	domainUser "github.com/tmnguyen/portfolio-api/internal/domain/user"
	"github.com/tmnguyen/portfolio-api/pkg/auth"
	"github.com/tmnguyen/portfolio-api/pkg/logger"
	"github.com/tmnguyen/portfolio-api/pkg/tracing"
)

type stores struct {
	profileReader  domainProfile.Reader
	profileWriters domainProfile.WriterFactory

	skillReader  domainSkill.Reader
	skillWriters domainSkill.WriterFactory

	educationReader  domainEducation.Reader
	educationWriters domainEducation.WriterFactory

	experienceReader  domainExperience.Reader
	experienceWriters domainExperience.WriterFactory

	projectReader  domainProject.Reader
	projectWriters domainProject.WriterFactory

	userRepo domainUser.Repository
}

func main() {
	fmt.Println("Start Portfolio API Server...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)

	if cfg.Jaeger.OTLPEndpoint != "" {
		tp, err := tracing.NewTracerProvider(cfg, appLogger, "portfolio-api")
		if err != nil {
			log.Fatalf("FATAL: cannot init tracing: %v", err)
		}
		defer tp.Shutdown(context.Background())
	}

	// Stores: Postgres when a DSN is configured, in-memory otherwise.
	var st stores
	if cfg.DB.DSN != "" {
		dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
		if err != nil {
			log.Fatalf("FATAL: cannot connect Postgres: %v", err)
		}
		defer dbPool.Close()
		st = newPostgresStores(dbPool, appLogger)
	} else {
		appLogger.Warn("DB_DSN is empty, falling back to the in-memory store")
		st = newMemoryStores(appLogger)
	}

	// Session store: redis when configured, in-memory otherwise.
	var sessions service.SessionStore
	if cfg.Redis.Addr != "" {
		redisClient, err := persistence.NewRedisClient(cfg, appLogger)
		if err != nil {
			log.Fatalf("FATAL: cannot connect Redis: %v", err)
		}
		defer redisClient.Close()
		sessions = persistence.NewRedisSessionStore(redisClient, appLogger)
	} else {
		sessions = persistence.NewMemorySessionStore()
	}

	// Content events: kafka producer when brokers are configured.
	var events service.EventPublisher = service.NewNoopPublisher()
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaClient, err := event.NewKafkaProducerClient(cfg)
		if err != nil {
			log.Fatalf("FATAL: cannot init Kafka: %v", err)
		}
		defer kafkaClient.Close()
		events = kafkaClient
	}

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)

	// Media uploads are optional: with no reachable bucket the upload
	// route is absent and the rest of the API still serves.
	var mediaHandler *httpAdapter.MediaHandler
	if cfg.Storage.Bucket != "" {
		uploader, err := media_storage.NewS3Adapter(context.Background(), cfg, appLogger)
		if err != nil {
			appLogger.Error("Storage bucket not ready, media uploads disabled", err)
		} else {
			uploadMediaUseCase := mediaUC.NewUploadMediaUseCase(uploader, appLogger)
			mediaHandler = httpAdapter.NewMediaHandler(uploadMediaUseCase, appLogger)
		}
	}

	// Use Cases
	loginUseCase := authUC.NewLoginUseCase(st.userRepo, jwtSvc, sessions, appLogger)
	logoutUseCase := authUC.NewLogoutUseCase(sessions, appLogger)
	profileUseCase := profileUC.NewProfileUseCase(st.profileReader, st.profileWriters, events, appLogger)
	skillUseCase := skillUC.NewSkillUseCase(st.skillReader, st.skillWriters, events, appLogger)
	educationUseCase := educationUC.NewEducationUseCase(st.educationReader, st.educationWriters, events, appLogger)
	experienceUseCase := experienceUC.NewExperienceUseCase(st.experienceReader, st.experienceWriters, events, appLogger)
	projectUseCase := projectUC.NewProjectUseCase(st.projectReader, st.projectWriters, events, appLogger)

	// HTTP Handlers
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		Auth:       httpAdapter.NewAuthHandler(loginUseCase, logoutUseCase, appLogger),
		Profile:    httpAdapter.NewProfileHandler(profileUseCase, appLogger),
		Skill:      httpAdapter.NewSkillHandler(skillUseCase, appLogger),
		Education:  httpAdapter.NewEducationHandler(educationUseCase, appLogger),
		Experience: httpAdapter.NewExperienceHandler(experienceUseCase, appLogger),
		Project:    httpAdapter.NewProjectHandler(projectUseCase, appLogger),
		Media:      mediaHandler,
		AuthMW:     httpAdapter.AuthMiddleware(jwtSvc, sessions, appLogger),
		Logger:     appLogger,
	})

	log.Printf("Server running on port %s", cfg.App.Port)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Cannot run server: %v", err)
	}
}

func newPostgresStores(dbPool *pgxpool.Pool, appLogger logger.Logger) stores {
	reader := persistence.NewPublicReader(dbPool)
	newScope := func(ownerID uuid.UUID) *persistence.ScopedWriter {
		return persistence.NewScopedWriter(dbPool, ownerID)
	}

	return stores{
		profileReader:     persistence.NewProfileReader(reader, appLogger),
		profileWriters:    persistence.NewProfileWriterFactory(newScope, appLogger),
		skillReader:       persistence.NewSkillReader(reader, appLogger),
		skillWriters:      persistence.NewSkillWriterFactory(newScope, appLogger),
		educationReader:   persistence.NewEducationReader(reader, appLogger),
		educationWriters:  persistence.NewEducationWriterFactory(newScope, appLogger),
		experienceReader:  persistence.NewExperienceReader(reader, appLogger),
		experienceWriters: persistence.NewExperienceWriterFactory(newScope, appLogger),
		projectReader:     persistence.NewProjectReader(reader, appLogger),
		projectWriters:    persistence.NewProjectWriterFactory(newScope, appLogger),
		userRepo:          persistence.NewPostgresUserRepo(dbPool, appLogger),
	}
}

// newMemoryStores wires the in-memory fallback. The owner credential
// comes from OWNER_EMAIL/OWNER_PASSWORD, the same variables the seed
// script uses; without them every admin route stays unreachable.
func newMemoryStores(appLogger logger.Logger) stores {
	mem := persistence.NewMemoryStore()

	userRepo := persistence.NewMemoryUserRepo()
	ownerEmail := os.Getenv("OWNER_EMAIL")
	ownerPassword := os.Getenv("OWNER_PASSWORD")
	if ownerEmail != "" && ownerPassword != "" {
		hash, err := auth.HashPassword(ownerPassword)
		if err != nil {
			log.Fatalf("FATAL: cannot hash owner password: %v", err)
		}
		userRepo.Seed(domainUser.User{ID: uuid.New(), Email: ownerEmail, PasswordHash: hash})
		appLogger.Info("Seeded in-memory owner", zap.String("email", ownerEmail))
	} else {
		appLogger.Warn("OWNER_EMAIL/OWNER_PASSWORD not set, admin login is unavailable in memory mode")
	}

	return stores{
		profileReader:     mem.ProfileReader(),
		profileWriters:    mem.ProfileWriters(),
		skillReader:       mem.SkillReader(),
		skillWriters:      mem.SkillWriters(),
		educationReader:   mem.EducationReader(),
		educationWriters:  mem.EducationWriters(),
		experienceReader:  mem.ExperienceReader(),
		experienceWriters: mem.ExperienceWriters(),
		projectReader:     mem.ProjectReader(),
		projectWriters:    mem.ProjectWriters(),
		userRepo:          userRepo,
	}
}
