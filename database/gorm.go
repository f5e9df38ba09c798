package database

import (
	"fmt"
	"log"
	"time"

	"github.com/sahilchouksey/edulisting-api/config"
	"github.com/sahilchouksey/edulisting-api/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Storage defines the interface that all database implementations must satisfy
type Storage interface {
	Init() error
	Close() error
	HealthCheck() error

	// GetDB returns the underlying *gorm.DB
	GetDB() interface{}
}

type GORMStore struct {
	db *gorm.DB
}

// StartGORM initializes a GORM connection to PostgreSQL
func StartGORM() (*GORMStore, error) {
	getEnv, err := config.Get()
	if err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		getEnv.DB_HOST,
		getEnv.DB_USER_NAME,
		getEnv.DB_PASSWORD,
		getEnv.DB_NAME,
		getEnv.DB_PORT,
		getEnv.DB_SSL_MODE,
	)

	gormLogger := logger.Default.LogMode(logger.Info)
	if getEnv.GO_ENV == "production" {
		gormLogger = logger.Default.LogMode(logger.Error)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gormLogger,
		PrepareStmt:    true,
		TranslateError: true, // map driver errors onto gorm.ErrDuplicatedKey etc.
	})
	if err != nil {
		log.Println("Unable to connect to PostgreSQL with GORM:", err)
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("Successfully connected to PostgreSQL Database with GORM.")

	return &GORMStore{db: db}, nil
}

// Init runs the AutoMigrate to create/update tables
func (s *GORMStore) Init() error {
	log.Println("Running GORM AutoMigrate for all models...")

	err := s.db.AutoMigrate(
		// CMS accounts
		&model.User{},

		// Listing entities
		&model.Category{},
		&model.University{},
		&model.UniversityApprovals{},
		&model.UniversityPartners{},
		&model.UniversityFinancialAid{},
		&model.UniversityRankings{},
		&model.UniversityExamPatterns{},
		&model.Review{},

		// Course aggregate
		&model.Course{},
		&model.CourseAbout{},
		&model.CourseFees{},
		&model.CourseFaq{},
		&model.CourseSeo{},
		&model.CourseCareer{},
		&model.CourseSkills{},
		&model.CourseAdvantages{},
		&model.CourseCurriculum{},
		&model.CourseExamPattern{},
		&model.CourseFinancialAid{},
		&model.CourseServices{},
		&model.CourseAdmissionProcess{},
		&model.CourseEligibility{},
		&model.CourseCertificates{},
		&model.CourseRankings{},
		&model.CourseApprovals{},
		&model.CoursePartners{},

		// Specialisation aggregate
		&model.Specialisation{},
		&model.SpecialisationAbout{},
		&model.SpecialisationFees{},
		&model.SpecialisationFaq{},
		&model.SpecialisationSeo{},
		&model.SpecialisationCareer{},
		&model.SpecialisationSkills{},
		&model.SpecialisationCurriculum{},
		&model.SpecialisationAdmissionProcess{},
		&model.SpecialisationEligibility{},
		&model.SpecialisationApprovals{},

		// Program aggregates
		&model.Program{},
		&model.ProgramAbout{},
		&model.ProgramFees{},
		&model.ProgramFaq{},
		&model.ProgramSeo{},
		&model.ProgramCareer{},
		&model.ProgramCurriculum{},
		&model.ProgramEligibility{},
		&model.ProgramApprovals{},
		&model.SpecialisationProgram{},
		&model.SpecialisationProgramAbout{},
		&model.SpecialisationProgramFees{},
		&model.SpecialisationProgramFaq{},
		&model.SpecialisationProgramSeo{},
		&model.SpecialisationProgramCareer{},

		// Reference rows
		&model.Approval{},
		&model.Placement{},

		// Public submissions
		&model.Lead{},
		&model.ChatMessage{},
		&model.Job{},

		// Audit & logging models
		&model.CronJobLog{},
	)

	if err != nil {
		log.Println("Error running AutoMigrate:", err)
		return err
	}

	log.Println("GORM AutoMigrate completed successfully!")
	return nil
}

// Close closes the database connection
func (s *GORMStore) Close() error {
	log.Println("Closing GORM PostgreSQL connection...")
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetDB returns the GORM DB instance for use in handlers/services
func (s *GORMStore) GetDB() interface{} {
	return s.db
}

// HealthCheck verifies the database connection is alive
func (s *GORMStore) HealthCheck() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
