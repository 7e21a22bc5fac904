package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/class-enrollment-api/internal/dto"
	"github.com/noah-isme/class-enrollment-api/internal/repository"
	"github.com/noah-isme/class-enrollment-api/internal/service"
	"github.com/noah-isme/class-enrollment-api/internal/validation"
	"github.com/noah-isme/class-enrollment-api/pkg/config"
	"github.com/noah-isme/class-enrollment-api/pkg/database"
	"github.com/noah-isme/class-enrollment-api/pkg/logger"
)

var sampleStudents = []dto.StudentInput{
	{FirstName: "Lucas", LastName: "Gama", Email: "lucas@gmail.com", DateOfBirth: "1997-08-15"},
	{FirstName: "Ana", LastName: "Souza", Email: "ana.souza@gmail.com", DateOfBirth: "2001-03-02"},
	{FirstName: "Bruno", LastName: "Lima", Email: "bruno.lima@gmail.com", DateOfBirth: "1999-11-23"},
	{FirstName: "Carla", LastName: "Mendes", Email: "carla.mendes@gmail.com", DateOfBirth: "2002-06-30"},
}

var sampleClasses = []dto.ClassInput{
	{Name: "Portuguese", Description: "Study of Portuguese language", StartDate: "2024-09-11", EndDate: "2024-10-11"},
	{Name: "Mathematics", Description: "Algebra and geometry", StartDate: "2024-09-16", EndDate: "2024-12-13"},
	{Name: "History", Description: "Modern world history", StartDate: "2024-10-01", EndDate: "2024-11-29"},
}

// student index -> class indexes
var sampleEnrollments = map[int][]int{
	0: {0, 1},
	1: {0},
	2: {1, 2},
	3: {2},
}

func main() {
	timeout := flag.Duration("timeout", 30*time.Second, "overall seeding timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	studentRepo := repository.NewStudentRepository(db)
	classRepo := repository.NewClassRepository(db)
	v := validation.New(nil, nil)
	s := seeder{
		students:      service.NewStudentService(studentRepo, classRepo, v, nil, nil, logr),
		classes:       service.NewClassService(classRepo, studentRepo, v, nil, logr),
		studentLookup: studentRepo,
		classLookup:   classRepo,
	}

	result, err := s.run(ctx)
	if err != nil {
		logr.Fatal("seed failed", zap.Error(err))
	}

	logr.Info("seed completed",
		zap.Int("students", result.students),
		zap.Int("classes", result.classes),
		zap.Int("enrollments_created", result.enrolled),
	)
}
