package di

import (
	"go.uber.org/zap"

	"nasab-backend/application/ports"
	"nasab-backend/application/services"
	"nasab-backend/domain/family"
	"nasab-backend/infrastructure/config"
)

// Container holds all application dependencies
type Container struct {
	Config            *config.Config
	Logger            *zap.Logger
	Graph             *family.Graph
	FamilyRepo        ports.FamilyRepository
	EventPublisher    ports.EventPublisher
	Cache             ports.Cache
	Metrics           ports.MetricsRecorder
	FamilyService     *services.FamilyService
	HierarchyService  *services.HierarchyService
	ExtractionService *services.ExtractionService
}
