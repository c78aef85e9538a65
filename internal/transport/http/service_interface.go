package http

import (
	"context"

	"tourismfx/internal/services"
	"tourismfx/pkg/contracts/domain"
)

// DatasetServiceInterface defines the read operations the data handler needs
type DatasetServiceInterface interface {
	GetTable(ctx context.Context, d domain.Domain, q services.TableQuery) (*domain.TableResponse, error)
	GetColumns(ctx context.Context, d domain.Domain) ([]string, error)
	GetCorrelation(ctx context.Context, country, currency string) (*domain.CorrelationResult, error)
	GetCorrelationSummary(ctx context.Context) ([]domain.CorrelationResult, error)
	GetCorrelationMatrix(ctx context.Context) (*domain.CorrelationMatrix, error)
	Overview(ctx context.Context) (*domain.Overview, error)
}

// HealthServiceInterface defines the health operations
type HealthServiceInterface interface {
	HealthCheck(ctx context.Context) services.HealthStatus
	LivenessCheck(ctx context.Context) services.HealthStatus
	Version() map[string]interface{}
}
