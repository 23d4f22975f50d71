package usecase

import (
	"context"
	"time"
)

// HealthStatus is the liveness report; it never depends on the mailer.
type HealthStatus struct {
	Status    string
	Timestamp time.Time
	Service   string
	Version   string
}

type HealthUsecase interface {
	Check(ctx context.Context) HealthStatus
}

type healthUsecase struct {
	service string
	version string
	now     func() time.Time
}

func NewHealthUsecase(service, version string) HealthUsecase {
	return &healthUsecase{service: service, version: version, now: time.Now}
}

func (u *healthUsecase) Check(_ context.Context) HealthStatus {
	return HealthStatus{
		Status:    "OK",
		Timestamp: u.now().UTC(),
		Service:   u.service,
		Version:   u.version,
	}
}
