package pgsql

import (
	portsrepo "github.com/lifeos-app/lifeos-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgx repository over one shared pool.
func NewRepositoryProvider(db *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		UserRepo:    NewUserRepository(db),
		PendingRepo: NewPendingRegistrationRepository(db),
		TaskRepo:    NewTaskRepository(db),
		HabitRepo:   NewHabitRepository(db),
		MoodRepo:    NewMoodRepository(db),
		PushRepo:    NewPushSubscriptionRepository(db),
	}
}
