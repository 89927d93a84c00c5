package repositories

// RepositoryProvider bundles all repository implementations for service wiring.
type RepositoryProvider struct {
	UserRepo    UserRepository
	PendingRepo PendingRegistrationRepository
	TaskRepo    TaskRepository
	HabitRepo   HabitRepository
	MoodRepo    MoodRepository
	PushRepo    PushSubscriptionRepository
}
