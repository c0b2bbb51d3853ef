package services

// ServiceContainer holds all application services for wiring.
type ServiceContainer struct {
	PodcastService PodcastService
	AuthService    AuthService
}
