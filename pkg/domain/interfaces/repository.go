package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Project() ProjectRepository
	Risk() RiskRepository

	// Close releases any resources held by the backend
	Close() error
}
