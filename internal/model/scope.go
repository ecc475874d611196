package model

// Environment identifies the deployment environment.
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentProduction  Environment = "production"
)

// Scope carries the caller identity from delivery into the usecases.
type Scope struct {
	UserID        string
	Username      string
	Authenticated bool
}
