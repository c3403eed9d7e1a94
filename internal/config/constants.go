package config

// Default paths for databases
const (
	// DefaultDatabasePath is the default path for the main application database
	DefaultDatabasePath = "./breedy.db"
)

// Remote catalog defaults
const (
	DefaultCatalogHost    = "https://api.thecatapi.com"
	DefaultCatalogVersion = "v1"
)
