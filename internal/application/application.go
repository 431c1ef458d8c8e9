package application

const (
	// AppName is the application name used for directories and identification
	AppName = "kollect"

	// Version is the version reported by the root command
	Version = "0.1.0"

	// UserAgent identifies the client against remote record servers
	UserAgent = AppName + "/" + Version
)
