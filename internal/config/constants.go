package config

// Default paths
const (
	// DefaultKoboDatabasePath is where a connected Kobo device exposes its
	// database on most Linux desktops
	DefaultKoboDatabasePath = "/media/KOBOeReader/.kobo/KoboReader.sqlite"

	// DefaultOutputDir is the default directory for exported Markdown files
	DefaultOutputDir = "./highlights"

	// DefaultLibraryDatabasePath is the default path for the local library database
	DefaultLibraryDatabasePath = "./kobo-notes.db"
)
