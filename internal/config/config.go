package config

import (
	"github.com/spf13/viper"
)

type (
	Config struct {
		Kobo
		Output
		Library
	}

	Kobo struct {
		DatabasePath string
	}
	Output struct {
		Dir string
	}
	Library struct {
		DatabasePath string
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("kobo_database_path", DefaultKoboDatabasePath)
	v.SetDefault("output_dir", DefaultOutputDir)
	v.SetDefault("library_database_path", DefaultLibraryDatabasePath)

	return &Config{
		Kobo: Kobo{
			DatabasePath: v.GetString("KOBO_DATABASE_PATH"),
		},
		Output: Output{
			Dir: v.GetString("OUTPUT_DIR"),
		},
		Library: Library{
			DatabasePath: v.GetString("LIBRARY_DATABASE_PATH"),
		},
	}
}
