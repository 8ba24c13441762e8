package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type (
	Config struct {
		Storage
	}

	Storage struct {
		Root string // Directory holding per-user, per-kind record folders
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("library_folder", "")

	return &Config{
		Storage: Storage{
			Root: libraryFolder(v),
		},
	}
}

// libraryFolder resolves the storage root, falling back to a Library
// folder under the invoking user's home directory when LIBRARY_FOLDER is
// not set.
func libraryFolder(v *viper.Viper) string {
	if folder := v.GetString("LIBRARY_FOLDER"); folder != "" {
		return folder
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultLibraryDirName
	}
	return filepath.Join(home, DefaultLibraryDirName)
}
