package config

const (
	// DefaultLibraryDirName is the folder created under the user's home
	// directory when LIBRARY_FOLDER is not set.
	DefaultLibraryDirName = "Library"
)
