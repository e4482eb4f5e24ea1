package config

import "os"

// Counties the service manages data for, one storage directory each.
var Counties = []string{
	"Albany", "Big Horn", "Campbell", "Carbon", "Converse", "Crook", "Fremont", "Goshen",
	"Hot Springs", "Johnson", "Laramie", "Lincoln", "Natrona", "Niobrara", "Park", "Platte",
	"Sheridan", "Sublette", "Sweetwater", "Teton", "Uinta", "Washakie", "Weston",
}

// ValidCounty reports whether name is a known county.
func ValidCounty(name string) bool {
	for _, c := range Counties {
		if c == name {
			return true
		}
	}
	return false
}

type Config struct {
	ServerPort        string
	DocsDir           string
	MasterDir         string
	AccountKeyPattern string
	MaxFileSize       int64
}

func LoadConfig() *Config {
	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	docsDir := os.Getenv("DOCS_DIR")
	if docsDir == "" {
		docsDir = "county_docs"
	}

	masterDir := os.Getenv("MASTER_DIR")
	if masterDir == "" {
		masterDir = "master_lists"
	}

	// Applicant/master account numbering differs between counties and
	// dataset eras, so the key pattern is configurable.
	accountPattern := os.Getenv("ACCOUNT_KEY_PATTERN")
	if accountPattern == "" {
		accountPattern = `^[MR]\d{7}$`
	}

	return &Config{
		ServerPort:        serverPort,
		DocsDir:           docsDir,
		MasterDir:         masterDir,
		AccountKeyPattern: accountPattern,
		MaxFileSize:       32 * 1024 * 1024, // 32 MB
	}
}
