package schema

// DefaultProjects is the built-in registry of repositories to analyze when
// no projects file is given. Keep the list sorted by name; names must be
// unique after lower-casing because they key the analysis maps.
var DefaultProjects = []Project{
	{
		Name:            "chi",
		URL:             "https://github.com/go-chi/chi",
		CustomArguments: []string{"--exclude", "testdata/"},
	},
	{
		Name:            "cobra",
		URL:             "https://github.com/spf13/cobra",
		CustomArguments: []string{},
	},
	{
		Name:            "fsnotify",
		URL:             "https://github.com/fsnotify/fsnotify",
		CustomArguments: []string{},
		GoRequires:      ">=1.17",
	},
	{
		Name:            "httprouter",
		URL:             "https://github.com/julienschmidt/httprouter",
		CustomArguments: []string{},
	},
	{
		Name:            "lo",
		URL:             "https://github.com/samber/lo",
		CustomArguments: []string{"--preview"},
		GoRequires:      ">=1.18",
	},
	{
		Name:            "mux",
		URL:             "https://github.com/gorilla/mux",
		CustomArguments: []string{},
	},
	{
		Name:            "testify",
		URL:             "https://github.com/stretchr/testify",
		CustomArguments: []string{"--exclude", "_codegen/"},
	},
	{
		Name:            "viper",
		URL:             "https://github.com/spf13/viper",
		CustomArguments: []string{"--local", "github.com/spf13/viper"},
	},
}
