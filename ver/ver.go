package ver

import "fmt"

// Name of the project.
const Name = "dask-cuda"

var (
	// Git commit
	Git string
	// Compile info. of golang itself.
	Compile string
	// Date of compiled
	Date string
)

// Version .
func Version() string {
	return fmt.Sprintf(`%s
Git: %s
Compile: %s
Built: %s`, Name, Git, Compile, Date)
}
