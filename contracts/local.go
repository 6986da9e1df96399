package contracts

// LocalStore is the local file system as seen by the synchronizer.
type LocalStore interface {
	ReadFile(path string) ([]byte, error)
	// MkdirAll creates dir with all the parents. Existing dirs are fine.
	MkdirAll(dir string) error
	WriteFile(path string, data []byte) error
}
