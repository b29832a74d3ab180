package dictionary

// Persistence defines how dictionaries are stored
type Persistence interface {
	// Save replaces the stored words for d.Name
	Save(d *Dictionary) error

	// Load retrieves a dictionary by name
	Load(name string) (*Dictionary, error)

	// Delete removes a dictionary and its backup
	Delete(name string) error

	// ListAll returns the names of all stored dictionaries
	ListAll() ([]string, error)

	// Exists checks if a dictionary is stored under name
	Exists(name string) bool

	// Backup copies the stored words of name into its backup slot
	Backup(name string) error

	// Restore replaces the stored words of name with its backup
	Restore(name string) (*Dictionary, error)
}
