package types

// Container reads and writes the four sections of one persistent file.
// Write replaces the whole file; it never merges.
type Container interface {
	// Path returns the file the container reads and writes.
	Path() string

	// Read returns the four tables. It fails with ErrContainerNotFound,
	// ErrSectionNotFound, ErrColumnNotFound or ErrMalformedRow (wrapped)
	// when the file cannot be used.
	Read() (Dataset, error)

	// Write replaces the file content with d. On failure the previous
	// content is left in place.
	Write(d Dataset) error
}

// RecordStore owns loading, caching and persisting the Dataset.
type RecordStore interface {
	// Load returns the four tables. On failure it returns an empty Dataset
	// and a *LoadError; callers display the error and carry on.
	Load() (Dataset, error)

	// Save persists d as one unit and invalidates the read cache. Failure
	// is a *StorageWriteError.
	Save(d Dataset) error

	// AddChild appends a child with the next id and saves. An empty name
	// is a *ValidationError.
	AddChild(name, photoRef string) (Child, error)
}

// Credential is what a CredentialProvider knows about one user.
type Credential struct {
	Username     string
	Role         Role
	PermittedIDs []int64
}

// CredentialProvider checks a username and password. It returns
// ErrAuthentication on any mismatch.
type CredentialProvider interface {
	Authenticate(username, password string) (Credential, error)
}
