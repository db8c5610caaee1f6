package port

// FileInfo describes a file found by a Walker.
type FileInfo struct {
	Path    string
	ModTime int64
	Size    int64
}

// Walker finds files under a root matching configured glob patterns.
type Walker interface {
	Walk(root string) ([]FileInfo, error)
}
