package port

// ImageProcessor normalizes uploaded avatar bytes before storage. The
// service treats input and output as opaque blobs.
type ImageProcessor interface {
	Process(data []byte) ([]byte, error)
}
