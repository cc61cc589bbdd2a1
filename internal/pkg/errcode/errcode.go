package errcode

const (
	ErrUnknown = 10000000 + iota
	ErrInvalid
	ErrMissingFile
	ErrMissingSession
	ErrUnsupportedType
	ErrTooMany
	ErrNoCredential
	ErrExtraction
	ErrProvider
	ErrStructuring
	ErrInternal
)
