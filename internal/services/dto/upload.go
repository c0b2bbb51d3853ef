package dto

// SignUploadRequest asks for a short-lived direct-upload URL.
type SignUploadRequest struct {
	Filename    string `json:"filename" validate:"required"`
	ContentType string `json:"contentType" validate:"required"`
	Kind        string `json:"kind" validate:"required,oneof=audio image"`
}

// SignUploadResponse carries the presigned PUT target and the public URL the
// client should send back in the metadata write once the upload completes.
type SignUploadResponse struct {
	UploadURL string `json:"uploadUrl"`
	PublicURL string `json:"publicUrl"`
	Key       string `json:"key"`
}
