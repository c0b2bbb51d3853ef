package handlers

// AppHandlers holds every handler of the application.
type AppHandlers struct {
	AuthHandler    *AuthHandler
	AccessHandler  *AccessHandler
	PodcastHandler *PodcastHandler
	UploadHandler  *UploadHandler
	FileHandler    *FileHandler
}
