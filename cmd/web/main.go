package main

import "podcast_backend/internal/app"

func main() {
	app.Run()
}
