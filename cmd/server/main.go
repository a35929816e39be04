package main

import (
	"os"

	"plearn/backend/internal/app"
)

// @title        PLEARN API
// @version      1.0
// @description  Chat, vision, speech and to-do backend of the PLEARN study assistant.
// @host         localhost:8000
// @BasePath     /
func main() {
	os.Exit(app.Run())
}
