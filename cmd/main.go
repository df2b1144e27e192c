// cmd/main.go
package main

import (
	"github.com/devkingori/alika/app"

	_ "github.com/devkingori/alika/docs"
)

// @title           Alika Banner API
// @version         1.0
// @description     API for personalizing promotional banner campaign templates.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
