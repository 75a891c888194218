package main

import "github.com/myadmincaptiva/backend/cmd"

// @title MyAdminCaptiva API
// @version 1.0
// @description Guest network account administration for the captive portal.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cmd.Execute()
}
