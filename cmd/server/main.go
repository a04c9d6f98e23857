package main

import "os"

// @title                       Social API
// @version                     1.0
// @description                 Accounts, role-based moderation and community endpoints.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
